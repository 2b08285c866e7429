// Package cli implements the phrasebot CLI commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kodekoan/phrasebot/internal/brain"
	"github.com/kodekoan/phrasebot/internal/phrase"
	"github.com/spf13/cobra"
)

var dbPath string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "phrasebot",
	Short: "Community-taught factoid chat bot",
	Long:  "A chat bot that learns phrase => response entries from conversation and recalls a random one when a message matches a known phrase.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $PHRASEBOT_DB or ~/.phrasebot/phrases.db)")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("PHRASEBOT_DB"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".phrasebot", "phrases.db")
}

func openStore() (*phrase.Store, *brain.SQLiteBrain, error) {
	return openStoreAt(getDBPath())
}

func openStoreAt(path string) (*phrase.Store, *brain.SQLiteBrain, error) {
	b, err := brain.NewSQLiteBrain(path)
	if err != nil {
		return nil, nil, err
	}
	return phrase.NewStore(b), b, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
