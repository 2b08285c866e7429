package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kodekoan/phrasebot/internal/phrase"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search phrases by keyword",
		Long:  "Search phrase names, display forms, and tidbit text for matching entries.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	RootCmd.AddCommand(cmd)
}

func matches(name string, rec phrase.Record, query string) bool {
	if strings.Contains(name, query) || strings.Contains(strings.ToLower(rec.Fact), query) {
		return true
	}
	for _, t := range rec.Tidbits {
		if strings.Contains(strings.ToLower(t.Tidbit), query) {
			return true
		}
	}
	return false
}

func runSearch(cmd *cobra.Command, args []string) {
	query := strings.ToLower(strings.Join(args, " "))

	st, b, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer b.Close()

	m, err := st.Load(cmd.Context())
	if err != nil {
		exitErr("search", err)
	}

	results := map[string]phrase.Record{}
	for name, rec := range m {
		if matches(name, rec, query) {
			results[name] = rec
		}
	}

	if len(results) == 0 {
		fmt.Println("{}")
		return
	}

	out, _ := json.MarshalIndent(results, "", "  ")
	fmt.Println(string(out))
}
