package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// stats holds phrase database statistics.
type stats struct {
	DBPath      string `json:"db_path"`
	DBSizeBytes int64  `json:"db_size_bytes"`
	Phrases     int    `json:"phrases"`
	Aliases     int    `json:"aliases"`
	Protected   int    `json:"protected"`
	Tidbits     int    `json:"tidbits"`
}

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show phrase database statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	st, b, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer b.Close()

	m, err := st.Load(cmd.Context())
	if err != nil {
		exitErr("stats", err)
	}

	s := stats{DBPath: getDBPath(), Phrases: len(m)}
	if info, err := os.Stat(s.DBPath); err == nil {
		s.DBSizeBytes = info.Size()
	}
	for _, rec := range m {
		if rec.Alias != "" {
			s.Aliases++
		}
		if rec.ReadOnly {
			s.Protected++
		}
		s.Tidbits += len(rec.Tidbits)
	}

	out, _ := json.MarshalIndent(s, "", "  ")
	fmt.Println(string(out))
}
