package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the phrase mapping as JSON",
		Long:  "Export all phrases as a JSON object keyed by normalized name, the same shape a hubot brain dump stores under \"phrases\".",
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	st, b, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer b.Close()

	m, err := st.Load(cmd.Context())
	if err != nil {
		exitErr("export", err)
	}

	out, _ := json.MarshalIndent(m, "", "  ")
	fmt.Println(string(out))
}
