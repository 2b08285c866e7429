package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kodekoan/phrasebot/internal/phrase"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a phrase mapping from JSON",
		Long:  "Import phrases from stdin. Expects the format produced by export (or a hubot brain \"phrases\" dump). Replaces the stored mapping.",
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		exitErr("read stdin", err)
	}

	var m map[string]phrase.Record
	if err := json.Unmarshal(data, &m); err != nil {
		exitErr("parse json", err)
	}

	// Keys in old dumps may predate name normalization.
	normalized := make(map[string]phrase.Record, len(m))
	for name, rec := range m {
		normalized[phrase.CleanName(name)] = rec
	}

	st, b, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer b.Close()

	if err := st.Save(cmd.Context(), normalized); err != nil {
		exitErr("import", err)
	}

	fmt.Printf(`{"ok":true,"imported":%d}`+"\n", len(normalized))
}
