package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/peeranat/chedthan/internal/catalog"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a catalogue JSON snapshot",
		Args:  cobra.ExactArgs(1),
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	data, err := os.ReadFile(args[0])
	if err != nil {
		exitErr("read snapshot", err)
	}
	var snap catalog.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		exitErr("parse snapshot", err)
	}

	cfg := loadConfig()
	logger := newLogger(cfg)
	defer logger.Sync()

	store := openStore(cfg, logger)
	defer store.Close()

	n, err := store.Import(cmd.Context(), &snap)
	if err != nil {
		exitErr("import", err)
	}
	fmt.Printf("imported %d records from %s\n", n, args[0])
}
