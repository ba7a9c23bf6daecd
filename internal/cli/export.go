package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export the catalogue to JSON",
		Long:  "Writes all categories, readings and combinations as a JSON snapshot. Without a file argument, writes to stdout.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)
	defer logger.Sync()

	store := openStore(cfg, logger)
	defer store.Close()

	snap, err := store.ExportAll(cmd.Context())
	if err != nil {
		exitErr("export", err)
	}

	b, _ := json.MarshalIndent(snap, "", "  ")
	if len(args) == 0 {
		fmt.Println(string(b))
		return
	}
	if err := os.WriteFile(args[0], b, 0o644); err != nil {
		exitErr("write snapshot", err)
	}
	fmt.Printf("exported %d categories, %d readings, %d combinations to %s\n",
		len(snap.Categories), len(snap.Readings), len(snap.Combinations), args[0])
}
