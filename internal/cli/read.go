package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/peeranat/chedthan/internal/fortune"
	"github.com/peeranat/chedthan/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Produce a full fortune reading",
		Long:  "Runs the full pipeline: bases, catalogue meanings, ranked pairs, topic analysis and semantic enrichment.",
		Run:   runRead,
	}

	cmd.Flags().String("date", "", "Birth date (YYYY-MM-DD, required)")
	cmd.Flags().StringP("weekday", "w", "", "Thai weekday name (inferred when omitted)")
	cmd.Flags().StringP("question", "q", "", "Question to focus the reading on")
	cmd.Flags().String("detail", "", "Detail level: simple, normal or detailed")
	cmd.MarkFlagRequired("date")

	RootCmd.AddCommand(cmd)
}

func runRead(cmd *cobra.Command, args []string) {
	dateStr, _ := cmd.Flags().GetString("date")
	weekday, _ := cmd.Flags().GetString("weekday")
	question, _ := cmd.Flags().GetString("question")
	detailStr, _ := cmd.Flags().GetString("detail")

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		exitErr("parse date", err)
	}
	level, err := model.ParseDetailLevel(detailStr)
	if err != nil {
		exitErr("detail level", err)
	}

	cfg := loadConfig()
	logger := newLogger(cfg)
	defer logger.Sync()

	store := openStore(cfg, logger)
	defer store.Close()

	svc := newService(cfg, store, logger)
	result, err := svc.Reading(cmd.Context(), fortune.Request{
		Date:        date,
		Weekday:     weekday,
		Question:    question,
		DetailLevel: level,
	})
	if err != nil {
		exitErr("reading", err)
	}

	b, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(b))
}
