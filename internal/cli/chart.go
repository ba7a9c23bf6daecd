package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/peeranat/chedthan/internal/astro"
)

func init() {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Compute the four birth bases for a date",
		Long:  "Computes the 7N9B bases without touching the catalogue. Years above 2300 are read as Buddhist Era.",
		Run:   runChart,
	}

	cmd.Flags().String("date", "", "Birth date (YYYY-MM-DD, required)")
	cmd.Flags().StringP("weekday", "w", "", "Thai weekday name (inferred from the date when omitted)")
	cmd.MarkFlagRequired("date")

	RootCmd.AddCommand(cmd)
}

func runChart(cmd *cobra.Command, args []string) {
	dateStr, _ := cmd.Flags().GetString("date")
	weekday, _ := cmd.Flags().GetString("weekday")

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		exitErr("parse date", err)
	}

	calc := astro.NewCalculator(astro.DefaultTables())
	result, err := calc.Calculate(date, weekday)
	if err != nil {
		exitErr("calculate", err)
	}

	b, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(b))
}
