package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/peeranat/chedthan/internal/topic"
)

func init() {
	cmd := &cobra.Command{
		Use:   "topic [question]",
		Short: "Classify a question into the fortune topic taxonomy",
		Args:  cobra.MinimumNArgs(1),
		Run:   runTopic,
	}

	RootCmd.AddCommand(cmd)
}

func runTopic(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)
	defer logger.Sync()

	classifier := topic.NewKeywordClassifier(logger)
	result, err := classifier.Classify(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		exitErr("classify", err)
	}

	b, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(b))
}
