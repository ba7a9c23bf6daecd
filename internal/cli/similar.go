package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/peeranat/chedthan/internal/rag"
)

func init() {
	cmd := &cobra.Command{
		Use:   "similar [query]",
		Short: "Find catalogue interpretations similar to a query",
		Long:  "Embeds the query and searches the interpretation index. Requires a configured embedding provider.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSimilar,
	}

	cmd.Flags().IntP("top", "k", 0, "Max results (default from config)")

	RootCmd.AddCommand(cmd)
}

func runSimilar(cmd *cobra.Command, args []string) {
	k, _ := cmd.Flags().GetInt("top")

	cfg := loadConfig()
	logger := newLogger(cfg)
	defer logger.Sync()

	embedder := newEmbedder(cfg)
	if embedder == nil {
		exitErr("similar", fmt.Errorf("no embedding provider configured (set embedding.provider or CHEDTHAN_EMBED_PROVIDER)"))
	}

	store := openStore(cfg, logger)
	defer store.Close()

	if k <= 0 {
		k = cfg.TopK
	}
	index := rag.NewIndex(store, embedder, cfg.MinScore, logger)
	hits, err := index.Search(cmd.Context(), strings.Join(args, " "), k)
	if err != nil {
		exitErr("search", err)
	}

	if len(hits) == 0 {
		fmt.Println("[]")
		return
	}
	type hitOut struct {
		Source string  `json:"source"`
		Score  float64 `json:"score"`
		Text   string  `json:"text"`
	}
	out := make([]hitOut, len(hits))
	for i, h := range hits {
		out[i] = hitOut{Source: h.Doc.Source, Score: h.Score, Text: h.Doc.Text}
	}
	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}
