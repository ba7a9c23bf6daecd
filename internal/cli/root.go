// Package cli implements the chedthan CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/peeranat/chedthan/internal/astro"
	"github.com/peeranat/chedthan/internal/catalog"
	"github.com/peeranat/chedthan/internal/config"
	"github.com/peeranat/chedthan/internal/fortune"
	"github.com/peeranat/chedthan/internal/meaning"
	"github.com/peeranat/chedthan/internal/rag"
	"github.com/peeranat/chedthan/internal/ranker"
	"github.com/peeranat/chedthan/internal/topic"
)

var (
	dbFlag     string
	configFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "chedthan",
	Short: "Thai 7N9B fortune engine",
	Long:  "Computes 7N9B birth charts and resolves them into ranked fortune readings backed by a SQLite catalogue.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbFlag, "db", "d", "", "Catalogue database path (default: $CHEDTHAN_DB or ~/.chedthan/catalog.db)")
	RootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Config file path")
}

func loadConfig() config.Config {
	cfg, err := config.Load(configFlag)
	if err != nil {
		exitErr("load config", err)
	}
	if dbFlag != "" {
		cfg.DBPath = dbFlag
	}
	return cfg
}

func newLogger(cfg config.Config) *zap.Logger {
	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		exitErr("logger", err)
	}
	return logger
}

func openStore(cfg config.Config, logger *zap.Logger) *catalog.SQLiteStore {
	store, err := catalog.NewSQLiteStore(cfg.DBPath, logger)
	if err != nil {
		exitErr("open catalogue", err)
	}
	return store
}

// newService wires the full pipeline from configuration. The enrichment
// index is attached only when an embedding provider is configured.
func newService(cfg config.Config, store *catalog.SQLiteStore, logger *zap.Logger) *fortune.Service {
	calc := astro.NewCalculator(astro.DefaultTables())
	tables := calc.Tables()
	resolver := meaning.NewResolver(store, tables.DayLabels, tables.MonthLabels, tables.YearLabels, logger)
	rk := ranker.NewRanker(store, resolver, nil, logger)
	classifier := topic.NewCached(topic.NewKeywordClassifier(logger), cfg.CacheMaxEntries, logger)

	var index *rag.Index
	if embedder := newEmbedder(cfg); embedder != nil {
		index = rag.NewIndex(store, embedder, cfg.MinScore, logger)
	}

	return fortune.NewService(calc, resolver, rk, classifier, index, cfg.TopK, logger)
}

// newEmbedder builds the configured embedding provider, nil when disabled.
func newEmbedder(cfg config.Config) rag.Embedder {
	switch cfg.Embedding.Provider {
	case "ollama":
		model := cfg.Embedding.Model
		if model == "" {
			model = "nomic-embed-text"
		}
		return rag.NewOllamaEmbedder(model)
	case "openai":
		return rag.NewOpenAIEmbedder(cfg.Embedding.URL, os.Getenv("OPENAI_API_KEY"), cfg.Embedding.Model, 0)
	case "genai":
		e, err := rag.NewGenAIEmbedder(os.Getenv("GEMINI_API_KEY"), cfg.Embedding.Model)
		if err != nil {
			return nil
		}
		return e
	default:
		return rag.NewFromEnv()
	}
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
