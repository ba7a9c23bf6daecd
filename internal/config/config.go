// Package config loads engine configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Embedding configures the enrichment provider.
type Embedding struct {
	Provider string `yaml:"provider"` // ollama | openai | genai | "" (disabled)
	Model    string `yaml:"model"`
	URL      string `yaml:"url"`
}

// Config is the full engine configuration.
type Config struct {
	DBPath          string    `yaml:"db_path"`
	LogLevel        string    `yaml:"log_level"`
	Embedding       Embedding `yaml:"embedding"`
	TopK            int       `yaml:"top_k"`
	MinScore        float64   `yaml:"min_score"`
	CacheMaxEntries int       `yaml:"cache_max_entries"`
}

// Default returns the configuration used when no file or overrides exist.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DBPath:          filepath.Join(home, ".chedthan", "catalog.db"),
		LogLevel:        "info",
		TopK:            3,
		MinScore:        0.5,
		CacheMaxEntries: 0,
	}
}

// Load reads the config file at path (skipped when path is empty or the file
// does not exist), then applies environment overrides on top.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// No file: defaults plus env.
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CHEDTHAN_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("CHEDTHAN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CHEDTHAN_EMBED_PROVIDER"); v != "" {
		cfg.Embedding.Provider = v
	}
	if v := os.Getenv("CHEDTHAN_EMBED_MODEL"); v != "" {
		cfg.Embedding.Model = v
	}
	if v := os.Getenv("CHEDTHAN_EMBED_URL"); v != "" {
		cfg.Embedding.URL = v
	}
	if v := os.Getenv("CHEDTHAN_TOP_K"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TopK = n
		}
	}
	if v := os.Getenv("CHEDTHAN_MIN_SCORE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.MinScore = f
		}
	}
	if v := os.Getenv("CHEDTHAN_CACHE_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.CacheMaxEntries = n
		}
	}
}

// NewLogger builds a zap logger at the configured level.
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
