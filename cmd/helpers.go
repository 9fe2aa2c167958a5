package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lexdraft/lexdraft/internal/config"
	"github.com/lexdraft/lexdraft/internal/db"
	"github.com/lexdraft/lexdraft/internal/llm"
	"github.com/lexdraft/lexdraft/internal/research"
	"github.com/lexdraft/lexdraft/internal/templates"
)

// loadConfig reads and validates the config file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openDatabase opens the SQLite database under the configured data
// directory and seeds the builtin templates.
func openDatabase(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	database, err := db.Open(filepath.Join(cfg.DataDir, "lexdraft.db"))
	if err != nil {
		return nil, err
	}
	if _, err := templates.NewStore(database).Seed(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("seeding templates: %w", err)
	}
	return database, nil
}

// createProvider builds the configured LLM provider wrapped with rate
// limiting. Returns nil when the provider is "none".
func createProvider(cfg *config.Config) (llm.Provider, error) {
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}
	if cfg.RateLimitRPM > 0 {
		provider = llm.NewRateLimitedProvider(provider, cfg.RateLimitRPM)
	}
	return provider, nil
}

// createEmbedder builds the OpenAI embedder used for clause research.
// Returns nil without error when no OpenAI key is available.
func createEmbedder(cfg *config.Config) research.Embedder {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil
	}
	return research.NewOpenAIEmbedder(apiKey, cfg.EmbeddingModel)
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
