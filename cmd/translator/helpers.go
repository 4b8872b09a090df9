package main

import (
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/translator/internal/config"
	"github.com/at-ishikawa/translator/internal/inference"
	"github.com/at-ishikawa/translator/internal/inference/gemini"
	"github.com/at-ishikawa/translator/internal/inference/openai"
	"github.com/at-ishikawa/translator/internal/prompt"
)

func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// newClient creates the client of the configured provider
func newClient(cfg *config.Config) (inference.Client, error) {
	provider, err := cfg.ActiveProvider()
	if err != nil {
		return nil, err
	}

	limiter := inference.NewLimiter(cfg.Translation.RequestsPerMinute)
	switch cfg.Provider {
	case config.ProviderOpenAI:
		client := openai.NewClient(provider.APIKey, provider.Model, provider.BaseURL, limiter)
		slog.Default().Debug("using openai provider", "model", client.GetModel())
		return client, nil
	default:
		client := gemini.NewClient(provider.APIKey, provider.Model, provider.BaseURL, limiter)
		slog.Default().Debug("using gemini provider", "model", client.GetModel())
		return client, nil
	}
}

func defaultMode(cfg *config.Config) prompt.Mode {
	mode, err := prompt.ParseMode(cfg.Translation.DefaultMode)
	if err != nil {
		return prompt.ModeStandard
	}
	return mode
}
