// Package models builds the responder.Completer for the configured LLM provider.
package models

import (
	"context"
	"fmt"

	appconfig "github.com/lewisedginton/email_responder/internal/config"
	"github.com/lewisedginton/email_responder/internal/models/anthropic"
	"github.com/lewisedginton/email_responder/internal/models/gemini"
	"github.com/lewisedginton/email_responder/internal/models/openai"
	"github.com/lewisedginton/email_responder/internal/responder"
	"github.com/lewisedginton/email_responder/pkg/logger"
)

// NewCompleter creates the completer selected by cfg.LLM.Provider. A missing
// API key is logged and otherwise ignored: generations then fail with an
// auth failure instead of the process refusing to start.
func NewCompleter(ctx context.Context, cfg *appconfig.AppConfig, log logger.Logger) (responder.Completer, error) {
	provider := cfg.LLM.Name()
	log = log.WithFields(logger.ProviderField(provider), logger.ModelField(cfg.Model()))

	if cfg.APIKey() == "" {
		log.Warn("No API key configured for LLM provider; generation requests will fail authentication")
	}

	switch provider {
	case appconfig.ProviderOpenAI:
		log.Info("Initializing OpenAI completer")
		return openai.New(openai.Config{
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.OpenAI.Model,
			BaseURL: cfg.OpenAI.APIBaseURL,
			Timeout: cfg.OpenAI.Timeout,
			Logger:  log,
		})

	case appconfig.ProviderClaude:
		log.Info("Initializing Claude completer")
		return anthropic.NewClaudeCompleter(anthropic.Config{
			APIKey:  cfg.Anthropic.APIKey,
			Model:   cfg.Anthropic.Model,
			BaseURL: cfg.Anthropic.APIBaseURL,
			Timeout: cfg.Anthropic.Timeout,
			Logger:  log,
		})

	case appconfig.ProviderGemini:
		log.Info("Initializing Gemini completer")
		return gemini.New(ctx, gemini.Config{
			APIKey:  cfg.Gemini.APIKey,
			Model:   cfg.Gemini.Model,
			BaseURL: cfg.Gemini.APIBaseURL,
			Logger:  log,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}
