package models

import (
	"context"
	"testing"

	appconfig "github.com/lewisedginton/email_responder/internal/config"
	"github.com/lewisedginton/email_responder/internal/models/anthropic"
	"github.com/lewisedginton/email_responder/internal/models/gemini"
	"github.com/lewisedginton/email_responder/internal/models/openai"
	"github.com/lewisedginton/email_responder/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompleter(t *testing.T) {
	base := appconfig.AppConfig{
		OpenAI:    appconfig.OpenAIConfig{Model: "gpt-4o-mini", APIBaseURL: "http://localhost/v1/"},
		Anthropic: appconfig.AnthropicConfig{Model: "claude-sonnet-4-5-20250929", APIKey: "ant"},
		Gemini:    appconfig.GeminiConfig{Model: "gemini-2.5-flash", APIKey: "g"},
	}

	tests := []struct {
		provider string
		check    func(t *testing.T, c any)
	}{
		{appconfig.ProviderOpenAI, func(t *testing.T, c any) {
			oc, ok := c.(*openai.Completer)
			require.True(t, ok)
			assert.Equal(t, "gpt-4o-mini", oc.Name())
		}},
		{appconfig.ProviderClaude, func(t *testing.T, c any) {
			_, ok := c.(*anthropic.ClaudeCompleter)
			assert.True(t, ok)
		}},
		{"OpenAI", func(t *testing.T, c any) {
			_, ok := c.(*openai.Completer)
			assert.True(t, ok)
		}},
		{appconfig.ProviderGemini, func(t *testing.T, c any) {
			_, ok := c.(*gemini.Completer)
			assert.True(t, ok)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := base
			cfg.LLM.Provider = tt.provider
			c, err := NewCompleter(context.Background(), &cfg, logger.NewNopLogger())
			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}

func TestNewCompleterUnknownProvider(t *testing.T) {
	cfg := appconfig.AppConfig{LLM: appconfig.LLMConfig{Provider: "llama"}}
	_, err := NewCompleter(context.Background(), &cfg, logger.NewNopLogger())
	assert.ErrorContains(t, err, "unsupported LLM provider")
}

func TestNewCompleterGeminiWithoutKeyStarts(t *testing.T) {
	cfg := appconfig.AppConfig{
		LLM:    appconfig.LLMConfig{Provider: appconfig.ProviderGemini},
		Gemini: appconfig.GeminiConfig{Model: "gemini-2.5-flash"},
	}
	c, err := NewCompleter(context.Background(), &cfg, logger.NewNopLogger())
	require.NoError(t, err)
	_, ok := c.(*gemini.Completer)
	assert.True(t, ok)
}
