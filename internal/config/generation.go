package config

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/lewisedginton/email_responder/internal/responder"
)

// GenerationConfig holds the sampling parameters and reply behaviour
type GenerationConfig struct {
	Temperature  float64 `env:"GENERATION_TEMPERATURE" yaml:"temperature" default:"0.7"`
	MaxTokens    int64   `env:"GENERATION_MAX_TOKENS" yaml:"max_tokens" default:"500"`
	DefaultTone  string  `env:"DEFAULT_TONE" yaml:"default_tone" default:"Formal"`
	SystemPrompt string  `env:"SYSTEM_PROMPT" yaml:"system_prompt" default:"You are a helpful customer support assistant."`

	// StrictStatusCodes returns 5xx statuses for failed generations instead of 200
	StrictStatusCodes bool `env:"STRICT_STATUS_CODES" yaml:"strict_status_codes"`
}

// Validate checks the sampling ranges.
func (g GenerationConfig) Validate() error {
	var result error
	if g.Temperature < 0 || g.Temperature > 2 {
		result = multierror.Append(result, fmt.Errorf("temperature must be between 0 and 2, got %v", g.Temperature))
	}
	if g.MaxTokens <= 0 {
		result = multierror.Append(result, fmt.Errorf("max_tokens must be greater than 0"))
	}
	return result
}

// Settings converts the configuration into generator settings for provider.
func (g GenerationConfig) Settings(provider, model string) responder.Settings {
	return responder.Settings{
		Model:        model,
		Temperature:  g.Temperature,
		MaxTokens:    g.MaxTokens,
		SystemPrompt: g.SystemPrompt,
		DefaultTone:  responder.Tone(g.DefaultTone),
		Provider:     provider,
	}
}
