package config

import (
	"fmt"
	"slices"
	"strings"
)

// LLM provider constants
const (
	ProviderClaude = "claude"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

var providers = []string{ProviderOpenAI, ProviderClaude, ProviderGemini}

// LLMConfig holds LLM provider selection configuration
type LLMConfig struct {
	// Provider specifies which LLM provider to use: "openai", "claude" or "gemini"
	Provider string `env:"LLM_PROVIDER" yaml:"provider" default:"openai"`
}

// Name returns the provider in canonical lower case.
func (l LLMConfig) Name() string {
	return strings.ToLower(strings.TrimSpace(l.Provider))
}

// Validate checks the provider name. Matching is case-insensitive.
func (l LLMConfig) Validate() error {
	if !slices.Contains(providers, l.Name()) {
		return fmt.Errorf("llm provider must be one of %v, got %q", providers, l.Provider)
	}
	return nil
}
