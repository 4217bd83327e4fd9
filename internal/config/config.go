// Package config defines the email responder's application configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	pkgconfig "github.com/lewisedginton/email_responder/pkg/config"
	"github.com/lewisedginton/email_responder/pkg/logger"
)

// AppConfig holds all application configuration
type AppConfig struct {
	pkgconfig.CommonConfig `yaml:",inline"`

	Version     string `env:"VERSION" yaml:"version" default:"1.0"`
	Environment string `env:"ENVIRONMENT" yaml:"environment" default:"development"`

	// RootPath is stripped from incoming paths when the service sits behind a prefixing proxy
	RootPath string `env:"ROOT_PATH" yaml:"root_path"`

	HTTP    pkgconfig.HTTPServerConfig `yaml:"http"`
	Metrics pkgconfig.MetricsConfig    `yaml:"metrics"`

	LLM       LLMConfig       `yaml:"llm"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	Gemini    GeminiConfig    `yaml:"gemini"`

	Generation GenerationConfig `yaml:"generation"`
	UI         UIConfig         `yaml:"ui"`
	Health     HealthConfig     `yaml:"health"`
	Security   SecurityConfig   `yaml:"security"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

// Load reads configuration from an optional YAML file and the environment.
func Load(path string) (AppConfig, error) {
	var cfg AppConfig
	if err := pkgconfig.GetConfig(&cfg, path, false); err != nil {
		return AppConfig{}, err
	}
	cfg.LLM.Provider = cfg.LLM.Name()
	return cfg, nil
}

// Validate validates the configuration and returns every problem found
func (c AppConfig) Validate() error {
	var result error

	for _, v := range []pkgconfig.Validator{c.CommonConfig, c.HTTP, c.Metrics, c.LLM, c.Generation, c.UI, c.Health, c.Security, c.Telemetry} {
		if err := v.Validate(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if c.RootPath != "" && !strings.HasPrefix(c.RootPath, "/") {
		result = multierror.Append(result, fmt.Errorf("root_path must start with '/', got %q", c.RootPath))
	}

	return result
}

// Level returns the parsed logger level
func (c AppConfig) Level() logger.Level {
	return logger.ParseLevel(c.LogLevel)
}

// IsDevelopment returns true if running in a development environment
func (c AppConfig) IsDevelopment() bool {
	env := strings.ToLower(c.Environment)
	return env == "development" || env == "dev"
}

// APIKey returns the credential of the selected provider.
func (c AppConfig) APIKey() string {
	switch c.LLM.Name() {
	case ProviderClaude:
		return c.Anthropic.APIKey
	case ProviderGemini:
		return c.Gemini.APIKey
	default:
		return c.OpenAI.APIKey
	}
}

// Model returns the model of the selected provider.
func (c AppConfig) Model() string {
	switch c.LLM.Name() {
	case ProviderClaude:
		return c.Anthropic.Model
	case ProviderGemini:
		return c.Gemini.Model
	default:
		return c.OpenAI.Model
	}
}

// BaseURL returns the API base URL of the selected provider.
func (c AppConfig) BaseURL() string {
	switch c.LLM.Name() {
	case ProviderClaude:
		return c.Anthropic.APIBaseURL
	case ProviderGemini:
		return c.Gemini.APIBaseURL
	default:
		return c.OpenAI.APIBaseURL
	}
}

// LogConfig logs the current configuration (without sensitive data)
func (c AppConfig) LogConfig(log logger.Logger) {
	log.Info("Application configuration loaded",
		logger.StringField("service_name", c.ServiceName),
		logger.StringField("version", c.Version),
		logger.StringField("environment", c.Environment),
		logger.StringField("listen_addr", c.HTTP.Addr()),
		logger.ProviderField(c.LLM.Provider),
		logger.ModelField(c.Model()),
		logger.BoolField("api_key_configured", c.APIKey() != ""),
		logger.Float64Field("temperature", c.Generation.Temperature),
		logger.Int64Field("max_tokens", c.Generation.MaxTokens),
		logger.StringField("default_tone", c.Generation.DefaultTone),
		logger.BoolField("strict_status_codes", c.Generation.StrictStatusCodes),
		logger.BoolField("ui_enabled", c.UI.Enabled),
		logger.StringField("ui_mount_path", c.UI.MountPath),
		logger.BoolField("metrics_exposed", c.Metrics.ExposeMetrics),
		logger.StringField("telemetry_exporter", c.Telemetry.Exporter),
		logger.StringField("log_level", c.LogLevel),
	)
}
