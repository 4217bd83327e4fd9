package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

// CommonConfig holds settings shared by every command of the service
type CommonConfig struct {
	// LogLevel is the minimum level written: debug, info, warn or error
	LogLevel string `env:"LOG_LEVEL" yaml:"log_level" default:"info"`

	// LogFormat selects the log encoder: json or text
	LogFormat string `env:"LOG_FORMAT" yaml:"log_format" default:"json"`

	// ServiceName is attached to every log entry and trace
	ServiceName string `env:"SERVICE_NAME" yaml:"service_name" default:"email-responder"`
}

// Validate checks the log level and format
func (c CommonConfig) Validate() error {
	var result error
	if !slices.Contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		result = multierror.Append(result, fmt.Errorf("log_level must be one of [%s], got %q",
			strings.Join(validLogLevels, ", "), c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		result = multierror.Append(result, fmt.Errorf("log_format must be json or text, got %q", c.LogFormat))
	}
	return result
}
