package config

import "fmt"

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" yaml:"cors_allowed_origins" default:"*"`
	MaxRequestSize     int64    `env:"MAX_REQUEST_SIZE" yaml:"max_request_size" default:"1048576"` // 1MB default
}

// Validate checks the body limit.
func (s SecurityConfig) Validate() error {
	if s.MaxRequestSize <= 0 {
		return fmt.Errorf("max_request_size must be greater than 0")
	}
	return nil
}
