package config

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
)

// HTTPServerConfig holds HTTP listener settings
type HTTPServerConfig struct {
	// Host is the interface the server binds to
	Host string `env:"HOST" yaml:"host" default:"0.0.0.0"`

	// Port is the TCP port for the HTTP server
	Port int `env:"PORT" yaml:"port" default:"8000"`

	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" yaml:"read_timeout" default:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" yaml:"write_timeout" default:"90s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" yaml:"idle_timeout" default:"60s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" yaml:"shutdown_timeout" default:"30s"`

	// MaxHeaderBytes caps the size of request headers
	MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" yaml:"max_header_bytes" default:"1048576"`
}

// Validate checks the port range and that timeouts are positive
func (h HTTPServerConfig) Validate() error {
	var result error
	if h.Port < 1 || h.Port > 65535 {
		result = multierror.Append(result, fmt.Errorf("http port must be between 1-65535, got %d", h.Port))
	}
	if h.ReadTimeout <= 0 || h.WriteTimeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("http read and write timeouts must be positive"))
	}
	return result
}

// Addr returns the host:port listen address
func (h HTTPServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}
