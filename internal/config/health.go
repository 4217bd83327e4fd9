package config

import (
	"fmt"
	"time"
)

// HealthConfig holds health check configuration
type HealthConfig struct {
	Timeout          time.Duration `env:"HEALTH_TIMEOUT" yaml:"timeout" default:"5s"`
	FailureThreshold int           `env:"HEALTH_FAILURE_THRESHOLD" yaml:"failure_threshold" default:"3"`

	// ProbeProvider makes readiness depend on reaching the provider's base URL
	ProbeProvider bool `env:"HEALTH_PROBE_PROVIDER" yaml:"probe_provider"`
}

// Validate checks the timeout.
func (h HealthConfig) Validate() error {
	if h.Timeout <= 0 {
		return fmt.Errorf("health timeout must be greater than 0")
	}
	return nil
}
