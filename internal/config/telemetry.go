package config

import (
	"fmt"

	"github.com/lewisedginton/email_responder/pkg/telemetry"
)

// TelemetryConfig selects the trace exporter
type TelemetryConfig struct {
	Exporter     string `env:"OTEL_TRACES_EXPORTER" yaml:"exporter" default:"none"`
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" yaml:"otlp_endpoint" default:"localhost:4317"`
}

// Validate checks the exporter name.
func (t TelemetryConfig) Validate() error {
	switch t.Exporter {
	case telemetry.ExporterNone, telemetry.ExporterStdout, telemetry.ExporterOTLP:
		return nil
	}
	return fmt.Errorf("telemetry exporter must be none, stdout or otlp, got %q", t.Exporter)
}
