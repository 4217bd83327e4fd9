// Package monitoring wires the service's health checks and probe endpoints.
package monitoring

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lewisedginton/email_responder/pkg/health"
	"github.com/lewisedginton/email_responder/pkg/health/checkers"
	"github.com/lewisedginton/email_responder/pkg/logger"
)

// Health status constants
const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

var (
	errNoCredentials = errors.New("no API key configured for the LLM provider")
	errShuttingDown  = errors.New("server is shutting down")
)

// HealthMonitor manages health checks and monitoring endpoints for the application
type HealthMonitor struct {
	checker      *health.HealthChecker
	logger       logger.Logger
	service      string
	version      string
	startTime    time.Time
	shuttingDown atomic.Bool
}

// Config holds configuration for the health monitor
type Config struct {
	Logger  logger.Logger
	Service string
	Version string

	Provider              string // LLM provider name, used in check names
	ProviderURL           string // probed only when ProbeProvider is set
	ProbeProvider         bool
	CredentialsConfigured bool
	HTTPClient            *http.Client // optional client for the provider probe

	Timeout          time.Duration
	FailureThreshold int
}

// NewHealthMonitor creates a new health monitor with configured checks
func NewHealthMonitor(cfg Config) *HealthMonitor {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}

	checker := health.New(
		health.WithLogger(log),
		health.WithTimeout(cfg.Timeout),
		health.WithFailureThreshold(cfg.FailureThreshold),
	)

	hm := &HealthMonitor{
		checker:   checker,
		logger:    log,
		service:   cfg.Service,
		version:   cfg.Version,
		startTime: time.Now(),
	}

	checker.AddLivenessCheck(health.NewCheckFunc("process", func(ctx context.Context) error {
		return nil
	}))

	credentialsConfigured := cfg.CredentialsConfigured
	checker.AddReadinessCheck(health.NewStateCheck("llm_credentials", func(ctx context.Context) error {
		if !credentialsConfigured {
			return errNoCredentials
		}
		return nil
	}))

	checker.AddReadinessCheck(health.NewStateCheck("shutdown", func(ctx context.Context) error {
		if hm.shuttingDown.Load() {
			return errShuttingDown
		}
		return nil
	}))

	if cfg.ProbeProvider && cfg.ProviderURL != "" {
		var opts []checkers.HTTPOption
		if cfg.HTTPClient != nil {
			opts = append(opts, checkers.WithClient(cfg.HTTPClient))
		}
		checker.AddReadinessCheck(checkers.NewHTTPChecker(cfg.Provider+"_api", cfg.ProviderURL, opts...))
	}

	return hm
}

// MarkShuttingDown makes readiness fail so load balancers drain the instance.
func (hm *HealthMonitor) MarkShuttingDown() {
	hm.shuttingDown.Store(true)
}

// Response is the body of the combined health endpoint.
type Response struct {
	Status    string                `json:"status"`
	Service   string                `json:"service"`
	Version   string                `json:"version"`
	Timestamp string                `json:"timestamp"`
	Uptime    string                `json:"uptime"`
	Liveness  health.HealthResponse `json:"liveness"`
	Readiness health.HealthResponse `json:"readiness"`
}

// HealthHandler returns a combined health endpoint that includes both liveness and readiness
// GET /health - Returns comprehensive health status
func (hm *HealthMonitor) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		livenessStatus, livenessErr := hm.checker.CheckLiveness(ctx)
		readinessStatus, readinessErr := hm.checker.CheckReadiness(ctx)

		response := Response{
			Status:    statusHealthy,
			Service:   hm.service,
			Version:   hm.version,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Uptime:    time.Since(hm.startTime).Round(time.Second).String(),
			Liveness:  health.NewHealthResponse(livenessStatus, livenessErr),
			Readiness: health.NewHealthResponse(readinessStatus, readinessErr),
		}

		code := http.StatusOK
		if !livenessStatus.Healthy || !readinessStatus.Healthy {
			response.Status = statusUnhealthy
			code = http.StatusServiceUnavailable
			logger.GetLoggerFromContext(ctx, hm.logger).Warn("Health check reported unhealthy",
				logger.BoolField("live", livenessStatus.Healthy),
				logger.BoolField("ready", readinessStatus.Healthy),
			)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Register mounts /health, /health/live and /health/ready on r.
func (hm *HealthMonitor) Register(r chi.Router) {
	r.Get("/health", hm.HealthHandler())
	r.Get("/health/live", hm.checker.LivenessHandler())
	r.Get("/health/ready", hm.checker.ReadinessHandler())
}
