// Package server exposes the email responder over HTTP: the JSON API, the
// browser form and the health endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	appconfig "github.com/lewisedginton/email_responder/internal/config"
	"github.com/lewisedginton/email_responder/internal/middleware"
	"github.com/lewisedginton/email_responder/internal/monitoring"
	"github.com/lewisedginton/email_responder/internal/responder"
	"github.com/lewisedginton/email_responder/pkg/httpmiddleware"
	"github.com/lewisedginton/email_responder/pkg/logger"
	"github.com/lewisedginton/email_responder/pkg/metrics"
)

// Generator produces one reply outcome per request.
type Generator interface {
	Generate(ctx context.Context, req responder.Request) responder.Outcome
}

// Server owns the router and the HTTP listener.
type Server struct {
	cfg        *appconfig.AppConfig
	log        logger.Logger
	generator  Generator
	health     *monitoring.HealthMonitor
	metrics    *metrics.Metrics
	pages      *template.Template
	router     chi.Router
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records HTTP request metrics on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithHealthMonitor replaces the monitor built from the configuration.
func WithHealthMonitor(hm *monitoring.HealthMonitor) Option {
	return func(s *Server) { s.health = hm }
}

// New creates a Server. The generator is shared by every request.
func New(cfg *appconfig.AppConfig, gen Generator, log logger.Logger, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if gen == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if log == nil {
		log = logger.NewNopLogger()
	}

	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	s := &Server{
		cfg:       cfg,
		log:       log,
		generator: gen,
		pages:     pages,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.health == nil {
		s.health = monitoring.NewHealthMonitor(monitoring.Config{
			Logger:                log,
			Service:               cfg.ServiceName,
			Version:               cfg.Version,
			Provider:              cfg.LLM.Provider,
			ProviderURL:           cfg.BaseURL(),
			ProbeProvider:         cfg.Health.ProbeProvider,
			CredentialsConfigured: cfg.APIKey() != "",
			Timeout:               cfg.Health.Timeout,
			FailureThreshold:      cfg.Health.FailureThreshold,
		})
	}

	s.router = s.routes()
	s.httpServer = &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           s.router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
	}

	return s, nil
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	recovery := middleware.DefaultRecoveryConfig()
	recovery.Logger = s.log

	cors := httpmiddleware.DefaultCORSConfig()
	cors.AllowedOrigins = s.cfg.Security.CORSAllowedOrigins

	mw := httpmiddleware.DefaultConfig()
	mw.Logger = s.log
	mw.EnableLogging = true
	mw.Recoverer = middleware.Recovery(recovery)
	mw.Security = httpmiddleware.DefaultSecurityOptions(s.cfg.IsDevelopment())
	mw.CORS = &cors
	mw.MaxBodyBytes = s.cfg.Security.MaxRequestSize
	// A slow generation is answered whenever it finishes.
	mw.EnableTimeout = false
	if s.cfg.RootPath != "" {
		mw.StripPrefix = s.cfg.RootPath
		mw.EnableStripPrefix = true
	}
	httpmiddleware.ApplyToRouter(r, mw)
	r.Use(s.metrics.HTTPMiddleware())

	r.Get("/", s.handleHome)
	r.Post("/email", s.handleEmail)
	r.Post("/email/", s.handleEmail)
	s.health.Register(r)

	if s.cfg.UI.Enabled {
		mount := s.uiMountPath()
		r.Get(mount, func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, s.cfg.RootPath+mount+"/", http.StatusMovedPermanently)
		})
		r.Get(mount+"/", s.handleFormPage)
		r.Post(mount+"/", s.handleFormSubmit)
	}

	return r
}

func (s *Server) uiMountPath() string {
	return strings.TrimSuffix(s.cfg.UI.MountPath, "/")
}

// Start serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting HTTP server", logger.StringField("addr", s.httpServer.Addr))
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	return s.Shutdown(context.WithoutCancel(ctx))
}

// Shutdown marks the service not ready and drains in-flight requests for up
// to the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	s.health.MarkShuttingDown()
	s.log.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Error("HTTP server shutdown error", logger.ErrorField(err))
		return err
	}
	s.log.Info("HTTP server stopped")
	return nil
}
