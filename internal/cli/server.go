package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lewisedginton/email_responder/internal/models"
	"github.com/lewisedginton/email_responder/internal/responder"
	"github.com/lewisedginton/email_responder/internal/server"
	"github.com/lewisedginton/email_responder/pkg/logger"
	"github.com/lewisedginton/email_responder/pkg/metrics"
	"github.com/lewisedginton/email_responder/pkg/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
)

// ServerCommand returns a command for server operations
func ServerCommand() *cli.Command {
	return &cli.Command{
		Name:    "server",
		Aliases: []string{"s"},
		Usage:   "Server operations",
		Subcommands: []*cli.Command{
			{
				Name:   "start",
				Usage:  "Start the HTTP API and form UI",
				Action: serverStartAction,
			},
		},
	}
}

func serverStartAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		getLogger(ctx).Error("Failed to load config", logger.ErrorField(err))
		return err
	}
	log := configuredLogger(ctx, cfg)
	cfg.LogConfig(log)

	runCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(runCtx, telemetry.Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Environment,
		Exporter:       cfg.Telemetry.Exporter,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		Logger:         log,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.WithoutCancel(runCtx)); err != nil {
			log.Warn("Failed to flush traces", logger.ErrorField(err))
		}
	}()

	m := metrics.NewMetrics(cfg.Metrics.EnableHTTPMetrics, cfg.Metrics.EnableGenerationMetrics, log)
	m.AddCustomMetric(buildInfo(cfg.Version, cfg.LLM.Provider, cfg.Model()))
	var metricsErr <-chan error
	if cfg.Metrics.ExposeMetrics {
		var closeMetrics func(context.Context) error
		metricsErr, closeMetrics = m.Listen(cfg.Metrics.Port)
		defer func() {
			if err := closeMetrics(context.WithoutCancel(runCtx)); err != nil {
				log.Warn("Failed to stop metrics listener", logger.ErrorField(err))
			}
		}()
	}

	completer, err := models.NewCompleter(runCtx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create completer: %w", err)
	}

	gen, err := responder.NewGenerator(completer,
		responder.WithSettings(cfg.Generation.Settings(cfg.LLM.Provider, cfg.Model())),
		responder.WithLogger(log),
		responder.WithMetrics(m),
	)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}

	srv, err := server.New(cfg, gen, log, server.WithMetrics(m))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() { serverErr <- srv.Start(runCtx) }()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Error("Fatal server error occurred", logger.ErrorField(err))
			return err
		}
		log.Info("Server exited gracefully")
		return nil
	case err := <-metricsErr:
		log.Error("Metrics listener failed", logger.ErrorField(err))
		stop()
		<-serverErr
		return fmt.Errorf("metrics listener failed: %w", err)
	}
}

// buildInfo is a constant 1 gauge labelled with the running version and model.
func buildInfo(version, provider, model string) prometheus.Collector {
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Subsystem:   "email_responder",
		Name:        "build_info",
		Help:        "Build and model information",
		ConstLabels: prometheus.Labels{"version": version, "provider": provider, "model": model},
	})
	g.Set(1)
	return g
}
