package cli

import (
	"fmt"

	appconfig "github.com/lewisedginton/email_responder/internal/config"
	"github.com/lewisedginton/email_responder/pkg/logger"
	"github.com/urfave/cli/v2"
)

// getLogger retrieves the logger from the CLI context metadata
func getLogger(ctx *cli.Context) logger.Logger {
	if ctx.App.Metadata != nil {
		if log, ok := ctx.App.Metadata[loggerMetadataKey].(logger.Logger); ok {
			return log
		}
	}
	return logger.NewLogger(logger.Config{
		Level:   logger.InfoLevel,
		Format:  "json",
		Service: "email-responder",
		Output:  ctx.App.ErrWriter,
	})
}

// loadConfig reads the application configuration named by --config-file.
func loadConfig(ctx *cli.Context) (*appconfig.AppConfig, error) {
	cfg, err := appconfig.Load(ctx.String("config-file"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// configuredLogger replaces the bootstrap logger once the configuration is known.
func configuredLogger(ctx *cli.Context, cfg *appconfig.AppConfig) logger.Logger {
	level := cfg.Level()
	if ctx.IsSet("log-level") {
		level = logger.ParseLevel(ctx.String("log-level"))
	}
	return logger.NewLogger(logger.Config{
		Level:   level,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
		Output:  ctx.App.ErrWriter,
	})
}
