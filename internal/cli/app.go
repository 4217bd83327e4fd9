// Package cli implements the email-responder command line.
package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/lewisedginton/email_responder/pkg/logger"
	"github.com/urfave/cli/v2"
)

const loggerMetadataKey = "logger"

// NewApp builds the CLI application.
func NewApp(version string) *cli.App {
	return &cli.App{
		Name:    "email-responder",
		Usage:   "Generate AI-powered customer support email replies",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "config-file",
				Usage:   "Path to a YAML configuration file",
				EnvVars: []string{"CONFIG_FILE"},
			},
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "Dotenv file loaded before configuration",
			},
		},
		Before: before,
		Commands: []*cli.Command{
			ServerCommand(),
			ConfigCommand(),
			GenerateCommand(),
			HealthCommand(),
		},
	}
}

// before loads the dotenv file and installs the bootstrap logger. The
// default .env may be absent; an explicitly named file may not.
func before(ctx *cli.Context) error {
	envFile := ctx.String("env-file")
	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || ctx.IsSet("env-file") {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	ctx.App.Metadata = map[string]interface{}{
		loggerMetadataKey: logger.NewLogger(logger.Config{
			Level:   logger.ParseLevel(ctx.String("log-level")),
			Format:  "json",
			Service: ctx.App.Name,
			Output:  ctx.App.ErrWriter,
		}),
	}
	return nil
}
