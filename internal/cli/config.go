package cli

import (
	"fmt"

	"github.com/lewisedginton/email_responder/pkg/logger"
	"github.com/urfave/cli/v2"
)

// ConfigCommand returns a command for configuration operations
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Configuration operations",
		Subcommands: []*cli.Command{
			{
				Name:   "validate",
				Usage:  "Load and validate configuration",
				Action: configValidateAction,
			},
		},
	}
}

func configValidateAction(ctx *cli.Context) error {
	log := getLogger(ctx)
	log.Info("Validating configuration")

	cfg, err := loadConfig(ctx)
	if err != nil {
		log.Error("Configuration validation failed", logger.ErrorField(err))
		return err
	}

	if cfg.APIKey() == "" {
		log.Warn("No API key configured for LLM provider", logger.ProviderField(cfg.LLM.Provider))
	}
	cfg.LogConfig(log)

	_, _ = fmt.Fprintln(ctx.App.Writer, "✅ Configuration is valid")
	return nil
}
