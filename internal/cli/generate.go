package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/lewisedginton/email_responder/internal/models"
	"github.com/lewisedginton/email_responder/internal/responder"
	"github.com/urfave/cli/v2"
)

// GenerateCommand returns a command producing one reply from the terminal
func GenerateCommand() *cli.Command {
	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"g"},
		Usage:   "Generate a reply to a customer email (reads stdin when --message is absent)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "message",
				Aliases: []string{"m"},
				Usage:   "Customer email text",
			},
			&cli.StringFlag{
				Name:    "tone",
				Aliases: []string{"t"},
				Usage:   "Reply tone, e.g. Formal, Friendly or Casual",
			},
		},
		Action: generateAction,
	}
}

func generateAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	log := configuredLogger(ctx, cfg)

	message := ctx.String("message")
	if !ctx.IsSet("message") {
		data, err := io.ReadAll(ctx.App.Reader)
		if err != nil {
			return fmt.Errorf("failed to read message from stdin: %w", err)
		}
		message = string(data)
	}
	if strings.TrimSpace(message) == "" {
		return cli.Exit("error: no message given; use --message or pipe it on stdin", 2)
	}

	completer, err := models.NewCompleter(ctx.Context, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create completer: %w", err)
	}
	gen, err := responder.NewGenerator(completer,
		responder.WithSettings(cfg.Generation.Settings(cfg.LLM.Provider, cfg.Model())),
		responder.WithLogger(log),
	)
	if err != nil {
		return err
	}

	outcome := gen.Generate(ctx.Context, responder.Request{
		Message: message,
		Tone:    responder.Tone(ctx.String("tone")),
	})
	if !outcome.OK() {
		return cli.Exit("error: "+outcome.ErrorMessage(), 1)
	}

	_, _ = fmt.Fprintln(ctx.App.Writer, outcome.Reply())
	return nil
}
