package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/lewisedginton/email_responder/pkg/health/checkers"
	"github.com/urfave/cli/v2"
)

// HealthCommand returns a command probing a running server, for container health checks
func HealthCommand() *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "Probe a running server's readiness endpoint",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Value:   "http://127.0.0.1:8000/health/ready",
				Usage:   "Endpoint to probe",
				EnvVars: []string{"HEALTH_URL"},
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 5 * time.Second,
				Usage: "Probe timeout",
			},
		},
		Action: healthAction,
	}
}

func healthAction(ctx *cli.Context) error {
	url := ctx.String("url")
	checker := checkers.NewHTTPChecker("server", url)

	probeCtx, cancel := context.WithTimeout(ctx.Context, ctx.Duration("timeout"))
	defer cancel()

	if err := checker.Check(probeCtx); err != nil {
		return cli.Exit(fmt.Sprintf("unhealthy: %v", err), 1)
	}
	_, _ = fmt.Fprintf(ctx.App.Writer, "healthy: %s\n", url)
	return nil
}
