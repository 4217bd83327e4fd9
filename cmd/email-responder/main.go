package main

import (
	"context"
	"fmt"
	"os"

	commands "github.com/lewisedginton/email_responder/internal/cli"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "1.0"

func main() {
	app := commands.NewApp(version)
	if err := app.RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
