// Package main is the entry point for the todo CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"todo/internal/backend"
	"todo/internal/cli"
	"todo/internal/commands"
)

func main() {
	// Cancel in-flight requests on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, backend.New)
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}
