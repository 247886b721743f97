// Package main is the entry point for the rem CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"rem/internal/backend/jsonfile"
	"rem/internal/cli"
	"rem/internal/commands"
	"rem/internal/config"
	"rem/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return jsonfile.New(ctx, cfg)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
