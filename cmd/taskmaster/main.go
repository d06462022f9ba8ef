// Package main is the entry point for the taskmaster CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskmaster/internal/backend/restapi"
	"taskmaster/internal/cli"
	"taskmaster/internal/commands"
	"taskmaster/internal/config"
	"taskmaster/internal/logging"
	"taskmaster/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		logger := logging.New(cfg.Debug, os.Stderr)
		return restapi.New(ctx, cfg, logger)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
