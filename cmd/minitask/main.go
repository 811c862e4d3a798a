// Package main is the entry point for the minitask CLI.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"minitask/internal/artifact"
	"minitask/internal/cli"
	"minitask/internal/commands"
	"minitask/internal/config"
	"minitask/internal/repository"
	"minitask/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The task store lives in the artifact this process was started from
	// unless config points elsewhere.
	factory := func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.Service, error) {
		path, err := cfg.ArtifactPath()
		if err != nil {
			return nil, err
		}
		return repository.New(artifact.New(path, logger), logger), nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
