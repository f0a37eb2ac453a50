package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/shapes-console/internal/app"
	"github.com/samvad-hq/shapes-console/internal/config"
	"github.com/samvad-hq/shapes-console/internal/logger"
)

// Usage: shapes [hello|shape ...]
// With no arguments taps are read from stdin, one per line.
func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "shapes start failed: %v\n", err)
		os.Exit(1)
	}
}

func run(taps []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("shapes starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log, os.Stdin, os.Stdout)
	if err != nil {
		logger.ErrorObj("failed to initialize shapes app", "error", err)
		return err
	}

	if err := a.Run(ctx, taps); err != nil {
		return fmt.Errorf("shapes run: %w", err)
	}
	return nil
}
