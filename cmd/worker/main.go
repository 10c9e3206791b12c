// Package main is the entry point of the ranking worker.
//
// The worker runs only the periodic rebuild. It recomputes the configured
// season so finished weeks are locked into the shared Redis cache before
// the API needs them.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bolao-nfl/bolao-hub/config"
	"github.com/bolao-nfl/bolao-hub/internal/app"
	"github.com/bolao-nfl/bolao-hub/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.Scheduler.Enabled {
		return fmt.Errorf("worker started with SCHEDULER_ENABLED=false")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log := app.NewLogger(cfg).With(logger.Component("worker"))
	log.Info("starting ranking worker",
		logger.String("version", cfg.App.Version),
		logger.Season(cfg.Pool.Season),
		logger.Duration("interval", cfg.Scheduler.RebuildInterval),
	)
	if cfg.Redis.Disabled {
		log.Warn("redis disabled, locked weeks will not be shared with the API")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 3. STORES AND RANKING HANDLER
	// ─────────────────────────────────────────────────────────────────────────
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	// ─────────────────────────────────────────────────────────────────────────
	// 4. SCHEDULER
	// ─────────────────────────────────────────────────────────────────────────
	sched, err := a.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	sched.Start()

	<-ctx.Done()
	log.Info("shutdown signal received")

	if err := sched.Stop(); err != nil {
		return err
	}
	log.Info("ranking worker stopped")
	return nil
}
