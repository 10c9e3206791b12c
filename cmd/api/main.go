// Package main is the entry point of the ranking API.
//
// The API serves the season and weekly rankings of the pool. Unless
// disabled, it also runs the periodic rebuild that locks finished weeks
// into the cache ahead of user traffic.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bolao-nfl/bolao-hub/config"
	"github.com/bolao-nfl/bolao-hub/internal/app"
	httpapi "github.com/bolao-nfl/bolao-hub/internal/interface/http"
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

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log := app.NewLogger(cfg).With(logger.Component("api"))
	log.Info("starting ranking API",
		logger.String("version", cfg.App.Version),
		logger.Season(cfg.Pool.Season),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. STORES AND RANKING HANDLER
	// ─────────────────────────────────────────────────────────────────────────
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	// ─────────────────────────────────────────────────────────────────────────
	// 4. SCHEDULER (optional)
	// ─────────────────────────────────────────────────────────────────────────
	if cfg.Scheduler.Enabled {
		sched, err := a.NewScheduler()
		if err != nil {
			return fmt.Errorf("failed to create scheduler: %w", err)
		}
		sched.Start()
		defer func() {
			if err := sched.Stop(); err != nil {
				log.Error("scheduler stop failed", logger.Err(err))
			}
		}()
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. HTTP SERVER
	// ─────────────────────────────────────────────────────────────────────────
	server := httpapi.NewServer(httpapi.Config{
		Host:              cfg.HTTP.Host,
		Port:              cfg.HTTP.Port,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       2 * cfg.HTTP.WriteTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		AllowedOrigins:    cfg.HTTP.AllowedOrigins,
		APIKeyHeader:      "X-API-Key",
		AdminAPIKeyHashes: cfg.HTTP.AdminAPIKeyHashes,
		Version:           cfg.App.Version,
	}, httpapi.Dependencies{
		Rankings:      a.Rankings,
		DefaultSeason: cfg.Pool.Season,
		SeasonStart:   cfg.Pool.SeasonStart,
		SeasonStarts:  cfg.Pool.SeasonStarts,
		Logger:        log,
		HealthChecker: a.Health,
	})

	errCh := server.StartAsync()

	// ─────────────────────────────────────────────────────────────────────────
	// 6. WAIT FOR SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("http shutdown failed", logger.Err(err))
	}

	log.Info("ranking API stopped")
	return nil
}
