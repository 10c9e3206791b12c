// Package app wires configuration into the running components shared by
// the API server and the worker.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bolao-nfl/bolao-hub/config"
	"github.com/bolao-nfl/bolao-hub/internal/application/query"
	"github.com/bolao-nfl/bolao-hub/internal/domain/pool"
	"github.com/bolao-nfl/bolao-hub/internal/domain/ranking"
	"github.com/bolao-nfl/bolao-hub/internal/infrastructure/persistence/memory"
	"github.com/bolao-nfl/bolao-hub/internal/infrastructure/persistence/postgres"
	"github.com/bolao-nfl/bolao-hub/internal/infrastructure/persistence/redis"
	"github.com/bolao-nfl/bolao-hub/internal/infrastructure/scheduler"
	"github.com/bolao-nfl/bolao-hub/internal/infrastructure/scheduler/jobs"
	"github.com/bolao-nfl/bolao-hub/internal/interface/http/handlers"
	"github.com/bolao-nfl/bolao-hub/pkg/logger"
)

// App holds the long-lived components. Close releases them in reverse order.
type App struct {
	Config   *config.Config
	Log      *logger.Logger
	DB       *postgres.Connection
	Redis    *redis.Cache
	Rankings *query.GetRankingHandler
	Health   *handlers.CompositeHealthChecker

	closers []func()
}

// NewLogger builds the process logger from configuration.
func NewLogger(cfg *config.Config) *logger.Logger {
	return logger.New(logger.Options{
		Output:    os.Stdout,
		Level:     logger.ParseLevel(cfg.Observability.LogLevel),
		AddCaller: cfg.IsDevelopment(),
	}).With(
		logger.String("app", cfg.App.Name),
		logger.String("env", string(cfg.App.Environment)),
	)
}

// New connects to the stores and assembles the ranking handler.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Log:    log,
		Health: handlers.NewCompositeHealthChecker(cfg.App.Version),
	}

	// ─────────────────────────────────────────────────────────────────────────
	// PostgreSQL
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("connecting to database")
	db, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL, postgres.PoolOptions{
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.DB = db
	a.closers = append(a.closers, db.Close)
	a.Health.AddCheck("postgres", handlers.NewPingCheck(db))

	if cfg.Database.AutoMigrate {
		if err := postgres.NewMigrator(db).Migrate(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("database schema is up to date")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// Caches
	// ─────────────────────────────────────────────────────────────────────────
	var (
		teams pool.TeamCatalog = postgres.NewTeamRepository(db)
		weeks ranking.WeeklyCache
	)

	if cfg.Redis.Disabled {
		log.Warn("redis disabled, locked weeks are kept in process memory")
		weeks = memory.NewRankingCache()
	} else {
		rc, err := redis.NewCache(redisConfig(cfg.Redis))
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.Redis = rc
		a.closers = append(a.closers, func() { _ = rc.Close() })
		a.Health.AddCheck("redis", handlers.NewPingCheck(rc))

		store := redis.NewGuardedStore(rc, log)
		teams = redis.NewTeamCache(store, teams, cfg.Redis.TeamCacheTTL, log)
		weeks = redis.NewRankingCache(store)
		log.Info("redis connection established", logger.String("addr", redisConfig(cfg.Redis).Addr()))
	}

	a.Rankings = query.NewGetRankingHandler(postgres.NewPoolRepository(db, log), teams, weeks, log)
	return a, nil
}

// NewScheduler registers the ranking warm-up job for the configured season.
func (a *App) NewScheduler() (*scheduler.Scheduler, error) {
	cfg := a.Config
	sched, err := scheduler.New(scheduler.Config{
		JobTimeout:  cfg.Scheduler.JobTimeout,
		StopTimeout: cfg.App.ShutdownTimeout,
	}, a.Log)
	if err != nil {
		return nil, err
	}

	job := jobs.NewRebuildRankingJob(a.Rankings, cfg.Pool.Season, cfg.Pool.SeasonStart, a.Log)
	if err := sched.Every(cfg.Scheduler.RebuildInterval, job); err != nil {
		return nil, errors.Join(err, sched.Stop())
	}
	return sched, nil
}

// Close releases every resource opened by New.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func redisConfig(c config.RedisConfig) redis.Config {
	rc := redis.DefaultConfig()
	rc.Host = c.Host
	rc.Port = c.Port
	rc.Password = c.Password
	rc.DB = c.DB
	if c.PoolSize > 0 {
		rc.PoolSize = c.PoolSize
	}
	if c.DialTimeout > 0 {
		rc.DialTimeout = c.DialTimeout
	}
	if c.ReadTimeout > 0 {
		rc.ReadTimeout = c.ReadTimeout
	}
	if c.WriteTimeout > 0 {
		rc.WriteTimeout = c.WriteTimeout
	}
	return rc
}
