package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bolao-nfl/bolao-hub/pkg/circuitbreaker"
	"github.com/bolao-nfl/bolao-hub/pkg/logger"
)

// GuardedStore puts a circuit breaker in front of a Store. While Redis is
// failing, calls return ErrCacheConnection at once and the typed caches fall
// back to recomputing from PostgreSQL.
type GuardedStore struct {
	store   Store
	breaker *circuitbreaker.CircuitBreaker
}

var _ Store = (*GuardedStore)(nil)

// NewGuardedStore wraps store. Misses and bad input never trip the breaker.
func NewGuardedStore(store Store, log *logger.Logger) *GuardedStore {
	if log == nil {
		log = logger.Default()
	}
	log = log.With(logger.Component("redis_breaker"))

	return &GuardedStore{
		store: store,
		breaker: circuitbreaker.CacheBreaker(isConnectionFailure, func(name string, from, to circuitbreaker.State) {
			log.Warn("cache circuit state changed",
				logger.String("breaker", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
		}),
	}
}

// State exposes the breaker state for health reporting.
func (g *GuardedStore) State() circuitbreaker.State {
	return g.breaker.State()
}

func (g *GuardedStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return g.guard(ctx, func(ctx context.Context) error {
		return g.store.Set(ctx, key, value, ttl)
	})
}

func (g *GuardedStore) Get(ctx context.Context, key string, dest any) error {
	return g.guard(ctx, func(ctx context.Context) error {
		return g.store.Get(ctx, key, dest)
	})
}

func (g *GuardedStore) Delete(ctx context.Context, keys ...string) error {
	return g.guard(ctx, func(ctx context.Context) error {
		return g.store.Delete(ctx, keys...)
	})
}

func (g *GuardedStore) guard(ctx context.Context, fn func(context.Context) error) error {
	err := g.breaker.Execute(ctx, fn)
	if circuitbreaker.IsRejected(err) {
		return fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}
	return err
}

func isConnectionFailure(err error) bool {
	switch {
	case errors.Is(err, ErrCacheMiss),
		errors.Is(err, ErrCacheKeyEmpty),
		errors.Is(err, ErrCacheInvalidTTL),
		errors.Is(err, ErrCacheSerialization),
		errors.Is(err, context.Canceled):
		return false
	}
	return true
}
