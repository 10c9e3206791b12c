package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/bolao-nfl/bolao-hub/internal/domain/ranking"
	"github.com/bolao-nfl/bolao-hub/pkg/circuitbreaker"
	"github.com/bolao-nfl/bolao-hub/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardedStore_OpensOnConnectionFailures(t *testing.T) {
	inner := newFakeStore()
	inner.getErr = errors.New("dial tcp: connection refused")
	g := NewGuardedStore(inner, logger.Discard())

	var dest []int
	for i := 0; i < 3; i++ {
		require.Error(t, g.Get(context.Background(), "k", &dest))
	}
	assert.Equal(t, circuitbreaker.StateOpen, g.State())

	inner.getErr = nil
	err := g.Get(context.Background(), "k", &dest)
	assert.ErrorIs(t, err, ErrCacheConnection)
}

func TestGuardedStore_MissesDoNotTrip(t *testing.T) {
	g := NewGuardedStore(newFakeStore(), logger.Discard())

	var dest []int
	for i := 0; i < 10; i++ {
		assert.ErrorIs(t, g.Get(context.Background(), "missing", &dest), ErrCacheMiss)
	}
	assert.Equal(t, circuitbreaker.StateClosed, g.State())
}

func TestGuardedStore_PassesThrough(t *testing.T) {
	inner := newFakeStore()
	g := NewGuardedStore(inner, logger.Discard())

	require.NoError(t, g.Set(context.Background(), "k", []int{1, 2}, TTLNoExpiry))

	var dest []int
	require.NoError(t, g.Get(context.Background(), "k", &dest))
	assert.Equal(t, []int{1, 2}, dest)

	require.NoError(t, g.Delete(context.Background(), "k"))
	assert.ErrorIs(t, g.Get(context.Background(), "k", &dest), ErrCacheMiss)
}

func TestGuardedStore_RankingCacheDegradesToMiss(t *testing.T) {
	inner := newFakeStore()
	inner.getErr = errors.New("i/o timeout")
	cache := NewRankingCache(NewGuardedStore(inner, logger.Discard()))

	for i := 0; i < 5; i++ {
		_, ok, err := cache.GetWeek(context.Background(), ranking.WeekKey{Season: 10, Week: 1})
		assert.False(t, ok)
		assert.Error(t, err)
	}
}
