package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bolao-nfl/bolao-hub/internal/domain/pool"
	"github.com/bolao-nfl/bolao-hub/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCatalog struct {
	teams []pool.Team
	err   error
	calls int
}

func (c *countingCatalog) GetAllTeams(context.Context) ([]pool.Team, error) {
	c.calls++
	return c.teams, c.err
}

func TestTeamCache_ReadThrough(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	source := &countingCatalog{teams: []pool.Team{{ID: 1, Name: "Bears", Code: "CHI"}}}
	cache := NewTeamCache(store, source, 0, logger.Discard())

	first, err := cache.GetAllTeams(ctx)
	require.NoError(t, err)
	second, err := cache.GetAllTeams(ctx)
	require.NoError(t, err)

	assert.Equal(t, source.teams, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, 14*24*time.Hour, store.ttls[KeyTeams])
}

func TestTeamCache_SourceError(t *testing.T) {
	source := &countingCatalog{err: errors.New("db down")}
	cache := NewTeamCache(newFakeStore(), source, time.Hour, logger.Discard())

	_, err := cache.GetAllTeams(context.Background())
	assert.EqualError(t, err, "db down")
}

func TestTeamCache_StoreFailureFallsBack(t *testing.T) {
	store := newFakeStore()
	store.getErr = errStoreDown
	store.setErr = errStoreDown
	source := &countingCatalog{teams: []pool.Team{{ID: 2, Name: "Packers"}}}
	cache := NewTeamCache(store, source, time.Hour, logger.Discard())

	teams, err := cache.GetAllTeams(context.Background())
	require.NoError(t, err)
	assert.Equal(t, source.teams, teams)
	assert.Equal(t, 1, store.setCall)
}

func TestTeamCache_EmptyCatalogNotCached(t *testing.T) {
	store := newFakeStore()
	source := &countingCatalog{}
	cache := NewTeamCache(store, source, time.Hour, logger.Discard())

	_, err := cache.GetAllTeams(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, store.setCall)
}
