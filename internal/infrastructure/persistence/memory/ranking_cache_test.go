package memory

import (
	"context"
	"testing"

	"github.com/bolao-nfl/bolao-hub/internal/domain/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankingCache_SetGetEvict(t *testing.T) {
	ctx := context.Background()
	cache := NewRankingCache()
	key := ranking.WeekKey{Season: 10, Week: 3}

	_, ok, err := cache.GetWeek(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	lines := []ranking.Line{{User: ranking.UserSummary{ID: 1, Name: "ana"}}}
	require.NoError(t, cache.SetWeek(ctx, key, lines))

	got, ok, err := cache.GetWeek(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, lines, got)
	assert.Equal(t, 1, cache.Len())

	require.NoError(t, cache.EvictWeek(ctx, key))
	_, ok, _ = cache.GetWeek(ctx, key)
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestRankingCache_CopiesLines(t *testing.T) {
	ctx := context.Background()
	cache := NewRankingCache()
	key := ranking.WeekKey{Season: 10, Week: 1}

	lines := []ranking.Line{{User: ranking.UserSummary{ID: 1, Name: "ana"}}}
	require.NoError(t, cache.SetWeek(ctx, key, lines))
	lines[0].User.Name = "changed"

	got, _, _ := cache.GetWeek(ctx, key)
	assert.Equal(t, "ana", got[0].User.Name)

	got[0].User.Name = "changed again"
	again, _, _ := cache.GetWeek(ctx, key)
	assert.Equal(t, "ana", again[0].User.Name)
}

func TestRankingCache_EvictMissingKey(t *testing.T) {
	cache := NewRankingCache()
	assert.NoError(t, cache.EvictWeek(context.Background(), ranking.WeekKey{Season: 1, Week: 1}))
}
