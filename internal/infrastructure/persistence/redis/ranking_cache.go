package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/bolao-nfl/bolao-hub/internal/domain/ranking"
)

// ══════════════════════════════════════════════════════════════════════════════
// RANKING CACHE
// ══════════════════════════════════════════════════════════════════════════════

// RankingCache implements ranking.WeeklyCache on Redis.
// Locked weeks are stored without expiry under WeekKey.String().
type RankingCache struct {
	store Store
}

// NewRankingCache creates a new RankingCache.
func NewRankingCache(store Store) *RankingCache {
	return &RankingCache{store: store}
}

var _ ranking.WeeklyCache = (*RankingCache)(nil)

// GetWeek returns the cached lines of a locked week.
func (c *RankingCache) GetWeek(ctx context.Context, key ranking.WeekKey) ([]ranking.Line, bool, error) {
	var lines []ranking.Line
	err := c.store.Get(ctx, key.String(), &lines)
	if errors.Is(err, ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return lines, true, nil
}

// SetWeek stores the lines of a locked week.
func (c *RankingCache) SetWeek(ctx context.Context, key ranking.WeekKey, lines []ranking.Line) error {
	if lines == nil {
		lines = []ranking.Line{}
	}
	if err := c.store.Set(ctx, key.String(), lines, TTLNoExpiry); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// EvictWeek removes a locked week.
func (c *RankingCache) EvictWeek(ctx context.Context, key ranking.WeekKey) error {
	if err := c.store.Delete(ctx, key.String()); err != nil {
		return fmt.Errorf("failed to evict %s: %w", key, err)
	}
	return nil
}
