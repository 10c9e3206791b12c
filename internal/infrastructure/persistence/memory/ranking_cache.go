// Package memory holds in-process implementations of the persistence
// contracts, used when Redis is disabled and in tests.
package memory

import (
	"context"
	"sync"

	"github.com/bolao-nfl/bolao-hub/internal/domain/ranking"
)

// RankingCache is a process-local ranking.WeeklyCache.
// Lines are copied on the way in and out so callers cannot alias cached state.
type RankingCache struct {
	weeks map[ranking.WeekKey][]ranking.Line
	mu    sync.RWMutex
}

// NewRankingCache creates an empty cache.
func NewRankingCache() *RankingCache {
	return &RankingCache{weeks: make(map[ranking.WeekKey][]ranking.Line)}
}

var _ ranking.WeeklyCache = (*RankingCache)(nil)

func (c *RankingCache) GetWeek(_ context.Context, key ranking.WeekKey) ([]ranking.Line, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	lines, ok := c.weeks[key]
	if !ok {
		return nil, false, nil
	}
	return append([]ranking.Line(nil), lines...), true, nil
}

func (c *RankingCache) SetWeek(_ context.Context, key ranking.WeekKey, lines []ranking.Line) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.weeks[key] = append([]ranking.Line{}, lines...)
	return nil
}

func (c *RankingCache) EvictWeek(_ context.Context, key ranking.WeekKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.weeks, key)
	return nil
}

// Len returns the number of locked weeks held.
func (c *RankingCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.weeks)
}
