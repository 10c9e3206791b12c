package ranking

import (
	"context"
	"fmt"
)

// WeeklyRankingNamespace prefixes every locked-week cache key.
const WeeklyRankingNamespace = "WEEKLY_RANKING"

// WeekKey identifies the locked ranking of one week.
type WeekKey struct {
	Season int
	Week   int
}

// String returns the deterministic cache key, e.g. "WEEKLY_RANKING_10_3".
func (k WeekKey) String() string {
	return fmt.Sprintf("%s_%d_%d", WeeklyRankingNamespace, k.Season, k.Week)
}

// WeeklyCache stores the final lines of locked weeks.
//
// Once a week is written it is served as-is until EvictWeek is called. Writes
// for the same key always carry the same value, so concurrent writers need no
// coordination: the last write wins.
type WeeklyCache interface {
	// GetWeek returns the cached lines and true, or false on a miss.
	GetWeek(ctx context.Context, key WeekKey) ([]Line, bool, error)

	// SetWeek stores the lines of a locked week.
	SetWeek(ctx context.Context, key WeekKey, lines []Line) error

	// EvictWeek drops a cached week so it is recomputed on the next request.
	EvictWeek(ctx context.Context, key WeekKey) error
}
