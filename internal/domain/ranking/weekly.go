package ranking

import (
	"context"
	"time"

	"github.com/bolao-nfl/bolao-hub/internal/domain/pool"
	"github.com/bolao-nfl/bolao-hub/internal/domain/scoring"
	"github.com/bolao-nfl/bolao-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// WEEKLY RANKING BUILDER
// ══════════════════════════════════════════════════════════════════════════════

// Clock returns the evaluation time used for online status.
type Clock func() time.Time

// WeeklyBuilder builds one ranking per week with running season totals.
//
// A week is open while any of its matches is still to be decided, and is
// recomputed on every call. Once every match has ended and the whole week has
// been fetched, the week is locked: its lines are written to the cache and
// replayed from there until evicted.
type WeeklyBuilder struct {
	cache WeeklyCache
	log   *logger.Logger
	now   Clock
}

// NewWeeklyBuilder creates a builder. A nil cache disables locking.
func NewWeeklyBuilder(cache WeeklyCache, log *logger.Logger) *WeeklyBuilder {
	if log == nil {
		log = logger.Default()
	}
	return &WeeklyBuilder{
		cache: cache,
		log:   log.With(logger.Component("weekly_ranking")),
		now:   time.Now,
	}
}

// WithClock returns a copy of the builder evaluating online status at now().
func (b *WeeklyBuilder) WithClock(now Clock) *WeeklyBuilder {
	c := *b
	c.now = now
	return &c
}

type runningTotal struct {
	points   int
	bullseye int
}

// Build returns the rankings of the given weeks in the order given, which
// must be ascending (see PartitionByWeek).
func (b *WeeklyBuilder) Build(
	ctx context.Context,
	season int,
	weeks []WeekMatches,
	users []pool.User,
	book *BetBook,
) []WeeklyRanking {
	running := make(map[int]runningTotal, len(users))
	result := make([]WeeklyRanking, 0, len(weeks))
	now := b.now()

	for _, wm := range weeks {
		key := WeekKey{Season: season, Week: wm.Week}

		if cached, ok := b.lookup(ctx, key); ok {
			// Later weeks continue from the totals stored with the locked week.
			for _, line := range cached {
				running[line.User.ID] = runningTotal{
					points:   line.Score.AccumulatedPoints,
					bullseye: line.Score.AccumulatedBullseye,
				}
			}
			result = append(result, WeeklyRanking{Week: wm.Week, IsLocked: true, Ranking: cached})
			continue
		}

		weeklyMax := scoring.MaxPointsForMatches(season, wm.Matches)

		lines := make([]Line, 0, len(users))
		for _, u := range users {
			line := ScoreUser(u, wm.Matches, book, weeklyMax, now)

			acc := running[u.ID]
			acc.points += line.Score.Total
			acc.bullseye += line.Score.Bullseye
			running[u.ID] = acc

			line.Score.AccumulatedPoints = acc.points
			line.Score.AccumulatedBullseye = acc.bullseye
			lines = append(lines, line)
		}

		SortByAccumulated(lines)
		AssignAccumulatedPositions(lines)

		SortByScore(lines)
		AssignPositions(lines)

		locked := wm.IsComplete()
		if locked {
			b.store(ctx, key, lines)
		}

		result = append(result, WeeklyRanking{Week: wm.Week, IsLocked: locked, Ranking: lines})
	}

	return result
}

func (b *WeeklyBuilder) lookup(ctx context.Context, key WeekKey) ([]Line, bool) {
	if b.cache == nil {
		return nil, false
	}

	lines, ok, err := b.cache.GetWeek(ctx, key)
	if err != nil {
		b.log.Warn("weekly cache read failed, recomputing week",
			logger.CacheKey(key.String()),
			logger.Err(err),
		)
		return nil, false
	}
	if ok {
		b.log.Debug("returning cached weekly ranking", logger.CacheKey(key.String()))
	}
	return lines, ok
}

func (b *WeeklyBuilder) store(ctx context.Context, key WeekKey, lines []Line) {
	if b.cache == nil {
		return
	}

	if err := b.cache.SetWeek(ctx, key, lines); err != nil {
		b.log.Warn("failed to cache locked week",
			logger.CacheKey(key.String()),
			logger.Err(err),
		)
		return
	}
	b.log.Info("cached locked weekly ranking",
		logger.Season(key.Season),
		logger.Week(key.Week),
		logger.CacheKey(key.String()),
		logger.Int("users", len(lines)),
	)
}
