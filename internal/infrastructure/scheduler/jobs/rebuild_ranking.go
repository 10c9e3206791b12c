// Package jobs contains implementations of scheduled jobs.
package jobs

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/bolao-nfl/bolao-hub/internal/application/query"
	"github.com/bolao-nfl/bolao-hub/internal/domain/ranking"
	"github.com/bolao-nfl/bolao-hub/pkg/logger"
	"github.com/google/uuid"
)

// ══════════════════════════════════════════════════════════════════════════════
// REBUILD RANKING JOB
// ══════════════════════════════════════════════════════════════════════════════

// RankingQuery computes the rankings of a season.
// *query.GetRankingHandler implements it.
type RankingQuery interface {
	Handle(ctx context.Context, q query.GetRankingQuery) (*ranking.Result, error)
}

// RebuildRankingJob recomputes the configured season on a schedule so that
// finished weeks get locked into the cache before anyone asks for them.
type RebuildRankingJob struct {
	rankings    RankingQuery
	season      int
	seasonStart int64
	log         *logger.Logger

	lastStats atomic.Pointer[RebuildStats]
}

// RebuildStats summarises one run.
type RebuildStats struct {
	RunID       string
	StartedAt   time.Time
	Duration    time.Duration
	Users       int
	Weeks       int
	LockedWeeks int
	Leader      string
}

// NewRebuildRankingJob creates the job for one season.
func NewRebuildRankingJob(rankings RankingQuery, season int, seasonStart int64, log *logger.Logger) *RebuildRankingJob {
	return &RebuildRankingJob{
		rankings:    rankings,
		season:      season,
		seasonStart: seasonStart,
		log:         log.With(logger.Component("rebuild_ranking"), logger.Season(season)),
	}
}

// Name returns the job name.
func (j *RebuildRankingJob) Name() string {
	return "rebuild_ranking"
}

// Description returns a human-readable description.
func (j *RebuildRankingJob) Description() string {
	return fmt.Sprintf("Recomputes season %d rankings and locks finished weeks", j.season)
}

// Run executes the rebuild.
func (j *RebuildRankingJob) Run(ctx context.Context) error {
	stats := &RebuildStats{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	log := j.log.With(logger.String("run_id", stats.RunID))

	result, err := j.rankings.Handle(ctx, query.GetRankingQuery{
		Season:      j.season,
		SeasonStart: j.seasonStart,
	})
	if err != nil {
		return fmt.Errorf("rebuild season %d: %w", j.season, err)
	}

	stats.Duration = time.Since(stats.StartedAt)
	stats.Users = len(result.SeasonRanking)
	stats.Weeks = len(result.WeeklyRanking)
	for _, w := range result.WeeklyRanking {
		if w.IsLocked {
			stats.LockedWeeks++
		}
	}
	if len(result.SeasonRanking) > 0 {
		stats.Leader = result.SeasonRanking[0].User.Name
	}
	j.lastStats.Store(stats)

	log.Info("ranking rebuilt",
		logger.Int("users", stats.Users),
		logger.Int("weeks", stats.Weeks),
		logger.Int("locked_weeks", stats.LockedWeeks),
		logger.String("leader", stats.Leader),
		logger.Latency(stats.Duration),
	)
	return nil
}

// LastStats returns the summary of the last successful run, or nil.
func (j *RebuildRankingJob) LastStats() *RebuildStats {
	return j.lastStats.Load()
}
