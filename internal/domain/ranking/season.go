package ranking

import (
	"time"

	"github.com/bolao-nfl/bolao-hub/internal/domain/pool"
	"github.com/bolao-nfl/bolao-hub/internal/domain/scoring"
)

// SeasonBuilder builds the season leaderboard: every started match of the
// season plus the extra-bet reward.
type SeasonBuilder struct {
	now Clock
}

// NewSeasonBuilder creates a season builder evaluating online status at time.Now.
func NewSeasonBuilder() *SeasonBuilder {
	return &SeasonBuilder{now: time.Now}
}

// WithClock returns a copy of the builder evaluating online status at now().
func (b *SeasonBuilder) WithClock(now Clock) *SeasonBuilder {
	return &SeasonBuilder{now: now}
}

// Build ranks users over the season. Matches that have not started are
// ignored. result is nil until the season outcome is published.
func (b *SeasonBuilder) Build(
	season int,
	users []pool.User,
	matches []pool.Match,
	book *BetBook,
	extrasByUser map[int]pool.ExtraPicks,
	result *pool.ExtraPicks,
) []Line {
	started := StartedMatches(matches)
	totalPossible := scoring.MaxPointsForMatches(season, started)
	now := b.now()

	lines := make([]Line, 0, len(users))
	for _, u := range users {
		line := ScoreUser(u, started, book, totalPossible, now)

		extras := scoring.RewardForExtras(u.ID, extrasByUser, result)
		line.Score.Extras = extras
		line.Score.Total += extras

		lines = append(lines, line)
	}

	SortByScore(lines)
	AssignPositions(lines)
	return lines
}

// StartedMatches returns the matches whose status is past not-started.
func StartedMatches(matches []pool.Match) []pool.Match {
	started := make([]pool.Match, 0, len(matches))
	for _, m := range matches {
		if m.Status.HasStarted() {
			started = append(started, m)
		}
	}
	return started
}
