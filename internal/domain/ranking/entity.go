// Package ranking builds the weekly and season leaderboards of the pool.
//
// All computation here is synchronous and works on in-memory records; the only
// side channel is the WeeklyCache holding the lines of locked weeks.
package ranking

import (
	"fmt"
	"strconv"
)

// ══════════════════════════════════════════════════════════════════════════════
// RANKING LINE
// ══════════════════════════════════════════════════════════════════════════════

// UserSummary is the display part of a ranking line.
type UserSummary struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Icon     string `json:"icon"`
	IsOnline bool   `json:"isOnline"`
	Position int    `json:"position"`
}

// Score holds the points of one user in one ranking context.
type Score struct {
	// Total is bet points plus extras.
	Total int `json:"total"`

	// Bullseye counts bets that earned the maximum for their week.
	Bullseye int `json:"bullseye"`

	// Winner counts bets that earned any points.
	Winner int `json:"winner"`

	// Extras is the season-long prediction reward (season ranking only).
	Extras int `json:"extras"`

	// Percentage is bet points over the points available, one decimal place.
	// Extras never count toward it.
	Percentage string `json:"percentage"`

	// Running totals up to and including this week (weekly ranking only).
	AccumulatedPoints   int `json:"accumulatedPoints"`
	AccumulatedBullseye int `json:"accumulatedBullseye"`
	AccumulatedPosition int `json:"accumulatedPosition"`
}

// Line is one user's row in a ranking.
type Line struct {
	User         UserSummary `json:"user"`
	BetsCount    int         `json:"betsCount"`
	MatchesCount int         `json:"matchesCount"`
	Score        Score       `json:"score"`
}

// String returns the string representation for logging.
func (l Line) String() string {
	return fmt.Sprintf("Line{User: %s, Total: %d, Bullseye: %d, Position: %d}",
		l.User.Name, l.Score.Total, l.Score.Bullseye, l.User.Position)
}

// WeeklyRanking is the ranking of a single week.
type WeeklyRanking struct {
	Week     int    `json:"week"`
	IsLocked bool   `json:"isLocked"`
	Ranking  []Line `json:"ranking"`
}

// Result is everything a ranking request returns.
type Result struct {
	SeasonRanking []Line          `json:"seasonRanking"`
	WeeklyRanking []WeeklyRanking `json:"weeklyRanking"`
}

// FormatPercentage renders points over possible as a one-decimal percentage.
func FormatPercentage(points, possible int) string {
	pct := 0.0
	if possible > 0 {
		pct = float64(points) / float64(possible) * 100
	}
	return strconv.FormatFloat(pct, 'f', 1, 64)
}
