package pool

import (
	"fmt"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// USER
// ══════════════════════════════════════════════════════════════════════════════

// OnlineWindow is how long after the last activity a user is still shown as online.
const OnlineWindow = 5 * time.Minute

// User is a participant of the pool in a given season.
type User struct {
	ID    int
	Name  string
	Color string
	Icon  string

	// LastOnline is the epoch-seconds timestamp of the last activity.
	LastOnline int64
}

// IsOnline reports whether the user was active within OnlineWindow of now.
func (u User) IsOnline(now time.Time) bool {
	return now.Unix()-u.LastOnline <= int64(OnlineWindow/time.Second)
}

// ══════════════════════════════════════════════════════════════════════════════
// TEAM
// ══════════════════════════════════════════════════════════════════════════════

// Team is display metadata for a franchise. It plays no part in scoring.
type Team struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Alias      string `json:"alias"`
	Code       string `json:"code"`
	Conference string `json:"conference"`
	Division   string `json:"division"`
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

// ══════════════════════════════════════════════════════════════════════════════
// MATCH
// ══════════════════════════════════════════════════════════════════════════════

// MatchStatus is the lifecycle state of a match.
type MatchStatus int

const (
	MatchNotStarted MatchStatus = iota
	MatchInProgress
	MatchFinal
	MatchFinalOvertime
	MatchCancelled
)

// String returns the string representation of the status.
func (s MatchStatus) String() string {
	switch s {
	case MatchNotStarted:
		return "not_started"
	case MatchInProgress:
		return "in_progress"
	case MatchFinal:
		return "final"
	case MatchFinalOvertime:
		return "final_overtime"
	case MatchCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// HasStarted reports whether scores carry meaning.
func (s MatchStatus) HasStarted() bool {
	return s != MatchNotStarted
}

// HasEnded reports whether the result can no longer change.
func (s MatchStatus) HasEnded() bool {
	return s == MatchFinal || s == MatchFinalOvertime || s == MatchCancelled
}

// Match is a single game of a season week.
type Match struct {
	ID     int
	Season int
	Week   int

	// Timestamp is the kickoff time in epoch seconds.
	Timestamp int64

	Status     MatchStatus
	HomeScore  int
	AwayScore  int
	HomeTeamID int
	AwayTeamID int

	// Home and Away are filled from the team catalog before ranking.
	Home *Team
	Away *Team
}

// Margin returns awayScore - homeScore. Positive means the away team won.
func (m Match) Margin() int {
	return m.AwayScore - m.HomeScore
}

// ══════════════════════════════════════════════════════════════════════════════
// BET
// ══════════════════════════════════════════════════════════════════════════════

// BetValue is a weekly prediction of the winner and margin of a match.
// "Easy" predicts a margin above 7 points, "hard" a margin of 7 or less.
type BetValue int

const (
	AwayEasy BetValue = 0
	AwayHard BetValue = 1
	HomeEasy BetValue = 2
	HomeHard BetValue = 3
)

// IsValid reports whether v is one of the four known predictions.
func (v BetValue) IsValid() bool {
	return v >= AwayEasy && v <= HomeHard
}

// String returns the string representation of the bet value.
func (v BetValue) String() string {
	switch v {
	case AwayEasy:
		return "away_easy"
	case AwayHard:
		return "away_hard"
	case HomeEasy:
		return "home_easy"
	case HomeHard:
		return "home_hard"
	default:
		return fmt.Sprintf("unknown(%d)", int(v))
	}
}

// Bet is one user's prediction for one match.
type Bet struct {
	MatchID int
	UserID  int
	Value   BetValue
}

// ══════════════════════════════════════════════════════════════════════════════
// EXTRA BETS
// ══════════════════════════════════════════════════════════════════════════════

// ExtraBet holds one user's season-long predictions.
type ExtraBet struct {
	Season int
	UserID int
	Picks  ExtraPicks
}

// ExtraBetResult is the canonical outcome document of a season.
type ExtraBetResult struct {
	Season int
	Picks  ExtraPicks
}
