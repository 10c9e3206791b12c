package ranking

import (
	"time"

	"github.com/bolao-nfl/bolao-hub/internal/domain/pool"
	"github.com/bolao-nfl/bolao-hub/internal/domain/scoring"
)

// BetBook indexes bets by (user, match).
//
// When a user has several bets on the same match only the first one seen is
// kept; later duplicates are ignored.
type BetBook struct {
	bets map[betKey]pool.BetValue
}

type betKey struct {
	userID  int
	matchID int
}

// NewBetBook indexes bets in the order given.
func NewBetBook(bets []pool.Bet) *BetBook {
	b := &BetBook{bets: make(map[betKey]pool.BetValue, len(bets))}
	for _, bet := range bets {
		k := betKey{userID: bet.UserID, matchID: bet.MatchID}
		if _, dup := b.bets[k]; dup {
			continue
		}
		b.bets[k] = bet.Value
	}
	return b
}

// Lookup returns the bet a user placed on a match.
func (b *BetBook) Lookup(userID, matchID int) (pool.BetValue, bool) {
	if b == nil {
		return 0, false
	}
	v, ok := b.bets[betKey{userID: userID, matchID: matchID}]
	return v, ok
}

// Len returns the number of indexed bets.
func (b *BetBook) Len() int {
	if b == nil {
		return 0
	}
	return len(b.bets)
}

// ScoreUser scores one user against a set of matches.
// Matches the user did not bet on are skipped and do not count as bets.
func ScoreUser(user pool.User, matches []pool.Match, book *BetBook, totalPossiblePoints int, now time.Time) Line {
	line := Line{
		User: UserSummary{
			ID:       user.ID,
			Name:     user.Name,
			Color:    user.Color,
			Icon:     user.Icon,
			IsOnline: user.IsOnline(now),
		},
		MatchesCount: len(matches),
	}

	for _, m := range matches {
		bet, ok := book.Lookup(user.ID, m.ID)
		if !ok {
			continue
		}
		line.BetsCount++

		maxPoints := scoring.MaxPointsForWeek(m.Season, m.Week)
		reward := scoring.RewardForBet(m, bet, maxPoints)

		line.Score.Total += reward
		if reward > 0 {
			line.Score.Winner++
		}
		if scoring.IsBullseye(reward, maxPoints) {
			line.Score.Bullseye++
		}
	}

	line.Score.Percentage = FormatPercentage(line.Score.Total, totalPossiblePoints)
	return line
}
