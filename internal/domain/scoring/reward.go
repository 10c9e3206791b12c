package scoring

import "github.com/bolao-nfl/bolao-hub/internal/domain/pool"

// RewardForBet scores one bet against the result of its match.
// The reward is always 0, maxPoints/2 or maxPoints.
func RewardForBet(match pool.Match, bet pool.BetValue, maxPoints int) int {
	diff := match.Margin()

	switch {
	case diff > 0:
		return tierReward(diff, bet, pool.AwayEasy, pool.AwayHard, maxPoints)
	case diff < 0:
		return tierReward(-diff, bet, pool.HomeEasy, pool.HomeHard, maxPoints)
	default:
		// A tie is the closest possible game: any "hard" call gets half.
		if bet == pool.AwayHard || bet == pool.HomeHard {
			return maxPoints / 2
		}
		return 0
	}
}

// tierReward scores a bet when the side holding easy/hard won by margin.
func tierReward(margin int, bet, easy, hard pool.BetValue, maxPoints int) int {
	if bet != easy && bet != hard {
		return 0
	}

	actual := hard
	if margin > EasyMarginThreshold {
		actual = easy
	}

	if bet == actual {
		return maxPoints
	}
	return maxPoints / 2
}

// IsBullseye reports whether a reward is the maximum for its context.
func IsBullseye(reward, maxPoints int) bool {
	return maxPoints > 0 && reward == maxPoints
}

// RewardForExtras scores a user's extra picks against the season outcome.
//
// It returns 0 when nobody submitted extras, when no outcome has been
// published yet, or when this user submitted nothing. Every correct wildcard
// team scores on its own.
func RewardForExtras(userID int, extrasByUser map[int]pool.ExtraPicks, result *pool.ExtraPicks) int {
	if len(extrasByUser) == 0 || result == nil {
		return 0
	}

	picks, ok := extrasByUser[userID]
	if !ok || picks.IsEmpty() {
		return 0
	}

	total := 0
	for _, t := range picks.Types() {
		points := MaxPointsForExtraType(t)

		if t.IsWildcard() {
			qualified := make(map[int]struct{})
			for _, id := range result.Wildcards(t) {
				qualified[id] = struct{}{}
			}
			for _, id := range picks.Wildcards(t) {
				if _, ok := qualified[id]; ok {
					total += points
				}
			}
			continue
		}

		predicted, _ := picks.Single(t)
		if actual, ok := result.Single(t); ok && actual == predicted {
			total += points
		}
	}

	return total
}
