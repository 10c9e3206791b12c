package scoring

import (
	"testing"

	"github.com/bolao-nfl/bolao-hub/internal/domain/pool"
	"github.com/stretchr/testify/assert"
)

func match(home, away int) pool.Match {
	return pool.Match{Season: 10, Week: 1, Status: pool.MatchFinal, HomeScore: home, AwayScore: away}
}

func TestRewardForBet(t *testing.T) {
	tests := []struct {
		name  string
		match pool.Match
		bet   pool.BetValue
		want  int
	}{
		// away won by 8: easy
		{"away easy exact", match(10, 18), pool.AwayEasy, 10},
		{"away easy called hard", match(10, 18), pool.AwayHard, 5},
		{"away easy wrong side", match(10, 18), pool.HomeEasy, 0},
		{"away easy wrong side hard", match(10, 18), pool.HomeHard, 0},

		// away won by exactly 7: still hard
		{"away hard at threshold", match(10, 17), pool.AwayHard, 10},
		{"away hard called easy", match(10, 17), pool.AwayEasy, 5},

		// home won by 10
		{"home easy exact", match(24, 14), pool.HomeEasy, 10},
		{"home easy called hard", match(24, 14), pool.HomeHard, 5},
		{"home easy wrong side", match(24, 14), pool.AwayEasy, 0},

		// home won by 1
		{"home hard exact", match(21, 20), pool.HomeHard, 10},
		{"home hard called easy", match(21, 20), pool.HomeEasy, 5},

		// tie
		{"tie away hard", match(17, 17), pool.AwayHard, 5},
		{"tie home hard", match(17, 17), pool.HomeHard, 5},
		{"tie away easy", match(17, 17), pool.AwayEasy, 0},
		{"tie home easy", match(17, 17), pool.HomeEasy, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewardForBet(tt.match, tt.bet, 10))
		})
	}
}

func TestRewardForBet_PlayoffScale(t *testing.T) {
	m := match(30, 20)
	m.Week = 22

	maxPoints := MaxPointsForWeek(m.Season, m.Week)
	assert.Equal(t, 80, RewardForBet(m, pool.HomeEasy, maxPoints))
	assert.Equal(t, 40, RewardForBet(m, pool.HomeHard, maxPoints))
}

func TestRewardForBet_IsAlwaysATier(t *testing.T) {
	for home := 0; home <= 20; home += 3 {
		for away := 0; away <= 20; away += 4 {
			for bet := pool.AwayEasy; bet <= pool.HomeHard; bet++ {
				r := RewardForBet(match(home, away), bet, 20)
				assert.Contains(t, []int{0, 10, 20}, r, "home=%d away=%d bet=%s", home, away, bet)
			}
		}
	}
}

func TestIsBullseye(t *testing.T) {
	assert.True(t, IsBullseye(10, 10))
	assert.False(t, IsBullseye(5, 10))
	assert.False(t, IsBullseye(0, 0))
}

func TestRewardForExtras(t *testing.T) {
	result := pool.NewExtraPicks().
		WithSingle(pool.ExtraSuperBowl, 5).
		WithSingle(pool.ExtraAFCChampion, 5).
		WithSingle(pool.ExtraNFCNorth, 2).
		WithWildcards(pool.ExtraAFCWildcard, 7, 9, 11)

	extras := map[int]pool.ExtraPicks{
		1: pool.NewExtraPicks().
			WithSingle(pool.ExtraSuperBowl, 5).
			WithWildcards(pool.ExtraAFCWildcard, 3, 7),
		2: pool.NewExtraPicks().
			WithSingle(pool.ExtraAFCChampion, 5).
			WithSingle(pool.ExtraNFCNorth, 2).
			WithWildcards(pool.ExtraAFCWildcard, 7, 9, 11),
		3: pool.NewExtraPicks().
			WithSingle(pool.ExtraSuperBowl, 6).
			WithSingle(pool.ExtraNFCChampion, 1),
		4: pool.NewExtraPicks(),
	}

	t.Run("single and wildcard", func(t *testing.T) {
		assert.Equal(t, 110, RewardForExtras(1, extras, &result))
	})
	t.Run("every wildcard team scores", func(t *testing.T) {
		assert.Equal(t, 50+20+30, RewardForExtras(2, extras, &result))
	})
	t.Run("wrong picks and unpublished category", func(t *testing.T) {
		assert.Equal(t, 0, RewardForExtras(3, extras, &result))
	})
	t.Run("empty picks", func(t *testing.T) {
		assert.Equal(t, 0, RewardForExtras(4, extras, &result))
	})
	t.Run("user without extras", func(t *testing.T) {
		assert.Equal(t, 0, RewardForExtras(99, extras, &result))
	})
	t.Run("no result yet", func(t *testing.T) {
		assert.Equal(t, 0, RewardForExtras(1, extras, nil))
	})
	t.Run("no extras at all", func(t *testing.T) {
		assert.Equal(t, 0, RewardForExtras(1, nil, &result))
	})
}
