package scoring

import (
	"testing"

	"github.com/bolao-nfl/bolao-hub/internal/domain/pool"
	"github.com/stretchr/testify/assert"
)

func TestMaxPointsForWeek(t *testing.T) {
	tests := []struct {
		name   string
		season int
		week   int
		want   int
	}{
		{"legacy regular season start", 1, 0, 10},
		{"legacy last regular week", 8, 17, 10},
		{"legacy wildcard round", 8, 18, 20},
		{"legacy divisional round", 5, 19, 20},
		{"legacy conference round", 8, 20, 40},
		{"legacy super bowl", 8, 21, 80},
		{"legacy beyond schedule", 8, 22, 0},
		{"legacy negative week", 3, -1, 0},
		{"modern regular week 18", 9, 18, 10},
		{"modern wildcard round", 9, 19, 20},
		{"modern divisional round", 10, 20, 20},
		{"modern conference round", 10, 21, 40},
		{"modern super bowl", 10, 22, 80},
		{"modern late week", 12, 25, 80},
		{"modern negative week", 10, -1, 0},
		{"season zero", 0, 1, 0},
		{"negative season", -4, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaxPointsForWeek(tt.season, tt.week))
		})
	}
}

func TestMaxPointsForMatches(t *testing.T) {
	matches := []pool.Match{{Week: 1}, {Week: 1}, {Week: 19}, {Week: 22}}

	assert.Equal(t, 120, MaxPointsForMatches(10, matches))
	assert.Equal(t, 0, MaxPointsForMatches(10, nil))
}

func TestMaxPointsForExtraType(t *testing.T) {
	assert.Equal(t, 100, MaxPointsForExtraType(pool.ExtraSuperBowl))
	assert.Equal(t, 50, MaxPointsForExtraType(pool.ExtraAFCChampion))
	assert.Equal(t, 50, MaxPointsForExtraType(pool.ExtraNFCChampion))
	for _, d := range []pool.ExtraType{
		pool.ExtraAFCNorth, pool.ExtraAFCSouth, pool.ExtraAFCEast, pool.ExtraAFCWest,
		pool.ExtraNFCNorth, pool.ExtraNFCSouth, pool.ExtraNFCEast, pool.ExtraNFCWest,
	} {
		assert.Equal(t, 20, MaxPointsForExtraType(d), "division %d", d)
	}
	assert.Equal(t, 10, MaxPointsForExtraType(pool.ExtraAFCWildcard))
	assert.Equal(t, 10, MaxPointsForExtraType(pool.ExtraNFCWildcard))
	assert.Equal(t, 0, MaxPointsForExtraType(pool.ExtraType(0)))
	assert.Equal(t, 0, MaxPointsForExtraType(pool.ExtraType(14)))
}
