// Package scoring holds the point tables of the pool and the pure functions
// that turn a prediction and a result into points.
package scoring

import "github.com/bolao-nfl/bolao-hub/internal/domain/pool"

// Points awarded for a correct extra prediction, by category.
const (
	SuperBowlPoints          = 100
	ConferenceChampionPoints = 50
	DivisionChampionPoints   = 20
	WildcardPoints           = 10
)

// EasyMarginThreshold is the margin above which a win counts as "easy".
const EasyMarginThreshold = 7

// lastLegacySeason is the final season played with the 17-week regular season.
const lastLegacySeason = 8

// MaxPointsForWeek returns the points a bullseye is worth in a given week.
//
// Seasons 1 to 8 have an 18-week regular season (weeks 0-17); from season 9
// on the regular season runs through week 18 and every playoff round moves
// one week later.
func MaxPointsForWeek(season, week int) int {
	if season >= 1 && season <= lastLegacySeason {
		switch {
		case week >= 0 && week <= 17:
			return 10
		case week == 18 || week == 19:
			return 20
		case week == 20:
			return 40
		case week == 21:
			return 80
		}
		return 0
	}

	if season > lastLegacySeason {
		switch {
		case week >= 0 && week <= 18:
			return 10
		case week == 19 || week == 20:
			return 20
		case week == 21:
			return 40
		case week > 21:
			return 80
		}
	}

	return 0
}

// MaxPointsForMatches sums MaxPointsForWeek over the given matches.
func MaxPointsForMatches(season int, matches []pool.Match) int {
	total := 0
	for _, m := range matches {
		total += MaxPointsForWeek(season, m.Week)
	}
	return total
}

// MaxPointsForExtraType returns the points a correct pick of type t is worth.
func MaxPointsForExtraType(t pool.ExtraType) int {
	switch {
	case t == pool.ExtraSuperBowl:
		return SuperBowlPoints
	case t.IsConferenceChampion():
		return ConferenceChampionPoints
	case t.IsDivisionChampion():
		return DivisionChampionPoints
	case t.IsWildcard():
		return WildcardPoints
	default:
		return 0
	}
}
