package ranking

import (
	"sort"

	"github.com/bolao-nfl/bolao-hub/internal/domain/pool"
)

// WeekMatches groups the matches of one week.
type WeekMatches struct {
	Week    int
	Matches []pool.Match

	// ExpectedCount is how many matches the full schedule holds for this week.
	// A week with fewer fetched matches cannot be locked.
	ExpectedCount int
}

// IsComplete reports whether every match of the week has ended and the whole
// schedule of the week has been fetched.
func (w WeekMatches) IsComplete() bool {
	if len(w.Matches) == 0 || len(w.Matches) != w.ExpectedCount {
		return false
	}
	for _, m := range w.Matches {
		if !m.Status.HasEnded() {
			return false
		}
	}
	return true
}

// PartitionByWeek groups matches by week in ascending week order, keeping the
// original order inside each week. ExpectedCount is taken from the same list.
func PartitionByWeek(matches []pool.Match) []WeekMatches {
	byWeek := make(map[int]*WeekMatches)
	weeks := make([]int, 0)

	for _, m := range matches {
		wm, ok := byWeek[m.Week]
		if !ok {
			wm = &WeekMatches{Week: m.Week}
			byWeek[m.Week] = wm
			weeks = append(weeks, m.Week)
		}
		wm.Matches = append(wm.Matches, m)
		wm.ExpectedCount++
	}

	sort.Ints(weeks)

	result := make([]WeekMatches, 0, len(weeks))
	for _, w := range weeks {
		result = append(result, *byWeek[w])
	}
	return result
}
