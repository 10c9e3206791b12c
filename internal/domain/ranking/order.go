package ranking

import (
	"sort"
	"strings"
)

// ══════════════════════════════════════════════════════════════════════════════
// ORDERING AND POSITIONS
// ══════════════════════════════════════════════════════════════════════════════

// SortByScore orders lines by total, then bullseye (both descending), then name.
func SortByScore(lines []Line) {
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i].Score, lines[j].Score
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		if a.Bullseye != b.Bullseye {
			return a.Bullseye > b.Bullseye
		}
		return strings.Compare(lines[i].User.Name, lines[j].User.Name) < 0
	})
}

// SortByAccumulated orders lines by accumulated points, then accumulated bullseye.
// Lines with equal pairs keep their relative order.
func SortByAccumulated(lines []Line) {
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i].Score, lines[j].Score
		if a.AccumulatedPoints != b.AccumulatedPoints {
			return a.AccumulatedPoints > b.AccumulatedPoints
		}
		return a.AccumulatedBullseye > b.AccumulatedBullseye
	})
}

// assignPositions gives already-sorted lines competition positions: tied lines
// share a position and the next distinct line takes its 1-based index
// (1, 1, 3, 4 rather than 1, 1, 2, 3).
func assignPositions(lines []Line, tied func(a, b Line) bool, set func(l *Line, pos int)) {
	pos := 0
	for i := range lines {
		if i == 0 || !tied(lines[i-1], lines[i]) {
			pos = i + 1
		}
		set(&lines[i], pos)
	}
}

// AssignPositions sets User.Position on lines sorted by SortByScore.
func AssignPositions(lines []Line) {
	assignPositions(lines,
		func(a, b Line) bool {
			return a.Score.Total == b.Score.Total && a.Score.Bullseye == b.Score.Bullseye
		},
		func(l *Line, pos int) { l.User.Position = pos },
	)
}

// AssignAccumulatedPositions sets Score.AccumulatedPosition on lines sorted by
// SortByAccumulated.
func AssignAccumulatedPositions(lines []Line) {
	assignPositions(lines,
		func(a, b Line) bool {
			return a.Score.AccumulatedPoints == b.Score.AccumulatedPoints &&
				a.Score.AccumulatedBullseye == b.Score.AccumulatedBullseye
		},
		func(l *Line, pos int) { l.Score.AccumulatedPosition = pos },
	)
}
