package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func line(name string, total, bullseye int) Line {
	return Line{User: UserSummary{Name: name}, Score: Score{Total: total, Bullseye: bullseye}}
}

func names(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.User.Name
	}
	return out
}

func TestSortByScore(t *testing.T) {
	lines := []Line{
		line("dora", 20, 1),
		line("bia", 30, 1),
		line("caio", 30, 2),
		line("ana", 20, 1),
	}

	SortByScore(lines)

	assert.Equal(t, []string{"caio", "bia", "ana", "dora"}, names(lines))
}

func TestAssignPositions_CompetitionRanking(t *testing.T) {
	lines := []Line{
		line("ana", 30, 2),
		line("bia", 30, 2),
		line("caio", 30, 2),
		line("dora", 20, 1),
	}

	SortByScore(lines)
	AssignPositions(lines)

	positions := make([]int, len(lines))
	for i, l := range lines {
		positions[i] = l.User.Position
	}
	assert.Equal(t, []int{1, 1, 1, 4}, positions)
}

func TestAssignPositions_BullseyeBreaksTie(t *testing.T) {
	lines := []Line{line("ana", 30, 1), line("bia", 30, 3), line("caio", 10, 0), line("dora", 10, 0)}

	SortByScore(lines)
	AssignPositions(lines)

	assert.Equal(t, "bia", lines[0].User.Name)
	assert.Equal(t, 1, lines[0].User.Position)
	assert.Equal(t, 2, lines[1].User.Position)
	assert.Equal(t, 3, lines[2].User.Position)
	assert.Equal(t, 3, lines[3].User.Position)
}

func TestAccumulatedPositions(t *testing.T) {
	lines := []Line{
		{User: UserSummary{Name: "ana"}, Score: Score{AccumulatedPoints: 40, AccumulatedBullseye: 3}},
		{User: UserSummary{Name: "bia"}, Score: Score{AccumulatedPoints: 50, AccumulatedBullseye: 1}},
		{User: UserSummary{Name: "caio"}, Score: Score{AccumulatedPoints: 40, AccumulatedBullseye: 3}},
	}

	SortByAccumulated(lines)
	AssignAccumulatedPositions(lines)

	assert.Equal(t, []string{"bia", "ana", "caio"}, names(lines))
	assert.Equal(t, 1, lines[0].Score.AccumulatedPosition)
	assert.Equal(t, 2, lines[1].Score.AccumulatedPosition)
	assert.Equal(t, 2, lines[2].Score.AccumulatedPosition)
}

func TestAssignPositions_Empty(t *testing.T) {
	assert.NotPanics(t, func() {
		AssignPositions(nil)
		AssignAccumulatedPositions([]Line{})
	})
}
