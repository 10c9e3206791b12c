package ranking

import (
	"testing"

	"github.com/bolao-nfl/bolao-hub/internal/domain/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionByWeek(t *testing.T) {
	matches := []pool.Match{
		{ID: 5, Week: 2},
		{ID: 1, Week: 0},
		{ID: 6, Week: 2},
		{ID: 2, Week: 1},
		{ID: 4, Week: 2},
	}

	weeks := PartitionByWeek(matches)

	require.Len(t, weeks, 3)
	assert.Equal(t, 0, weeks[0].Week)
	assert.Equal(t, 1, weeks[1].Week)
	assert.Equal(t, 2, weeks[2].Week)
	assert.Equal(t, 3, weeks[2].ExpectedCount)

	ids := []int{}
	for _, m := range weeks[2].Matches {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []int{5, 6, 4}, ids)
}

func TestPartitionByWeek_Empty(t *testing.T) {
	assert.Empty(t, PartitionByWeek(nil))
}

func TestWeekMatches_IsComplete(t *testing.T) {
	final := pool.Match{Status: pool.MatchFinal}
	overtime := pool.Match{Status: pool.MatchFinalOvertime}
	cancelled := pool.Match{Status: pool.MatchCancelled}
	live := pool.Match{Status: pool.MatchInProgress}

	tests := []struct {
		name string
		week WeekMatches
		want bool
	}{
		{"all ended", WeekMatches{Matches: []pool.Match{final, overtime, cancelled}, ExpectedCount: 3}, true},
		{"one live", WeekMatches{Matches: []pool.Match{final, live}, ExpectedCount: 2}, false},
		{"partial fetch", WeekMatches{Matches: []pool.Match{final}, ExpectedCount: 2}, false},
		{"empty", WeekMatches{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.week.IsComplete())
		})
	}
}

func TestStartedMatches(t *testing.T) {
	matches := []pool.Match{
		{ID: 1, Status: pool.MatchNotStarted},
		{ID: 2, Status: pool.MatchInProgress},
		{ID: 3, Status: pool.MatchFinal},
	}

	started := StartedMatches(matches)

	require.Len(t, started, 2)
	assert.Equal(t, 2, started[0].ID)
	assert.Equal(t, 3, started[1].ID)
}
