package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rallyhq/courtplan/internal/schedule"
)

func testPlan(t *testing.T) *schedule.TournamentSchedule {
	t.Helper()

	templates := []schedule.MatchTemplate{
		{MatchNumber: 1, MatchCode: "A1", Team1: "Falcons", Team2: "Otters", DayNumber: 1, ExecutionPriority: 1},
		{MatchNumber: 2, MatchCode: "A2", Team1: "Herons", Team2: "Kestrels", DayNumber: 1, ExecutionPriority: 2},
		{MatchNumber: 3, MatchCode: "F1", Team1: "Falcons", Team2: "Herons", DayNumber: 2, ExecutionPriority: 1},
	}
	plan, err := schedule.Build(templates, schedule.Settings{
		CourtCount:           2,
		MatchDurationMinutes: 15,
		BreakDurationMinutes: 5,
		DayStartTime:         schedule.MustParseClock("09:00"),
		Dates:                map[int]string{1: "2026-07-18", 2: "2026-07-19"},
	})
	require.NoError(t, err)
	return plan
}

func TestGenerateSheetPerDay(t *testing.T) {
	f, err := Generate("Summer Open", testPlan(t))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Day 1")
	assert.Contains(t, sheets, "Day 2")
	assert.NotContains(t, sheets, "Sheet1")
	assert.NotContains(t, sheets, "Warnings")
}

func TestGenerateDayGrid(t *testing.T) {
	f, err := Generate("Summer Open", testPlan(t))
	require.NoError(t, err)
	defer f.Close()

	timeHeader, err := f.GetCellValue("Day 1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Time", timeHeader)

	court1Header, err := f.GetCellValue("Day 1", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Court 1", court1Header)

	slot, err := f.GetCellValue("Day 1", "A2")
	require.NoError(t, err)
	assert.Equal(t, "09:00-09:15", slot)

	match, err := f.GetCellValue("Day 1", "B2")
	require.NoError(t, err)
	assert.Equal(t, "A1: Falcons vs Otters", match)

	court2Match, err := f.GetCellValue("Day 1", "C2")
	require.NoError(t, err)
	assert.Equal(t, "A2: Herons vs Kestrels", court2Match)
}

func TestGenerateWarningsSheet(t *testing.T) {
	plan := testPlan(t)
	plan.Feasible = false
	plan.TeamConflicts = []schedule.TeamConflict{{Team: "Falcons"}}
	plan.Warnings = []string{"time conflict: Falcons double booked"}

	f, err := Generate("Summer Open", plan)
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.GetSheetList(), "Warnings")

	status, err := f.GetCellValue("Warnings", "B1")
	require.NoError(t, err)
	assert.Contains(t, status, "NOT feasible")

	warning, err := f.GetCellValue("Warnings", "A3")
	require.NoError(t, err)
	assert.Contains(t, warning, "Falcons")
}
