package schedule_test

import (
	"strings"
	"testing"

	"github.com/rallyhq/courtplan/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings(courtCount int) schedule.Settings {
	return schedule.Settings{
		CourtCount:           courtCount,
		MatchDurationMinutes: 15,
		BreakDurationMinutes: 5,
		DayStartTime:         schedule.MustParseClock("09:00"),
		Dates:                map[int]string{1: "2026-07-18", 2: "2026-07-19"},
	}
}

func testTemplates(count int) []schedule.MatchTemplate {
	teams := []string{"A1", "B1", "C1", "D1", "A2", "B2", "C2", "D2"}
	templates := make([]schedule.MatchTemplate, count)
	for i := range templates {
		templates[i] = schedule.MatchTemplate{
			MatchNumber:       i + 1,
			MatchCode:         "M" + string(rune('0'+i+1)),
			Phase:             schedule.PhasePreliminary,
			BlockName:         "Pool A",
			RoundName:         "Round 1",
			Team1:             teams[(2*i)%len(teams)],
			Team2:             teams[(2*i+1)%len(teams)],
			DayNumber:         1,
			ExecutionPriority: i + 1,
		}
	}
	return templates
}

func TestBuildSingleCourtPacksSequentially(t *testing.T) {
	built, err := schedule.Build(testTemplates(4), testSettings(1))
	require.NoError(t, err)

	require.Len(t, built.Days, 1)
	day := built.Days[0]
	require.Len(t, day.Matches, 4)

	wantStarts := []string{"09:00", "09:20", "09:40", "10:00"}
	for i, m := range day.Matches {
		assert.Equal(t, wantStarts[i], m.Start.String())
		assert.Equal(t, 1, m.CourtNumber)
		assert.Equal(t, i, m.TimeSlotIndex)
	}

	assert.Equal(t, "1:15", day.TotalDuration.String())
	assert.Equal(t, "1:15", built.TotalDuration.String())
	assert.Equal(t, 1, day.RequiredCourts)
	assert.Equal(t, 4, day.TimeSlots)
	assert.True(t, built.Feasible)
	assert.Empty(t, built.Warnings)
}

func TestBuildTwoCourtsAlternates(t *testing.T) {
	built, err := schedule.Build(testTemplates(4), testSettings(2))
	require.NoError(t, err)

	day := built.Days[0]
	require.Len(t, day.Matches, 4)

	assert.Equal(t, "09:00", day.Matches[0].Start.String())
	assert.Equal(t, 1, day.Matches[0].CourtNumber)
	assert.Equal(t, "09:00", day.Matches[1].Start.String())
	assert.Equal(t, 2, day.Matches[1].CourtNumber)
	assert.Equal(t, "09:20", day.Matches[2].Start.String())
	assert.Equal(t, 1, day.Matches[2].CourtNumber)
	assert.Equal(t, "09:20", day.Matches[3].Start.String())
	assert.Equal(t, 2, day.Matches[3].CourtNumber)

	assert.Equal(t, 2, day.RequiredCourts)
	assert.Equal(t, 2, day.TimeSlots)
}

func TestBuildIsDeterministic(t *testing.T) {
	templates := testTemplates(8)
	templates[3].FixedStartTime = clockPtr("11:00")
	settings := testSettings(3)

	first, err := schedule.Build(templates, settings)
	require.NoError(t, err)
	second, err := schedule.Build(templates, settings)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildDurationArithmetic(t *testing.T) {
	built, err := schedule.Build(testTemplates(8), testSettings(3))
	require.NoError(t, err)

	for _, day := range built.Days {
		for _, m := range day.Matches {
			assert.Equal(t, 15, int(m.End-m.Start))
		}
	}
}

func TestBuildBreakSeparatesCourtSlots(t *testing.T) {
	built, err := schedule.Build(testTemplates(8), testSettings(2))
	require.NoError(t, err)

	byCourt := make(map[int][]schedule.ScheduledMatch)
	for _, m := range built.Days[0].Matches {
		byCourt[m.CourtNumber] = append(byCourt[m.CourtNumber], m)
	}
	for _, matches := range byCourt {
		for i := 1; i < len(matches); i++ {
			assert.GreaterOrEqual(t, int(matches[i].Start), int(matches[i-1].End)+5)
		}
	}
}

func TestBuildFixedStartTimeWins(t *testing.T) {
	templates := testTemplates(4)
	templates[2].FixedStartTime = clockPtr("14:00")
	templates[2].FixedCourtNumber = intPtr(1)

	built, err := schedule.Build(templates, testSettings(1))
	require.NoError(t, err)

	day := built.Days[0]
	assert.Equal(t, "14:00", day.Matches[2].Start.String())
	assert.Equal(t, "14:15", day.Matches[2].End.String())
	assert.Equal(t, 1, day.Matches[2].CourtNumber)

	// The court clock jumps past the fixed slot, so the next auto match
	// lands after it rather than back at the greedy position.
	assert.Equal(t, "14:20", day.Matches[3].Start.String())
}

func TestBuildFixedSlotCannotRewindCourtClock(t *testing.T) {
	// A fixed slot earlier than the court's current free-at time must not
	// shrink the recorded occupancy: the clock is merged with max.
	templates := testTemplates(3)
	templates[1].FixedStartTime = clockPtr("09:05")
	templates[1].FixedCourtNumber = intPtr(1)

	built, err := schedule.Build(templates, testSettings(1))
	require.NoError(t, err)

	day := built.Days[0]
	assert.Equal(t, "09:00", day.Matches[0].Start.String())
	assert.Equal(t, "09:05", day.Matches[1].Start.String())
	// Court 1 stays booked until 09:20 from the first match; the fixed slot
	// at 09:05 (free again 09:25) wins the max merge.
	assert.Equal(t, "09:25", day.Matches[2].Start.String())
}

func TestBuildFixedCourtOutsideListFallsBack(t *testing.T) {
	templates := testTemplates(2)
	templates[0].FixedStartTime = clockPtr("09:00")
	templates[0].FixedCourtNumber = intPtr(9)

	built, err := schedule.Build(templates, testSettings(2))
	require.NoError(t, err)

	assert.Equal(t, 1, built.Days[0].Matches[0].CourtNumber)
}

func TestBuildUsesExplicitCourtNumbers(t *testing.T) {
	settings := testSettings(2)
	settings.AvailableCourts = []int{5, 7}

	built, err := schedule.Build(testTemplates(4), settings)
	require.NoError(t, err)

	day := built.Days[0]
	assert.Equal(t, 5, day.Matches[0].CourtNumber)
	assert.Equal(t, 7, day.Matches[1].CourtNumber)
	assert.Equal(t, 5, day.Matches[2].CourtNumber)
	assert.Equal(t, 7, day.Matches[3].CourtNumber)
}

func TestBuildGroupsAndOrdersDays(t *testing.T) {
	templates := testTemplates(4)
	templates[0].DayNumber = 2
	templates[0].ExecutionPriority = 1
	templates[2].DayNumber = 2
	templates[2].ExecutionPriority = 0

	built, err := schedule.Build(templates, testSettings(1))
	require.NoError(t, err)

	require.Len(t, built.Days, 2)
	assert.Equal(t, 1, built.Days[0].DayNumber)
	assert.Equal(t, 2, built.Days[1].DayNumber)
	assert.Equal(t, "2026-07-19", built.Days[1].Date)

	// Within day 2 the lower execution priority runs first.
	assert.Equal(t, 3, built.Days[1].Matches[0].Template.MatchNumber)
	assert.Equal(t, 1, built.Days[1].Matches[1].Template.MatchNumber)
}

func TestBuildEmptyInput(t *testing.T) {
	built, err := schedule.Build(nil, testSettings(2))
	require.NoError(t, err)

	assert.Empty(t, built.Days)
	assert.Equal(t, 0, built.TotalMatches)
	assert.Equal(t, "0:00", built.TotalDuration.String())
	assert.True(t, built.Feasible)
}

func TestBuildRejectsBadInput(t *testing.T) {
	t.Run("missing team name", func(t *testing.T) {
		templates := testTemplates(2)
		templates[1].Team2 = ""
		_, err := schedule.Build(templates, testSettings(1))
		var verr *schedule.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("zero day number", func(t *testing.T) {
		templates := testTemplates(1)
		templates[0].DayNumber = 0
		_, err := schedule.Build(templates, testSettings(1))
		var verr *schedule.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("no courts", func(t *testing.T) {
		settings := testSettings(0)
		_, err := schedule.Build(testTemplates(1), settings)
		var verr *schedule.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("zero duration", func(t *testing.T) {
		settings := testSettings(1)
		settings.MatchDurationMinutes = 0
		_, err := schedule.Build(testTemplates(1), settings)
		var verr *schedule.ValidationError
		require.ErrorAs(t, err, &verr)
	})
}

func TestBuildOverSubscriptionWarning(t *testing.T) {
	templates := testTemplates(2)
	pin := schedule.MustParseClock("09:05")
	templates[1].FixedStartTime = &pin

	built, err := schedule.Build(templates, testSettings(1))
	require.NoError(t, err)

	// Two matches in play at once with one configured court. Still feasible
	// because no team overlaps.
	assert.True(t, built.Feasible)
	assert.Equal(t, 2, built.Days[0].RequiredCourts)
	assert.Contains(t, strings.Join(built.Warnings, "\n"), "needs 2 courts but only 1")
}

func TestFlattenUsesStoredIDWhenPresent(t *testing.T) {
	templates := testTemplates(2)
	templates[1].StoredMatchID = "match-uuid-2"

	built, err := schedule.Build(templates, testSettings(1))
	require.NoError(t, err)

	flat := built.Flatten()
	require.Len(t, flat, 2)
	assert.Equal(t, "1", flat[0].MatchIdentifier)
	assert.Equal(t, "match-uuid-2", flat[1].MatchIdentifier)
	assert.Equal(t, "09:00", flat[0].StartTime.String())
	assert.Equal(t, 1, flat[1].CourtNumber)
}

func clockPtr(s string) *schedule.Clock {
	c := schedule.MustParseClock(s)
	return &c
}

func intPtr(v int) *int {
	return &v
}
