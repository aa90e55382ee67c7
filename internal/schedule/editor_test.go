package schedule_test

import (
	"testing"

	"github.com/rallyhq/courtplan/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionStartsComputed(t *testing.T) {
	session, err := schedule.NewSession(testTemplates(4), testSettings(1))
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, schedule.StateComputed, session.State)
	assert.Equal(t, int64(1), session.Version)
	assert.Len(t, session.Schedule.Days, 1)
}

func TestEditCascadesToLaterMatches(t *testing.T) {
	session, err := schedule.NewSession(testTemplates(4), testSettings(1))
	require.NoError(t, err)

	// Push the second match from 09:20 to 10:00; everything after moves by
	// the same forty minutes and the gaps between them survive.
	updated, err := session.Edit(0, 1, schedule.MustParseClock("10:00"))
	require.NoError(t, err)

	day := updated.Days[0]
	assert.Equal(t, "09:00", day.Matches[0].Start.String())
	assert.Equal(t, "10:00", day.Matches[1].Start.String())
	assert.Equal(t, "10:20", day.Matches[2].Start.String())
	assert.Equal(t, "10:40", day.Matches[3].Start.String())
	assert.Equal(t, "10:55", day.Matches[3].End.String())

	assert.Equal(t, schedule.StateEdited, session.State)
	assert.Equal(t, int64(2), session.Version)
	assert.Equal(t, "1:55", updated.TotalDuration.String())
}

func TestEditBackwardShift(t *testing.T) {
	settings := testSettings(1)
	settings.DayStartTime = schedule.MustParseClock("10:00")
	session, err := schedule.NewSession(testTemplates(3), settings)
	require.NoError(t, err)

	updated, err := session.Edit(0, 1, schedule.MustParseClock("10:05"))
	require.NoError(t, err)

	day := updated.Days[0]
	assert.Equal(t, "10:00", day.Matches[0].Start.String())
	assert.Equal(t, "10:05", day.Matches[1].Start.String())
	assert.Equal(t, "10:25", day.Matches[2].Start.String())

	// The first two now overlap on paper; the health report reflects it.
	assert.NotEmpty(t, updated.Warnings)
}

func TestEditRejectsShiftBeforeMidnight(t *testing.T) {
	session, err := schedule.NewSession(testTemplates(2), testSettings(1))
	require.NoError(t, err)

	_, err = session.Edit(0, 1, schedule.MustParseClock("00:05"))
	var eerr *schedule.EditError
	require.ErrorAs(t, err, &eerr)

	// The failed edit must leave the schedule untouched.
	assert.Equal(t, "09:20", session.Schedule.Days[0].Matches[1].Start.String())
	assert.Equal(t, schedule.StateComputed, session.State)
	assert.Equal(t, int64(1), session.Version)
}

func TestEditRejectsOutOfRangeIndexes(t *testing.T) {
	session, err := schedule.NewSession(testTemplates(2), testSettings(1))
	require.NoError(t, err)

	var eerr *schedule.EditError

	_, err = session.Edit(3, 0, schedule.MustParseClock("10:00"))
	require.ErrorAs(t, err, &eerr)

	_, err = session.Edit(0, 7, schedule.MustParseClock("10:00"))
	require.ErrorAs(t, err, &eerr)

	_, err = session.Edit(0, -1, schedule.MustParseClock("10:00"))
	require.ErrorAs(t, err, &eerr)
}

func TestEditRefusedOnceCommitted(t *testing.T) {
	session, err := schedule.NewSession(testTemplates(2), testSettings(1))
	require.NoError(t, err)

	session.MarkCommitted()
	require.Equal(t, schedule.StateCommitted, session.State)

	_, err = session.Edit(0, 0, schedule.MustParseClock("11:00"))
	var eerr *schedule.EditError
	require.ErrorAs(t, err, &eerr)
	assert.Contains(t, err.Error(), "committed")
}

func TestEditRecomputesConflicts(t *testing.T) {
	templates := testTemplates(2)
	templates[0].Team1 = "A1"
	templates[1].Team1 = "A1"
	templates[1].Team2 = "Z9"

	session, err := schedule.NewSession(templates, testSettings(1))
	require.NoError(t, err)
	require.True(t, session.Schedule.Feasible)

	// Drag the second match back on top of the first.
	updated, err := session.Edit(0, 1, schedule.MustParseClock("09:05"))
	require.NoError(t, err)

	assert.False(t, updated.Feasible)
	require.Len(t, updated.TeamConflicts, 1)
	assert.Equal(t, "A1", updated.TeamConflicts[0].Team)
}

func TestResetRestoresOriginalSchedule(t *testing.T) {
	templates := testTemplates(4)
	settings := testSettings(2)

	session, err := schedule.NewSession(templates, settings)
	require.NoError(t, err)
	original, err := schedule.Build(templates, settings)
	require.NoError(t, err)

	_, err = session.Edit(0, 0, schedule.MustParseClock("12:00"))
	require.NoError(t, err)
	_, err = session.Edit(0, 2, schedule.MustParseClock("15:30"))
	require.NoError(t, err)
	require.Equal(t, schedule.StateEdited, session.State)

	restored, err := session.Reset()
	require.NoError(t, err)

	assert.Equal(t, original, restored)
	assert.Equal(t, schedule.StateComputed, session.State)
	assert.Equal(t, int64(4), session.Version)
}
