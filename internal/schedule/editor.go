package schedule

import (
	"fmt"

	"github.com/google/uuid"
)

// State tracks where a schedule session is in its lifecycle. There is no
// way back from Edited to Computed except Reset, which rebuilds from
// scratch, and Committed is terminal.
type State string

const (
	StateEmpty     State = "EMPTY"
	StateComputed  State = "COMPUTED"
	StateEdited    State = "EDITED"
	StateCommitted State = "COMMITTED"
)

// Session owns one in-flight schedule: the inputs it was built from, the
// current plan, and an optimistic-concurrency version that advances on
// every mutation. A session belongs to exactly one caller at a time; it is
// not safe for concurrent use on its own.
type Session struct {
	ID        string
	Templates []MatchTemplate
	Settings  Settings
	Schedule  *TournamentSchedule
	State     State
	Version   int64
}

// NewSession builds the schedule and opens a session around it.
func NewSession(templates []MatchTemplate, settings Settings) (*Session, error) {
	built, err := Build(templates, settings)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:        uuid.NewString(),
		Templates: templates,
		Settings:  settings,
		Schedule:  built,
		State:     StateComputed,
		Version:   1,
	}, nil
}

// Edit applies one manual start-time change and cascades the same delta to
// every later match of that day in template order. Manual edits are
// preserved verbatim; the allocator is not re-run. The day's and the
// tournament's statistics and conflicts are recomputed against the new
// state, and the updated schedule is returned.
func (s *Session) Edit(dayIndex, matchIndex int, newStart Clock) (*TournamentSchedule, error) {
	if s.State == StateCommitted {
		return nil, &EditError{Reason: "schedule is committed; reset to edit again"}
	}
	if dayIndex < 0 || dayIndex >= len(s.Schedule.Days) {
		return nil, &EditError{Reason: fmt.Sprintf("day index %d out of range (0-%d)", dayIndex, len(s.Schedule.Days)-1)}
	}
	day := &s.Schedule.Days[dayIndex]
	if matchIndex < 0 || matchIndex >= len(day.Matches) {
		return nil, &EditError{Reason: fmt.Sprintf("match index %d out of range for day %d (0-%d)", matchIndex, day.DayNumber, len(day.Matches)-1)}
	}

	delta := newStart - day.Matches[matchIndex].Start
	for i := matchIndex; i < len(day.Matches); i++ {
		if day.Matches[i].Start+delta < 0 {
			return nil, &EditError{Reason: fmt.Sprintf("shift of %d minutes would move %s before midnight", delta, day.Matches[i].Template.MatchCode)}
		}
	}
	for i := matchIndex; i < len(day.Matches); i++ {
		day.Matches[i].Start += delta
		day.Matches[i].End += delta
	}

	indexTimeSlots(day.Matches)
	refreshDayStats(day)
	s.Schedule = finalize(s.Schedule.Days, s.Settings)

	s.State = StateEdited
	s.Version++
	return s.Schedule, nil
}

// Reset discards all manual edits and rebuilds the schedule from the
// original templates and settings. The pre-edit plan comes back exactly,
// because Build is deterministic.
func (s *Session) Reset() (*TournamentSchedule, error) {
	built, err := Build(s.Templates, s.Settings)
	if err != nil {
		return nil, err
	}
	s.Schedule = built
	s.State = StateComputed
	s.Version++
	return s.Schedule, nil
}

// MarkCommitted transitions the session to its terminal state once the
// persistence layer has accepted the flattened assignments.
func (s *Session) MarkCommitted() {
	s.State = StateCommitted
}
