package schedule

import (
	"fmt"
	"sort"
	"strconv"
)

// Phase distinguishes group play from knockout play. The engine treats both
// the same; the value is carried for display and export grouping.
type Phase string

const (
	PhasePreliminary Phase = "preliminary"
	PhaseFinal       Phase = "final"
)

// MatchTemplate is the immutable description of one match slot: who plays,
// on which competition day, and in which relative order. Templates are
// created once per tournament format and never mutated by the engine.
type MatchTemplate struct {
	MatchNumber       int    `json:"match_number"`
	MatchCode         string `json:"match_code"`
	Phase             Phase  `json:"phase"`
	BlockName         string `json:"block_name"`
	RoundName         string `json:"round_name"`
	Team1             string `json:"team1"`
	Team2             string `json:"team2"`
	DayNumber         int    `json:"day_number"`
	ExecutionPriority int    `json:"execution_priority"`
	FixedCourtNumber  *int   `json:"fixed_court_number,omitempty"`
	FixedStartTime    *Clock `json:"fixed_start_time,omitempty"`

	// StoredMatchID is set when the template was rebuilt from an already
	// persisted match; Flatten then keys the assignment by this ID instead
	// of the template sequence number.
	StoredMatchID string `json:"stored_match_id,omitempty"`
}

// Settings holds the per-run scheduling parameters. Changing any field
// invalidates a prior run's auto-computed assignments.
type Settings struct {
	CourtCount           int            `json:"court_count"`
	AvailableCourts      []int          `json:"available_courts,omitempty"`
	MatchDurationMinutes int            `json:"match_duration_minutes"`
	BreakDurationMinutes int            `json:"break_duration_minutes"`
	DayStartTime         Clock          `json:"day_start_time"`
	Dates                map[int]string `json:"dates,omitempty"`
}

// Courts returns the physical court numbers in ascending order: the
// explicit list when provided, otherwise 1..CourtCount.
func (s Settings) Courts() []int {
	if len(s.AvailableCourts) > 0 {
		courts := make([]int, len(s.AvailableCourts))
		copy(courts, s.AvailableCourts)
		sort.Ints(courts)
		return courts
	}
	courts := make([]int, s.CourtCount)
	for i := range courts {
		courts[i] = i + 1
	}
	return courts
}

func (s Settings) validate() error {
	if s.CourtCount < 1 && len(s.AvailableCourts) == 0 {
		return &ValidationError{Field: "court_count", Reason: "at least one court is required"}
	}
	if s.MatchDurationMinutes < 1 {
		return &ValidationError{Field: "match_duration_minutes", Reason: "must be positive"}
	}
	if s.BreakDurationMinutes < 0 {
		return &ValidationError{Field: "break_duration_minutes", Reason: "must not be negative"}
	}
	for _, court := range s.AvailableCourts {
		if court < 1 {
			return &ValidationError{Field: "available_courts", Reason: fmt.Sprintf("court number %d is not a valid physical court", court)}
		}
	}
	return nil
}

// ScheduledMatch is a template with a concrete court and time window.
// End excludes the break; the break only delays the next slot on the court.
type ScheduledMatch struct {
	Template      MatchTemplate `json:"template"`
	Date          string        `json:"date,omitempty"`
	Start         Clock         `json:"start_time"`
	End           Clock         `json:"end_time"`
	CourtNumber   int           `json:"court_number"`
	TimeSlotIndex int           `json:"time_slot_index"`
}

// DaySchedule holds one competition day. Matches stays in template
// (execution) order because the cascading editor shifts "everything after
// this one" in that order; use ByStartTime for display.
type DaySchedule struct {
	Date           string           `json:"date,omitempty"`
	DayNumber      int              `json:"day_number"`
	Matches        []ScheduledMatch `json:"matches"`
	TotalDuration  Minutes          `json:"total_duration"`
	RequiredCourts int              `json:"required_courts"`
	TimeSlots      int              `json:"time_slots"`
}

// ByStartTime returns the day's matches sorted by start time (ties broken
// by court number) without disturbing the editing order.
func (d DaySchedule) ByStartTime() []ScheduledMatch {
	matches := make([]ScheduledMatch, len(d.Matches))
	copy(matches, d.Matches)
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Start != matches[j].Start {
			return matches[i].Start < matches[j].Start
		}
		return matches[i].CourtNumber < matches[j].CourtNumber
	})
	return matches
}

// TournamentSchedule is the full computed plan plus its health report.
type TournamentSchedule struct {
	Days          []DaySchedule  `json:"days"`
	TotalMatches  int            `json:"total_matches"`
	TotalDuration Minutes        `json:"total_duration"`
	Warnings      []string       `json:"warnings"`
	Feasible      bool           `json:"feasible"`
	TeamConflicts []TeamConflict `json:"time_conflicts"`
}

// ConflictPair names two overlapping matches of one team.
type ConflictPair struct {
	Match1      string `json:"match1"`
	Match2      string `json:"match2"`
	Description string `json:"description"`
}

// TeamConflict lists every overlapping match pair involving one team.
type TeamConflict struct {
	Team      string         `json:"team"`
	Conflicts []ConflictPair `json:"conflicts"`
}

// Assignment is one flattened row for the persistence layer: which match,
// when, and on which court.
type Assignment struct {
	MatchIdentifier string `json:"match_identifier"`
	StartTime       Clock  `json:"start_time"`
	CourtNumber     int    `json:"court_number"`
}

// Flatten converts the schedule into persistence rows, in day then
// execution order. Stored match IDs win over template sequence numbers.
func (t *TournamentSchedule) Flatten() []Assignment {
	var assignments []Assignment
	for _, day := range t.Days {
		for _, m := range day.Matches {
			id := m.Template.StoredMatchID
			if id == "" {
				id = strconv.Itoa(m.Template.MatchNumber)
			}
			assignments = append(assignments, Assignment{
				MatchIdentifier: id,
				StartTime:       m.Start,
				CourtNumber:     m.CourtNumber,
			})
		}
	}
	return assignments
}

// ValidationError reports malformed input: settings or templates the
// allocator refuses to schedule. No partial schedule is returned alongside.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// EditError reports a programmer error in a manual edit request, such as an
// out-of-range match index. Raising instead of silently ignoring keeps the
// caller's view of the schedule in sync with the returned object.
type EditError struct {
	Reason string
}

func (e *EditError) Error() string {
	return "invalid edit: " + e.Reason
}
