package planner

import (
	"github.com/rallyhq/courtplan/internal/notifier"
	"github.com/rallyhq/courtplan/internal/schedule"
	"github.com/rallyhq/courtplan/internal/tourney"
)

// Store defines the database operations required by the planner.
type Store interface {
	GetTournament(tournamentID string) (*tourney.Tournament, error)
	GetTemplates(formatID string) ([]schedule.MatchTemplate, error)
	ListOverrides(tournamentID string) ([]tourney.Override, error)
	CommitSchedule(tournamentID string, assignments []schedule.Assignment, expectedVersion int64) (int64, error)
	UpdateScheduleState(tournamentID string, state schedule.State) error
	GetCommittedSchedule(tournamentID string) ([]tourney.CommittedAssignment, error)
}

// Notifier defines the notification operations required by the planner.
// This is now an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
