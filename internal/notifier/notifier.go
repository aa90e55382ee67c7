package notifier

import (
	"github.com/rallyhq/courtplan/internal/schedule"
)

// Notifier defines a high-level interface for sending notifications about scheduling events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For a freshly committed schedule
	SendCommitNotification(tournamentName string, plan *schedule.TournamentSchedule, version int64, dryRun bool) error
	// For a computed plan that has team conflicts or warnings
	SendFeasibilityWarning(tournamentName string, plan *schedule.TournamentSchedule, dryRun bool) error
}
