package notifier

import (
	"sync"

	"github.com/rallyhq/courtplan/internal/schedule"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendCommitNotificationFunc func(tournamentName string, plan *schedule.TournamentSchedule, version int64, dryRun bool) error
	SendFeasibilityWarningFunc func(tournamentName string, plan *schedule.TournamentSchedule, dryRun bool) error

	// Call records
	SendCommitNotificationCalls []struct {
		TournamentName string
		Plan           *schedule.TournamentSchedule
		Version        int64
	}
	SendFeasibilityWarningCalls []struct {
		TournamentName string
		Plan           *schedule.TournamentSchedule
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendCommitNotificationCalls = nil
	m.SendFeasibilityWarningCalls = nil
}

func (m *Mock) SendCommitNotification(tournamentName string, plan *schedule.TournamentSchedule, version int64, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendCommitNotificationCalls = append(m.SendCommitNotificationCalls, struct {
		TournamentName string
		Plan           *schedule.TournamentSchedule
		Version        int64
	}{tournamentName, plan, version})
	if m.SendCommitNotificationFunc != nil {
		return m.SendCommitNotificationFunc(tournamentName, plan, version, dryRun)
	}
	return nil
}

func (m *Mock) SendFeasibilityWarning(tournamentName string, plan *schedule.TournamentSchedule, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendFeasibilityWarningCalls = append(m.SendFeasibilityWarningCalls, struct {
		TournamentName string
		Plan           *schedule.TournamentSchedule
	}{tournamentName, plan})
	if m.SendFeasibilityWarningFunc != nil {
		return m.SendFeasibilityWarningFunc(tournamentName, plan, dryRun)
	}
	return nil
}
