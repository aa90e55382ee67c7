package tourney

import (
	"sync"

	"github.com/rallyhq/courtplan/internal/schedule"
)

// MockStore is a mock implementation of the TournamentStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertFormatFunc         func(format Format, templates []schedule.MatchTemplate) error
	GetFormatsFunc           func() ([]Format, error)
	GetTemplatesFunc         func(formatID string) ([]schedule.MatchTemplate, error)
	UpsertTournamentFunc     func(tournament *Tournament) error
	GetTournamentFunc        func(tournamentID string) (*Tournament, error)
	GetSettingsFunc          func(tournamentID string) (schedule.Settings, error)
	UpdateScheduleStateFunc  func(tournamentID string, state schedule.State) error
	CommitScheduleFunc       func(tournamentID string, assignments []schedule.Assignment, expectedVersion int64) (int64, error)
	GetCommittedScheduleFunc func(tournamentID string) ([]CommittedAssignment, error)
	SaveOverrideFunc         func(tournamentID string, override Override) error
	ListOverridesFunc        func(tournamentID string) ([]Override, error)
	ClearFunc                func()

	// Call records
	UpsertFormatCalls        []Format
	UpsertTournamentCalls    []*Tournament
	UpdateScheduleStateCalls []struct {
		TournamentID string
		State        schedule.State
	}
	CommitScheduleCalls []struct {
		TournamentID    string
		Assignments     []schedule.Assignment
		ExpectedVersion int64
	}
	SaveOverrideCalls []struct {
		TournamentID string
		Override     Override
	}
	ClearCalls int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) UpsertFormat(format Format, templates []schedule.MatchTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertFormatCalls = append(m.UpsertFormatCalls, format)
	if m.UpsertFormatFunc != nil {
		return m.UpsertFormatFunc(format, templates)
	}
	return nil
}

func (m *MockStore) GetFormats() ([]Format, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetFormatsFunc != nil {
		return m.GetFormatsFunc()
	}
	return nil, nil
}

func (m *MockStore) GetTemplates(formatID string) ([]schedule.MatchTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetTemplatesFunc != nil {
		return m.GetTemplatesFunc(formatID)
	}
	return nil, nil
}

func (m *MockStore) UpsertTournament(tournament *Tournament) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertTournamentCalls = append(m.UpsertTournamentCalls, tournament)
	if m.UpsertTournamentFunc != nil {
		return m.UpsertTournamentFunc(tournament)
	}
	return nil
}

func (m *MockStore) GetTournament(tournamentID string) (*Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetTournamentFunc != nil {
		return m.GetTournamentFunc(tournamentID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) GetSettings(tournamentID string) (schedule.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetSettingsFunc != nil {
		return m.GetSettingsFunc(tournamentID)
	}
	return schedule.Settings{}, ErrNotFound
}

func (m *MockStore) UpdateScheduleState(tournamentID string, state schedule.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateScheduleStateCalls = append(m.UpdateScheduleStateCalls, struct {
		TournamentID string
		State        schedule.State
	}{tournamentID, state})
	if m.UpdateScheduleStateFunc != nil {
		return m.UpdateScheduleStateFunc(tournamentID, state)
	}
	return nil
}

func (m *MockStore) CommitSchedule(tournamentID string, assignments []schedule.Assignment, expectedVersion int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CommitScheduleCalls = append(m.CommitScheduleCalls, struct {
		TournamentID    string
		Assignments     []schedule.Assignment
		ExpectedVersion int64
	}{tournamentID, assignments, expectedVersion})
	if m.CommitScheduleFunc != nil {
		return m.CommitScheduleFunc(tournamentID, assignments, expectedVersion)
	}
	return expectedVersion + 1, nil
}

func (m *MockStore) GetCommittedSchedule(tournamentID string) ([]CommittedAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetCommittedScheduleFunc != nil {
		return m.GetCommittedScheduleFunc(tournamentID)
	}
	return nil, nil
}

func (m *MockStore) SaveOverride(tournamentID string, override Override) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveOverrideCalls = append(m.SaveOverrideCalls, struct {
		TournamentID string
		Override     Override
	}{tournamentID, override})
	if m.SaveOverrideFunc != nil {
		return m.SaveOverrideFunc(tournamentID, override)
	}
	return nil
}

func (m *MockStore) ListOverrides(tournamentID string) ([]Override, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListOverridesFunc != nil {
		return m.ListOverridesFunc(tournamentID)
	}
	return nil, nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
