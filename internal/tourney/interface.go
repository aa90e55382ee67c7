package tourney

import "github.com/rallyhq/courtplan/internal/schedule"

// TournamentStore defines the interface for interacting with tournament data.
type TournamentStore interface {
	UpsertFormat(format Format, templates []schedule.MatchTemplate) error
	GetFormats() ([]Format, error)
	GetTemplates(formatID string) ([]schedule.MatchTemplate, error)
	UpsertTournament(tournament *Tournament) error
	GetTournament(tournamentID string) (*Tournament, error)
	GetSettings(tournamentID string) (schedule.Settings, error)
	UpdateScheduleState(tournamentID string, state schedule.State) error
	CommitSchedule(tournamentID string, assignments []schedule.Assignment, expectedVersion int64) (int64, error)
	GetCommittedSchedule(tournamentID string) ([]CommittedAssignment, error)
	SaveOverride(tournamentID string, override Override) error
	ListOverrides(tournamentID string) ([]Override, error)
	Clear()
}
