package tourney

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/rallyhq/courtplan/internal/schedule"
)

// store handles all database operations for tournaments.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// ErrVersionConflict is returned by CommitSchedule when the caller's view of
// the tournament is stale: someone else committed since they previewed.
var ErrVersionConflict = errors.New("schedule was committed by someone else; reload and retry")

// ErrNotFound is returned when the requested tournament or format does not exist.
var ErrNotFound = errors.New("not found")

// Format is a reusable tournament shape: a named set of match templates.
type Format struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Tournament is one concrete event: a format instance plus its scheduling
// parameters and commit bookkeeping.
type Tournament struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	FormatID      string            `json:"format_id"`
	Settings      schedule.Settings `json:"settings"`
	ScheduleState schedule.State    `json:"schedule_state"`
	CommitVersion int64             `json:"commit_version"`
	CreatedAt     int64             `json:"created_at"`
	UpdatedAt     int64             `json:"updated_at"`
}

// CommittedAssignment is one persisted schedule row.
type CommittedAssignment struct {
	MatchIdentifier string         `json:"match_identifier"`
	StartTime       schedule.Clock `json:"start_time"`
	CourtNumber     int            `json:"court_number"`
	CommittedAt     int64          `json:"committed_at"`
	Version         int64          `json:"version"`
}

// Override is an organizer-pinned slot for one match, applied to the
// templates before the allocator runs.
type Override struct {
	MatchIdentifier string         `json:"match_identifier"`
	StartTime       schedule.Clock `json:"start_time"`
	CourtNumber     *int           `json:"court_number,omitempty"`
	CreatedAt       int64          `json:"created_at"`
}
