package planner

import (
	"errors"
	"sync"

	"github.com/rallyhq/courtplan/internal/metrics"
	"github.com/rallyhq/courtplan/internal/pubsub"
	"github.com/rallyhq/courtplan/internal/schedule"
)

// Planner orchestrates schedule computation, editing and committing for
// tournaments. It holds one in-memory session per tournament; the database
// only sees committed schedules.
type Planner struct {
	store    Store
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics

	mu       sync.RWMutex
	sessions map[string]*session
}

// session pairs an engine session with the tournament commit version it was
// previewed against, for optimistic concurrency on commit.
type session struct {
	engine      *schedule.Session
	baseVersion int64
}

// ErrNoSession is returned when edit, commit or reset is requested before a
// preview computed a schedule for the tournament.
var ErrNoSession = errors.New("no computed schedule for tournament; run a preview first")

// PreviewResult is the planner's view of a computed schedule.
type PreviewResult struct {
	SessionID string                       `json:"session_id"`
	State     schedule.State               `json:"state"`
	Version   int64                        `json:"version"`
	Schedule  *schedule.TournamentSchedule `json:"schedule"`
}
