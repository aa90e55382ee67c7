package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventScheduleCommitted EventType = "schedule-committed"
	EventScheduleReset     EventType = "schedule-reset"
)

// ScheduleCommittedEvent is the payload published after a successful commit.
type ScheduleCommittedEvent struct {
	TournamentID string `msgpack:"tournament_id"`
	Version      int64  `msgpack:"version"`
	MatchCount   int    `msgpack:"match_count"`
	Feasible     bool   `msgpack:"feasible"`
	WarningCount int    `msgpack:"warning_count"`
}
