package http

import (
	"net/http"

	"github.com/rallyhq/courtplan/internal/config"
	"github.com/rallyhq/courtplan/internal/metrics"
	"github.com/rallyhq/courtplan/internal/notifier"
	"github.com/rallyhq/courtplan/internal/planner"
	"github.com/rallyhq/courtplan/internal/pubsub"
	"github.com/rallyhq/courtplan/internal/tourney"
)

type Server struct {
	Store          tourney.TournamentStore
	Metrics        metrics.Metrics
	Counters       metrics.MetricsStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Planner        *planner.Planner
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}

// editRequest is the body of a schedule edit call.
type editRequest struct {
	DayIndex   int    `json:"day_index"`
	MatchIndex int    `json:"match_index"`
	NewStart   string `json:"new_start"`
}

// overrideRequest is the body of an override save call.
type overrideRequest struct {
	MatchIdentifier string `json:"match_identifier"`
	StartTime       string `json:"start_time"`
	CourtNumber     *int   `json:"court_number,omitempty"`
}
