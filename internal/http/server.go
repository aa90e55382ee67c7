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

func NewServer(store tourney.TournamentStore, metricsSvc metrics.Metrics, counters metrics.MetricsStore, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, planner *planner.Planner, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		Counters:       counters,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Planner:        planner,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/formats", Chain(s.ListFormatsHandler(), paramsMiddleware))
	s.Router.Handle("/templates", Chain(s.ListTemplatesHandler(), paramsMiddleware))
	s.Router.Handle("/schedule", Chain(s.GetScheduleHandler(), paramsMiddleware))
	s.Router.Handle("/schedule/preview", Chain(s.PreviewScheduleHandler(), paramsMiddleware))
	s.Router.Handle("/schedule/edit", Chain(s.EditScheduleHandler(), paramsMiddleware))
	s.Router.Handle("/schedule/commit", Chain(s.CommitScheduleHandler(), paramsMiddleware))
	s.Router.Handle("/schedule/reset", Chain(s.ResetScheduleHandler(), paramsMiddleware))
	s.Router.Handle("/schedule/export", Chain(s.ExportScheduleHandler(), paramsMiddleware))
	s.Router.Handle("/schedule/committed", Chain(s.GetCommittedScheduleHandler(), paramsMiddleware))
	s.Router.Handle("/overrides", Chain(s.OverridesHandler(), paramsMiddleware))
	s.Router.Handle("/stats", Chain(s.StatsHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
