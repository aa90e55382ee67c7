package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		SchedulesBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtplan_schedules_built_total",
			Help: "The total number of schedule computations.",
		}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "courtplan_schedule_build_duration_seconds",
			Help:    "The duration of individual schedule computations.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		ConflictsDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtplan_conflicts_detected_total",
			Help: "The total number of team time conflicts detected across computations.",
		}),
		EditsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtplan_edits_applied_total",
			Help: "The total number of manual schedule edits applied.",
		}),
		Commits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtplan_schedule_commits_total",
			Help: "The total number of schedules committed to the database.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtplan_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtplan_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "courtplan_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.SchedulesBuilt,
		s.BuildDuration,
		s.ConflictsDetected,
		s.EditsApplied,
		s.Commits,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncSchedulesBuilt() {
	s.SchedulesBuilt.Inc()
}

func (s *Service) ObserveBuildDuration(duration float64) {
	s.BuildDuration.Observe(duration)
}

func (s *Service) AddConflictsDetected(count int) {
	s.ConflictsDetected.Add(float64(count))
}

func (s *Service) IncEditsApplied() {
	s.EditsApplied.Inc()
}

func (s *Service) IncCommits() {
	s.Commits.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
