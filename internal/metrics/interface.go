package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncSchedulesBuilt()
	ObserveBuildDuration(duration float64)
	AddConflictsDetected(count int)
	IncEditsApplied()
	IncCommits()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// MetricsStore persists durable counters in the database, surviving
// restarts where the in-process Prometheus counters do not.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
