package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                sync.Mutex
	schedulesBuilt    int
	buildDurations    []float64
	conflictsDetected int
	editsApplied      int
	commits           int
	slackNotifSent    int
	slackNotifFailed  int
	startupTime       float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		buildDurations: make([]float64, 0),
	}
}

func (m *Mock) IncSchedulesBuilt() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedulesBuilt++
}

func (m *Mock) ObserveBuildDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buildDurations = append(m.buildDurations, duration)
}

func (m *Mock) AddConflictsDetected(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflictsDetected += count
}

func (m *Mock) IncEditsApplied() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editsApplied++
}

func (m *Mock) IncCommits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commits++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// SchedulesBuilt returns the number of times IncSchedulesBuilt was called.
func (m *Mock) SchedulesBuilt() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.schedulesBuilt
}

// ConflictsDetected returns the running conflict count.
func (m *Mock) ConflictsDetected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conflictsDetected
}

// EditsApplied returns the number of times IncEditsApplied was called.
func (m *Mock) EditsApplied() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.editsApplied
}

// Commits returns the number of times IncCommits was called.
func (m *Mock) Commits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commits
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
