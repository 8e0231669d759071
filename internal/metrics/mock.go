package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	submissionsAccepted int
	submissionsRejected int
	rebuildDurations    []float64
	reconciliationSkips int
	slackNotifSent      int
	slackNotifFailed    int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		rebuildDurations: make([]float64, 0),
	}
}

func (m *Mock) IncSubmissionsAccepted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissionsAccepted++
}

func (m *Mock) IncSubmissionsRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissionsRejected++
}

func (m *Mock) ObserveRebuildDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rebuildDurations = append(m.rebuildDurations, duration)
}

func (m *Mock) AddReconciliationSkips(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reconciliationSkips += count
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

// GetSubmissionsAccepted returns the number of times IncSubmissionsAccepted was called.
func (m *Mock) GetSubmissionsAccepted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submissionsAccepted
}

// GetSubmissionsRejected returns the number of times IncSubmissionsRejected was called.
func (m *Mock) GetSubmissionsRejected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submissionsRejected
}

// GetRebuildDurations returns the recorded rebuild durations.
func (m *Mock) GetRebuildDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]float64, len(m.rebuildDurations))
	copy(out, m.rebuildDurations)
	return out
}

// GetReconciliationSkips returns the accumulated skip count.
func (m *Mock) GetReconciliationSkips() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reconciliationSkips
}

// GetSlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) GetSlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// GetSlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) GetSlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// GetStartupTime returns the last recorded startup duration.
func (m *Mock) GetStartupTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startupTime
}
