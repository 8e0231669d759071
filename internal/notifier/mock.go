package notifier

import (
	"sync"

	"github.com/jsvane/pingpong/internal/pubsub"
	"github.com/jsvane/pingpong/internal/standings"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendResultNotificationFunc    func(result *pubsub.MatchResultMessage, dryRun bool) error
	SendLeaderboardFunc           func(rows []standings.Row, dryRun bool) error
	FormatLeaderboardResponseFunc func(rows []standings.Row) (any, error)

	// Call records
	SendResultNotificationCalls []*pubsub.MatchResultMessage
	SendLeaderboardCalls        [][]standings.Row
	LastLeaderboardResponse     any
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = nil
	m.SendLeaderboardCalls = nil
	m.LastLeaderboardResponse = nil
}

func (m *Mock) SendResultNotification(result *pubsub.MatchResultMessage, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, result)
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(result, dryRun)
	}
	return nil
}

func (m *Mock) SendLeaderboard(rows []standings.Row, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, rows)
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(rows, dryRun)
	}
	return nil
}

func (m *Mock) FormatLeaderboardResponse(rows []standings.Row) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatLeaderboardResponseFunc != nil {
		resp, err := m.FormatLeaderboardResponseFunc(rows)
		m.LastLeaderboardResponse = resp
		return resp, err
	}
	m.LastLeaderboardResponse = rows
	return rows, nil
}
