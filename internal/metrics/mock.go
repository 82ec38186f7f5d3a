package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	refreshes           int
	refreshFailures     int
	refreshDurations    []float64
	leaderboardSize     int
	placeholderRequests map[string]int
	slackMessagesSent   int
	slackMessagesFailed int
	startupTime         float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		refreshDurations:    make([]float64, 0),
		placeholderRequests: make(map[string]int),
	}
}

func (m *Mock) IncLeaderboardRefreshes() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshes++
}

func (m *Mock) IncLeaderboardRefreshFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshFailures++
}

func (m *Mock) ObserveRefreshDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshDurations = append(m.refreshDurations, duration)
}

func (m *Mock) SetLeaderboardSize(size int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaderboardSize = size
}

func (m *Mock) IncPlaceholderRequests(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.placeholderRequests[result]++
}

func (m *Mock) IncSlackMessagesSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackMessagesSent++
}

func (m *Mock) IncSlackMessagesFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackMessagesFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Refreshes returns the number of times IncLeaderboardRefreshes was called.
func (m *Mock) Refreshes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshes
}

// RefreshFailures returns the number of times IncLeaderboardRefreshFailures was called.
func (m *Mock) RefreshFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshFailures
}

// LeaderboardSize returns the last value passed to SetLeaderboardSize.
func (m *Mock) LeaderboardSize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leaderboardSize
}

// PlaceholderRequests returns how many requests ended with result.
func (m *Mock) PlaceholderRequests(result string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.placeholderRequests[result]
}

// SlackMessagesSent returns the number of times IncSlackMessagesSent was called.
func (m *Mock) SlackMessagesSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackMessagesSent
}

// SlackMessagesFailed returns the number of times IncSlackMessagesFailed was called.
func (m *Mock) SlackMessagesFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackMessagesFailed
}
