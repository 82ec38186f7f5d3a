package notifier

import (
	"context"
	"sync"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendLeaderboardCalls []struct {
		Board  Leaderboard
		DryRun bool
	}
	FormatLeaderboardResponseCalls []Leaderboard
	FormatUnavailableResponseCalls []string

	// Spies
	SendLeaderboardFunc           func(ctx context.Context, board Leaderboard, dryRun bool) error
	FormatLeaderboardResponseFunc func(board Leaderboard) (any, error)
	FormatUnavailableResponseFunc func(reason string) (any, error)
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = nil
	m.FormatLeaderboardResponseCalls = nil
	m.FormatUnavailableResponseCalls = nil
}

func (m *Mock) SendLeaderboard(ctx context.Context, board Leaderboard, dryRun bool) error {
	m.mu.Lock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, struct {
		Board  Leaderboard
		DryRun bool
	}{board, dryRun})
	fn := m.SendLeaderboardFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, board, dryRun)
	}
	return nil
}

func (m *Mock) FormatLeaderboardResponse(board Leaderboard) (any, error) {
	m.mu.Lock()
	m.FormatLeaderboardResponseCalls = append(m.FormatLeaderboardResponseCalls, board)
	fn := m.FormatLeaderboardResponseFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(board)
	}
	return board, nil
}

func (m *Mock) FormatUnavailableResponse(reason string) (any, error) {
	m.mu.Lock()
	m.FormatUnavailableResponseCalls = append(m.FormatUnavailableResponseCalls, reason)
	fn := m.FormatUnavailableResponseFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(reason)
	}
	return reason, nil
}
