package players

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	GetPlayerFunc     func(ctx context.Context, id uuid.UUID) (*Player, error)
	TopPlaytimesFunc  func(ctx context.Context, limit int) ([]Player, error)
	UpsertPlayersFunc func(ctx context.Context, players []Player) error
	AddPlaytimeFunc   func(ctx context.Context, id uuid.UUID, ms int64) error
	PingFunc          func(ctx context.Context) error

	// Call records
	GetPlayerCalls     []uuid.UUID
	TopPlaytimesCalls  []int
	UpsertPlayersCalls [][]Player
	AddPlaytimeCalls   []struct {
		ID uuid.UUID
		MS int64
	}
	PingCalls int
}

var _ Store = (*MockStore)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetPlayerCalls = nil
	m.TopPlaytimesCalls = nil
	m.UpsertPlayersCalls = nil
	m.AddPlaytimeCalls = nil
	m.PingCalls = 0
}

func (m *MockStore) GetPlayer(ctx context.Context, id uuid.UUID) (*Player, error) {
	m.mu.Lock()
	m.GetPlayerCalls = append(m.GetPlayerCalls, id)
	fn := m.GetPlayerFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, id)
	}
	return nil, ErrPlayerNotFound
}

func (m *MockStore) TopPlaytimes(ctx context.Context, limit int) ([]Player, error) {
	m.mu.Lock()
	m.TopPlaytimesCalls = append(m.TopPlaytimesCalls, limit)
	fn := m.TopPlaytimesFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, limit)
	}
	return []Player{}, nil
}

func (m *MockStore) UpsertPlayers(ctx context.Context, players []Player) error {
	m.mu.Lock()
	m.UpsertPlayersCalls = append(m.UpsertPlayersCalls, players)
	fn := m.UpsertPlayersFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, players)
	}
	return nil
}

func (m *MockStore) AddPlaytime(ctx context.Context, id uuid.UUID, ms int64) error {
	m.mu.Lock()
	m.AddPlaytimeCalls = append(m.AddPlaytimeCalls, struct {
		ID uuid.UUID
		MS int64
	}{id, ms})
	fn := m.AddPlaytimeFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, id, ms)
	}
	return nil
}

func (m *MockStore) Ping(ctx context.Context) error {
	m.mu.Lock()
	m.PingCalls++
	fn := m.PingFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return nil
}

// TopPlaytimesCallCount returns how often TopPlaytimes was called.
func (m *MockStore) TopPlaytimesCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.TopPlaytimesCalls)
}

// GetPlayerCallCount returns how often GetPlayer was called.
func (m *MockStore) GetPlayerCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.GetPlayerCalls)
}
