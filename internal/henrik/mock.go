package henrik

import (
	"context"
	"sync"

	"github.com/mauv0809/valorant-report/internal/stats"
)

// MockClient is a mock implementation of the StatsClient interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	GetMMRFunc     func(name, tag string) (MMR, error)
	GetMatchesFunc func(name, tag, mode string) ([]stats.MatchRecord, error)

	// Call records
	GetMMRCalls     []PlayerCall
	GetMatchesCalls []PlayerCall
}

// PlayerCall holds the arguments of a player lookup.
type PlayerCall struct {
	Name string
	Tag  string
	Mode string
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetMMRCalls = nil
	m.GetMatchesCalls = nil
}

func (m *MockClient) GetMMR(ctx context.Context, name, tag string) (MMR, error) {
	m.mu.Lock()
	m.GetMMRCalls = append(m.GetMMRCalls, PlayerCall{Name: name, Tag: tag})
	fn := m.GetMMRFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(name, tag)
	}
	return MMR{}, ErrPlayerNotFound
}

func (m *MockClient) GetMatches(ctx context.Context, name, tag, mode string) ([]stats.MatchRecord, error) {
	m.mu.Lock()
	m.GetMatchesCalls = append(m.GetMatchesCalls, PlayerCall{Name: name, Tag: tag, Mode: mode})
	fn := m.GetMatchesFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(name, tag, mode)
	}
	return nil, nil
}
