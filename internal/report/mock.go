package report

import (
	"context"
	"sync"
)

// Mock is a mock implementation of the Builder interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	BuildFunc  func(name, tag string) (*Report, error)
	BuildCalls []BuildCall
}

// BuildCall holds the arguments of one Build call.
type BuildCall struct {
	Name string
	Tag  string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Build(ctx context.Context, name, tag string) (*Report, error) {
	m.mu.Lock()
	m.BuildCalls = append(m.BuildCalls, BuildCall{Name: name, Tag: tag})
	fn := m.BuildFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(name, tag)
	}
	return &Report{Name: name, Tag: tag}, nil
}

// Calls returns a copy of the recorded Build calls.
func (m *Mock) Calls() []BuildCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]BuildCall(nil), m.BuildCalls...)
}
