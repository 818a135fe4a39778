package notifier

import (
	"context"
	"sync"

	"github.com/mauv0809/valorant-report/internal/report"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendReportCalls []struct {
		ChannelID string
		Report    *report.Report
	}
	SendPlayerNotFoundCalls []struct {
		ChannelID string
		Query     string
	}
	SendFailureCalls []string

	// Spies
	SendReportFunc                   func(channelID string, r *report.Report) error
	FormatReportResponseFunc         func(r *report.Report) (any, error)
	FormatPlayerNotFoundResponseFunc func(query string) (any, error)
	FormatUsageResponseFunc          func(err error) (any, error)
	FormatPendingResponseFunc        func() (any, error)
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendReportCalls = nil
	m.SendPlayerNotFoundCalls = nil
	m.SendFailureCalls = nil
}

func (m *Mock) SendReport(ctx context.Context, channelID string, r *report.Report, dryRun bool) error {
	m.mu.Lock()
	m.SendReportCalls = append(m.SendReportCalls, struct {
		ChannelID string
		Report    *report.Report
	}{channelID, r})
	fn := m.SendReportFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(channelID, r)
	}
	return nil
}

func (m *Mock) SendPlayerNotFound(ctx context.Context, channelID, query string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPlayerNotFoundCalls = append(m.SendPlayerNotFoundCalls, struct {
		ChannelID string
		Query     string
	}{channelID, query})
	return nil
}

func (m *Mock) SendFailure(ctx context.Context, channelID string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendFailureCalls = append(m.SendFailureCalls, channelID)
	return nil
}

func (m *Mock) FormatReportResponse(r *report.Report) (any, error) {
	if m.FormatReportResponseFunc != nil {
		return m.FormatReportResponseFunc(r)
	}
	return map[string]string{"text": "report for " + r.Name}, nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	if m.FormatPlayerNotFoundResponseFunc != nil {
		return m.FormatPlayerNotFoundResponseFunc(query)
	}
	return map[string]string{"text": "not found: " + query}, nil
}

func (m *Mock) FormatUsageResponse(err error) (any, error) {
	if m.FormatUsageResponseFunc != nil {
		return m.FormatUsageResponseFunc(err)
	}
	return map[string]string{"text": "usage: " + err.Error()}, nil
}

func (m *Mock) FormatPendingResponse() (any, error) {
	if m.FormatPendingResponseFunc != nil {
		return m.FormatPendingResponseFunc()
	}
	return map[string]string{"text": "pending"}, nil
}
