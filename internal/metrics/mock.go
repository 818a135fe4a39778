package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	commandsReceived map[string]int
	reportsBuilt     int
	noData           int
	playerNotFound   int
	upstreamErrors   int
	reportDurations  []float64
	notifSent        map[string]int
	notifFailed      map[string]int
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		commandsReceived: make(map[string]int),
		reportDurations:  make([]float64, 0),
		notifSent:        make(map[string]int),
		notifFailed:      make(map[string]int),
	}
}

func (m *Mock) IncCommandsReceived(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commandsReceived[source]++
}

func (m *Mock) IncReportsBuilt() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reportsBuilt++
}

func (m *Mock) IncNoData() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.noData++
}

func (m *Mock) IncPlayerNotFound() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playerNotFound++
}

func (m *Mock) IncUpstreamErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upstreamErrors++
}

func (m *Mock) ObserveReportDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reportDurations = append(m.reportDurations, duration)
}

func (m *Mock) IncNotifSent(platform string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent[platform]++
}

func (m *Mock) IncNotifFailed(platform string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed[platform]++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// CommandsReceived returns the number of commands recorded for source.
func (m *Mock) CommandsReceived(source string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commandsReceived[source]
}

// ReportsBuilt returns the number of times IncReportsBuilt was called.
func (m *Mock) ReportsBuilt() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reportsBuilt
}

// NoData returns the number of times IncNoData was called.
func (m *Mock) NoData() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.noData
}

// PlayerNotFound returns the number of times IncPlayerNotFound was called.
func (m *Mock) PlayerNotFound() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playerNotFound
}

// UpstreamErrors returns the number of times IncUpstreamErrors was called.
func (m *Mock) UpstreamErrors() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.upstreamErrors
}

// ReportDurations returns a copy of the observed report durations.
func (m *Mock) ReportDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.reportDurations...)
}

// NotifSent returns the number of successful replies recorded for platform.
func (m *Mock) NotifSent(platform string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent[platform]
}

// NotifFailed returns the number of failed replies recorded for platform.
func (m *Mock) NotifFailed(platform string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed[platform]
}
