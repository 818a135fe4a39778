package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncCommandsReceived(source string)
	IncReportsBuilt()
	IncNoData()
	IncPlayerNotFound()
	IncUpstreamErrors()
	ObserveReportDuration(duration float64)
	IncNotifSent(platform string)
	IncNotifFailed(platform string)
	SetStartupTime(duration float64)
}
