package metrics

import "github.com/prometheus/client_golang/prometheus"

// Command sources and notification platforms used as label values.
const (
	SourceDiscord = "discord"
	SourceSlack   = "slack"
	SourceAPI     = "api"
	SourcePubSub  = "pubsub"
)

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	CommandsReceived   *prometheus.CounterVec
	ReportsBuilt       prometheus.Counter
	NoData             prometheus.Counter
	PlayerNotFound     prometheus.Counter
	UpstreamErrors     prometheus.Counter
	ReportDuration     prometheus.Histogram
	NotifSent          *prometheus.CounterVec
	NotifFailed        *prometheus.CounterVec
	StartupTimeSeconds prometheus.Gauge
}
