package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		CommandsReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "valorant_commands_received_total",
			Help: "The total number of stats lookups requested, by source.",
		}, []string{"source"}),
		ReportsBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "valorant_reports_built_total",
			Help: "The total number of reports built with match statistics.",
		}),
		NoData: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "valorant_reports_no_data_total",
			Help: "The total number of reports without usable match data.",
		}),
		PlayerNotFound: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "valorant_player_not_found_total",
			Help: "The total number of lookups for unknown players.",
		}),
		UpstreamErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "valorant_upstream_errors_total",
			Help: "The total number of failed calls to the stats API.",
		}),
		ReportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "valorant_report_duration_seconds",
			Help:    "The duration of building a single report.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		NotifSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "valorant_notifications_sent_total",
			Help: "The total number of chat replies successfully sent.",
		}, []string{"platform"}),
		NotifFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "valorant_notifications_failed_total",
			Help: "The total number of chat replies that failed to send.",
		}, []string{"platform"}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "valorant_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.CommandsReceived,
		s.ReportsBuilt,
		s.NoData,
		s.PlayerNotFound,
		s.UpstreamErrors,
		s.ReportDuration,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncCommandsReceived(source string) {
	s.CommandsReceived.WithLabelValues(source).Inc()
}

func (s *Service) IncReportsBuilt() {
	s.ReportsBuilt.Inc()
}

func (s *Service) IncNoData() {
	s.NoData.Inc()
}

func (s *Service) IncPlayerNotFound() {
	s.PlayerNotFound.Inc()
}

func (s *Service) IncUpstreamErrors() {
	s.UpstreamErrors.Inc()
}

func (s *Service) ObserveReportDuration(duration float64) {
	s.ReportDuration.Observe(duration)
}

func (s *Service) IncNotifSent(platform string) {
	s.NotifSent.WithLabelValues(platform).Inc()
}

func (s *Service) IncNotifFailed(platform string) {
	s.NotifFailed.WithLabelValues(platform).Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
