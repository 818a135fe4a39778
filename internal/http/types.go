package http

import (
	"net/http"

	"github.com/mauv0809/valorant-report/internal/command"
	"github.com/mauv0809/valorant-report/internal/config"
	"github.com/mauv0809/valorant-report/internal/metrics"
	"github.com/mauv0809/valorant-report/internal/notifier"
	"github.com/mauv0809/valorant-report/internal/pubsub"
	"github.com/mauv0809/valorant-report/internal/report"
)

type Server struct {
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Builder        report.Builder
	Notifier       notifier.Notifier
	InFlight       *command.InFlight
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
