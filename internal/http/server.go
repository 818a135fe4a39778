package http

import (
	"net/http"

	"github.com/mauv0809/valorant-report/internal/command"
	"github.com/mauv0809/valorant-report/internal/config"
	"github.com/mauv0809/valorant-report/internal/http/handlers"
	"github.com/mauv0809/valorant-report/internal/metrics"
	"github.com/mauv0809/valorant-report/internal/notifier"
	"github.com/mauv0809/valorant-report/internal/pubsub"
	"github.com/mauv0809/valorant-report/internal/report"
)

// NewServer wires the HTTP routes. notifier may be nil when Slack is disabled,
// and pubsub may be nil when slash commands are answered inline.
func NewServer(metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, builder report.Builder, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Builder:        builder,
		Notifier:       notifier,
		InFlight:       command.NewInFlight(),
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/api/stats", Chain(handlers.StatsAPIHandler(s.Builder, s.Metrics), paramsMiddleware))

	if s.Notifier == nil {
		return
	}
	verify := slackVerificationMiddleware(s.Cfg.Slack.SigningSecret)
	s.Router.Handle("/slack/command/stats", Chain(
		handlers.StatsCommandHandler(s.Builder, s.Notifier, s.pubsub, pubsub.EventType(s.Cfg.PubSub.Topic), s.Metrics),
		paramsMiddleware, verify,
	))
	if s.pubsub != nil {
		s.Router.Handle("/pubsub/stats-requested", Chain(
			handlers.StatsRequestedHandler(s.Builder, s.Notifier, s.pubsub, s.InFlight, s.Metrics),
			paramsMiddleware,
		))
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
