package handlers

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/valorant-report/internal/command"
	"github.com/mauv0809/valorant-report/internal/henrik"
	"github.com/mauv0809/valorant-report/internal/metrics"
	"github.com/mauv0809/valorant-report/internal/notifier"
	"github.com/mauv0809/valorant-report/internal/pubsub"
	"github.com/mauv0809/valorant-report/internal/report"
)

// StatsRequestedHandler consumes stats-requested push messages, builds the report
// and posts it to the requesting channel. Redelivery of a request that is still
// being handled is acknowledged without doing the work twice.
func StatsRequestedHandler(builder report.Builder, notifier notifier.Notifier, pubsubClient pubsub.PubSubClient, inFlight *command.InFlight, metr metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		envelope, err := readPushMessage(r)
		if err != nil {
			log.Error("Failed to read stats request", "error", err)
			http.Error(w, "Invalid push message", http.StatusBadRequest)
			return
		}

		var req pubsub.StatsRequest
		if err := pubsubClient.ProcessMessage(envelope.Message.Data, &req); err != nil {
			http.Error(w, "Invalid stats request", http.StatusBadRequest)
			return
		}
		if req.Name == "" || req.Tag == "" || req.ChannelID == "" {
			log.Warn("Dropping incomplete stats request", "requestID", req.RequestID)
			http.Error(w, "Incomplete stats request", http.StatusBadRequest)
			return
		}

		key := req.RequestID
		if key == "" {
			key = envelope.Message.MessageID
		}
		release, ok := inFlight.TryAcquire(key)
		if !ok {
			log.Info("Stats request already in flight", "requestID", key)
			w.Write([]byte("OK"))
			return
		}
		defer release()
		metr.IncCommandsReceived(metrics.SourcePubSub)

		isDryRun := IsDryRunFromContext(r)
		query := req.Name + "#" + req.Tag
		rep, err := builder.Build(r.Context(), req.Name, req.Tag)
		switch {
		case errors.Is(err, henrik.ErrPlayerNotFound):
			err = notifier.SendPlayerNotFound(r.Context(), req.ChannelID, query, isDryRun)
		case err != nil:
			log.Error("Failed to build report", "error", err, "requestID", key, "player", query)
			err = notifier.SendFailure(r.Context(), req.ChannelID, isDryRun)
		default:
			err = notifier.SendReport(r.Context(), req.ChannelID, rep, isDryRun)
		}
		if err != nil {
			log.Error("Failed to answer stats request", "error", err, "requestID", key)
			http.Error(w, "Failed to send reply", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
