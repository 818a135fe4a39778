package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/valorant-report/internal/command"
	"github.com/mauv0809/valorant-report/internal/henrik"
	"github.com/mauv0809/valorant-report/internal/metrics"
	"github.com/mauv0809/valorant-report/internal/notifier"
	"github.com/mauv0809/valorant-report/internal/pubsub"
	"github.com/mauv0809/valorant-report/internal/report"
)

// StatsCommandHandler answers the /stats slash command. With a Pub/Sub client the
// lookup is published as a stats-requested event and a pending message is returned
// at once. Without one the report is built inline.
func StatsCommandHandler(builder report.Builder, notifier notifier.Notifier, pubsubClient pubsub.PubSubClient, topic pubsub.EventType, metr metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		metr.IncCommandsReceived(metrics.SourceSlack)

		text := r.FormValue("text")
		channelID := r.FormValue("channel_id")
		id, err := command.ParseRiotID(text)
		if err != nil {
			log.Info("Rejected stats command", "text", text, "error", err)
			msg, err := notifier.FormatUsageResponse(err)
			if err != nil {
				http.Error(w, "Failed to format usage", http.StatusInternalServerError)
				return
			}
			respondWithSlackMsg(w, msg)
			return
		}
		log.Info("Received stats command", "player", id.String(), "channel", channelID, "user", r.FormValue("user_name"))

		if pubsubClient != nil {
			req := pubsub.StatsRequest{
				RequestID:   uuid.NewString(),
				Name:        id.Name,
				Tag:         id.Tag,
				Source:      metrics.SourceSlack,
				ChannelID:   channelID,
				UserID:      r.FormValue("user_id"),
				RequestedAt: time.Now().Unix(),
			}
			if !IsDryRunFromContext(r) {
				if err := pubsubClient.SendMessage(r.Context(), topic, req); err != nil {
					log.Error("Failed to publish stats request", "error", err, "requestID", req.RequestID)
					http.Error(w, "Failed to queue stats request", http.StatusInternalServerError)
					return
				}
			}
			msg, err := notifier.FormatPendingResponse()
			if err != nil {
				http.Error(w, "Failed to format response", http.StatusInternalServerError)
				return
			}
			respondWithSlackMsg(w, msg)
			return
		}

		rep, err := builder.Build(r.Context(), id.Name, id.Tag)
		var msg any
		switch {
		case errors.Is(err, henrik.ErrPlayerNotFound):
			msg, err = notifier.FormatPlayerNotFoundResponse(id.String())
		case err != nil:
			log.Error("Failed to build report", "error", err, "player", id.String())
			http.Error(w, "Failed to fetch player data", http.StatusBadGateway)
			return
		default:
			msg, err = notifier.FormatReportResponse(rep)
		}
		if err != nil {
			http.Error(w, "Failed to format report", http.StatusInternalServerError)
			log.Error("Failed to format report", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}
