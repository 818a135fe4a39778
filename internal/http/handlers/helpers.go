package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/valorant-report/internal/pubsub"
	"github.com/slack-go/slack"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg any) {
	slackMsg, ok := msg.(slack.Message)
	if !ok {
		http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
		log.Error("Failed to cast message to slack.Message")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(slackMsg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// respondJSON writes v as a JSON body with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response to JSON", "error", err)
	}
}

// readPushMessage unwraps the payload of a Pub/Sub push request.
func readPushMessage(r *http.Request) (pubsub.PushEnvelope, error) {
	var envelope pubsub.PushEnvelope
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return envelope, fmt.Errorf("failed to read request body: %w", err)
	}
	log.Debug("Received push message", "body", string(bodyBytes))

	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		return envelope, fmt.Errorf("invalid push envelope: %w", err)
	}
	if len(envelope.Message.Data) == 0 {
		return envelope, fmt.Errorf("push envelope carried no data")
	}
	return envelope, nil
}
