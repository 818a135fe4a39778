package handlers

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/valorant-report/internal/command"
	"github.com/mauv0809/valorant-report/internal/henrik"
	"github.com/mauv0809/valorant-report/internal/metrics"
	"github.com/mauv0809/valorant-report/internal/report"
)

type errorResponse struct {
	Error string `json:"error"`
}

// StatsAPIHandler serves GET /api/stats?player=name%23tag as JSON.
// The name and tag query parameters are accepted as an alternative.
func StatsAPIHandler(builder report.Builder, metr metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		metr.IncCommandsReceived(metrics.SourceAPI)

		query := r.URL.Query()
		player := query.Get("player")
		if player == "" && (query.Get("name") != "" || query.Get("tag") != "") {
			player = query.Get("name") + "#" + query.Get("tag")
		}
		id, err := command.ParseRiotID(player)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		rep, err := builder.Build(r.Context(), id.Name, id.Tag)
		switch {
		case errors.Is(err, henrik.ErrPlayerNotFound):
			respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		case err != nil:
			log.Error("Failed to build report", "error", err, "player", id.String())
			respondJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to fetch player data"})
		default:
			respondJSON(w, http.StatusOK, rep)
		}
	}
}
