package report

import (
	"github.com/mauv0809/valorant-report/internal/henrik"
	"github.com/mauv0809/valorant-report/internal/metrics"
	"github.com/mauv0809/valorant-report/internal/stats"
)

// Report is everything a chat reply shows for one player.
// Stats is nil when the player exists but no usable match data was found.
type Report struct {
	Name       string                 `json:"name"`
	Tag        string                 `json:"tag"`
	MMR        henrik.MMR             `json:"mmr"`
	Stats      *stats.AggregateResult `json:"stats"`
	Mode       string                 `json:"mode"`
	MaxMatches int                    `json:"max_matches"`
}

// Service builds reports from the stats API.
type Service struct {
	client  henrik.StatsClient
	engine  *stats.Engine
	metrics metrics.Metrics
}
