package henrik

import (
	"context"

	"github.com/mauv0809/valorant-report/internal/stats"
)

// StatsClient defines the interface for interacting with the HenrikDev Valorant API.
// This allows for mock implementations to be used in tests.
type StatsClient interface {
	GetMMR(ctx context.Context, name, tag string) (MMR, error)
	GetMatches(ctx context.Context, name, tag, mode string) ([]stats.MatchRecord, error)
}
