package report

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/valorant-report/internal/henrik"
	"github.com/mauv0809/valorant-report/internal/metrics"
	"github.com/mauv0809/valorant-report/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func competitiveMatch(id string, kills, deaths int) stats.MatchRecord {
	return stats.MatchRecord{
		MatchID: id,
		Map:     "Bind",
		Mode:    "Competitive",
		Teams: map[stats.TeamSide]stats.TeamOutcome{
			stats.TeamBlue: {RoundsWon: 13, Won: true},
			stats.TeamRed:  {RoundsWon: 5},
		},
		Players: []stats.PlayerMatchEntry{{
			PlayerID:  "puuid-1",
			Name:      "Player",
			Tag:       "JP1",
			Team:      stats.TeamBlue,
			Character: "Reyna",
			Counters:  &stats.Counters{Kills: kills, Deaths: deaths, Headshots: 5, Bodyshots: 15},
		}},
	}
}

func newService(client henrik.StatsClient, metr metrics.Metrics) *Service {
	return New(client, stats.NewEngine(stats.Config{Mode: "competitive"}), metr)
}

func TestService_Build(t *testing.T) {
	t.Run("rank and stats are combined", func(t *testing.T) {
		client := henrik.NewMockClient()
		metr := metrics.NewMock()
		client.GetMMRFunc = func(name, tag string) (henrik.MMR, error) {
			return henrik.MMR{PUUID: "puuid-1", Name: "Player", Tag: "JP1", CurrentTier: "Gold 2"}, nil
		}
		client.GetMatchesFunc = func(name, tag, mode string) ([]stats.MatchRecord, error) {
			return []stats.MatchRecord{competitiveMatch("m1", 20, 10), competitiveMatch("m2", 10, 10)}, nil
		}

		r, err := newService(client, metr).Build(context.Background(), "player", "jp1")

		require.NoError(t, err)
		assert.Equal(t, "Player", r.Name, "canonical name from the rank lookup wins")
		assert.Equal(t, "Gold 2", r.MMR.CurrentTier)
		require.NotNil(t, r.Stats)
		assert.Equal(t, 1.5, r.Stats.KDRatio)
		assert.Equal(t, 100, r.Stats.WinRate)
		assert.Equal(t, 25.0, r.Stats.HeadshotRate)
		assert.Len(t, r.Stats.Matches, 2)

		require.Len(t, client.GetMatchesCalls, 1)
		assert.Equal(t, "competitive", client.GetMatchesCalls[0].Mode)
		assert.Equal(t, 1, metr.ReportsBuilt())
		assert.Len(t, metr.ReportDurations(), 1)
	})

	t.Run("unknown player is surfaced", func(t *testing.T) {
		client := henrik.NewMockClient()
		metr := metrics.NewMock()

		r, err := newService(client, metr).Build(context.Background(), "ghost", "0000")

		assert.Nil(t, r)
		assert.ErrorIs(t, err, henrik.ErrPlayerNotFound)
		assert.Equal(t, 1, metr.PlayerNotFound())
		assert.Equal(t, 0, metr.ReportsBuilt())
	})

	t.Run("rank lookup failure is an error", func(t *testing.T) {
		client := henrik.NewMockClient()
		metr := metrics.NewMock()
		client.GetMMRFunc = func(name, tag string) (henrik.MMR, error) {
			return henrik.MMR{}, errors.New("received non-OK HTTP status: 503")
		}

		_, err := newService(client, metr).Build(context.Background(), "p", "t")

		require.Error(t, err)
		assert.NotErrorIs(t, err, henrik.ErrPlayerNotFound)
		assert.Equal(t, 1, metr.UpstreamErrors())
	})

	t.Run("history failure still yields a rank-only report", func(t *testing.T) {
		client := henrik.NewMockClient()
		metr := metrics.NewMock()
		client.GetMMRFunc = func(name, tag string) (henrik.MMR, error) {
			return henrik.MMR{PUUID: "puuid-1", CurrentTier: "Iron 1"}, nil
		}
		client.GetMatchesFunc = func(name, tag, mode string) ([]stats.MatchRecord, error) {
			return nil, errors.New("timeout")
		}

		r, err := newService(client, metr).Build(context.Background(), "p", "t")

		require.NoError(t, err)
		assert.Nil(t, r.Stats)
		assert.Equal(t, "p", r.Name)
		assert.Equal(t, 1, metr.UpstreamErrors())
		assert.Equal(t, 1, metr.ReportsBuilt())
	})

	t.Run("empty history yields no stats", func(t *testing.T) {
		client := henrik.NewMockClient()
		metr := metrics.NewMock()
		client.GetMMRFunc = func(name, tag string) (henrik.MMR, error) {
			return henrik.MMR{PUUID: "puuid-1"}, nil
		}

		r, err := newService(client, metr).Build(context.Background(), "p", "t")

		require.NoError(t, err)
		assert.Nil(t, r.Stats)
		assert.Equal(t, 1, metr.NoData())
	})

	t.Run("player absent from every match yields no stats", func(t *testing.T) {
		client := henrik.NewMockClient()
		metr := metrics.NewMock()
		client.GetMMRFunc = func(name, tag string) (henrik.MMR, error) {
			return henrik.MMR{PUUID: "someone-else"}, nil
		}
		client.GetMatchesFunc = func(name, tag, mode string) ([]stats.MatchRecord, error) {
			return []stats.MatchRecord{competitiveMatch("m1", 1, 1)}, nil
		}

		r, err := newService(client, metr).Build(context.Background(), "p", "t")

		require.NoError(t, err)
		assert.Nil(t, r.Stats)
		assert.Equal(t, 1, metr.NoData())
	})
}
