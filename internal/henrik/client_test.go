package henrik

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mauv0809/valorant-report/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(server *httptest.Server) *APIClient {
	return &APIClient{
		httpClient: server.Client(),
		apiKey:     "HDEV-test",
		region:     "ap",
		BaseURL:    server.URL,
	}
}

func TestGetMMR(t *testing.T) {
	mockJSONResponse := `{
		"status": 200,
		"data": {
			"name": "Sample Name",
			"tag": "JP1",
			"puuid": "puuid-123",
			"current_data": {
				"currenttierpatched": "Gold 2",
				"ranking_in_tier": 47,
				"images": { "small": "https://media.example/gold2.png" }
			},
			"highest_rank": { "patched_tier": "Platinum 1" }
		}
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/valorant/v2/mmr/ap/Sample Name/JP1", r.URL.Path)
		assert.Equal(t, "HDEV-test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, mockJSONResponse)
	}))
	defer server.Close()

	mmr, err := newTestClient(server).GetMMR(context.Background(), "Sample Name", "JP1")

	require.NoError(t, err)
	assert.Equal(t, MMR{
		PUUID:         "puuid-123",
		Name:          "Sample Name",
		Tag:           "JP1",
		CurrentTier:   "Gold 2",
		RankingInTier: 47,
		HighestTier:   "Platinum 1",
		RankImageURL:  "https://media.example/gold2.png",
	}, mmr)
}

func TestGetMMR_NotFound(t *testing.T) {
	t.Run("404 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintln(w, `{"status":404,"errors":[{"message":"Not found"}]}`)
		}))
		defer server.Close()

		_, err := newTestClient(server).GetMMR(context.Background(), "nobody", "0000")
		assert.ErrorIs(t, err, ErrPlayerNotFound)
	})

	t.Run("missing data", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintln(w, `{"status":200}`)
		}))
		defer server.Close()

		_, err := newTestClient(server).GetMMR(context.Background(), "nobody", "0000")
		assert.ErrorIs(t, err, ErrPlayerNotFound)
	})
}

func TestGetMatches(t *testing.T) {
	mockJSONResponse := `{
		"status": 200,
		"data": [
			{
				"metadata": { "matchid": "match-1", "map": "Ascent", "mode": "Competitive" },
				"players": { "all_players": [
					{ "puuid": "puuid-123", "name": "Sample", "tag": "JP1", "team": "Blue", "character": "Jett",
					  "stats": { "kills": 20, "deaths": 14, "assists": 3, "headshots": 12, "bodyshots": 30, "legshots": 2 } },
					{ "puuid": "puuid-456", "name": "Other", "tag": "KR1", "team": "Red", "character": "Sova",
					  "stats": { "kills": 11, "deaths": 17 } }
				] },
				"teams": {
					"red": { "has_won": false, "rounds_won": 9 },
					"blue": { "has_won": true, "rounds_won": 13 }
				}
			},
			{
				"metadata": { "matchid": "match-2", "map": "Bind", "mode": "Competitive" },
				"players": { "all_players": [] }
			}
		]
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/valorant/v3/matches/ap/Sample/JP1", r.URL.Path)
		assert.Equal(t, "competitive", r.URL.Query().Get("filter"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, mockJSONResponse)
	}))
	defer server.Close()

	matches, err := newTestClient(server).GetMatches(context.Background(), "Sample", "JP1", "competitive")

	require.NoError(t, err)
	require.Len(t, matches, 2)

	first := matches[0]
	assert.Equal(t, "match-1", first.MatchID)
	assert.Equal(t, "Ascent", first.Map)
	assert.Equal(t, map[stats.TeamSide]stats.TeamOutcome{
		stats.TeamRed:  {RoundsWon: 9, Won: false},
		stats.TeamBlue: {RoundsWon: 13, Won: true},
	}, first.Teams)
	require.Len(t, first.Players, 2)
	assert.Equal(t, stats.TeamBlue, first.Players[0].Team)
	assert.Equal(t, &stats.Counters{Kills: 20, Deaths: 14, Assists: 3, Headshots: 12, Bodyshots: 30, Legshots: 2}, first.Players[0].Counters)
	assert.Nil(t, first.Players[1].Counters, "partial stat blocks are treated as malformed")

	assert.Nil(t, matches[1].Teams, "absent team outcomes stay absent")
	assert.Empty(t, matches[1].Players)
}

func TestGetMatches_NoHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"status":200,"data":null}`)
	}))
	defer server.Close()

	matches, err := newTestClient(server).GetMatches(context.Background(), "Sample", "JP1", "competitive")

	require.NoError(t, err)
	assert.Nil(t, matches)
}

func TestGetMatches_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(server).GetMatches(context.Background(), "Sample", "JP1", "competitive")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPlayerNotFound)
	assert.Contains(t, err.Error(), "429")
}
