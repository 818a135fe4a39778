package henrik

import (
	"errors"
	"strings"

	"github.com/mauv0809/valorant-report/internal/stats"
)

// ErrPlayerNotFound is returned when the API has no account for a name and tag.
var ErrPlayerNotFound = errors.New("player not found")

// MMR is a player's current and peak competitive standing.
type MMR struct {
	PUUID         string `json:"puuid"`
	Name          string `json:"name"`
	Tag           string `json:"tag"`
	CurrentTier   string `json:"current_tier"`
	RankingInTier int    `json:"ranking_in_tier"`
	HighestTier   string `json:"highest_tier"`
	RankImageURL  string `json:"rank_image_url,omitempty"`
}

// mmrResponse defines the structure for the JSON response of the v2 MMR endpoint.
type mmrResponse struct {
	Status int      `json:"status"`
	Data   *mmrData `json:"data"`
}

type mmrData struct {
	Name        string          `json:"name"`
	Tag         string          `json:"tag"`
	PUUID       string          `json:"puuid"`
	CurrentData *mmrCurrentData `json:"current_data"`
	HighestRank *mmrHighestRank `json:"highest_rank"`
}

type mmrCurrentData struct {
	CurrentTierPatched string     `json:"currenttierpatched"`
	RankingInTier      int        `json:"ranking_in_tier"`
	Images             *mmrImages `json:"images"`
}

type mmrImages struct {
	Small string `json:"small"`
}

type mmrHighestRank struct {
	PatchedTier string `json:"patched_tier"`
}

// toMMR flattens the optional nested response into an MMR.
func (d *mmrData) toMMR() MMR {
	mmr := MMR{
		PUUID: d.PUUID,
		Name:  d.Name,
		Tag:   d.Tag,
	}
	if d.CurrentData != nil {
		mmr.CurrentTier = d.CurrentData.CurrentTierPatched
		mmr.RankingInTier = d.CurrentData.RankingInTier
		if d.CurrentData.Images != nil {
			mmr.RankImageURL = d.CurrentData.Images.Small
		}
	}
	if d.HighestRank != nil {
		mmr.HighestTier = d.HighestRank.PatchedTier
	}
	return mmr
}

// matchesResponse defines the structure for the JSON response of the v3 matches endpoint.
// Data is nil when the API reports no history.
type matchesResponse struct {
	Status int             `json:"status"`
	Data   []matchResponse `json:"data"`
}

type matchResponse struct {
	Metadata *matchMetadata `json:"metadata"`
	Players  *matchPlayers  `json:"players"`
	Teams    *matchTeams    `json:"teams"`
}

type matchMetadata struct {
	MatchID string `json:"matchid"`
	Map     string `json:"map"`
	Mode    string `json:"mode"`
}

type matchPlayers struct {
	AllPlayers []matchPlayer `json:"all_players"`
}

type matchPlayer struct {
	PUUID     string            `json:"puuid"`
	Name      string            `json:"name"`
	Tag       string            `json:"tag"`
	Team      string            `json:"team"`
	Character string            `json:"character"`
	Stats     *matchPlayerStats `json:"stats"`
}

// matchPlayerStats keeps every counter optional so a missing one can be told apart from zero.
type matchPlayerStats struct {
	Kills     *int `json:"kills"`
	Deaths    *int `json:"deaths"`
	Assists   *int `json:"assists"`
	Headshots *int `json:"headshots"`
	Bodyshots *int `json:"bodyshots"`
	Legshots  *int `json:"legshots"`
}

type matchTeams struct {
	Red  *teamResult `json:"red"`
	Blue *teamResult `json:"blue"`
}

type teamResult struct {
	HasWon    *bool `json:"has_won"`
	RoundsWon *int  `json:"rounds_won"`
}

// toRecord maps one upstream match into the engine's model.
func (m matchResponse) toRecord() stats.MatchRecord {
	var record stats.MatchRecord
	if m.Metadata != nil {
		record.MatchID = m.Metadata.MatchID
		record.Map = m.Metadata.Map
		record.Mode = m.Metadata.Mode
	}
	if m.Teams != nil {
		teams := make(map[stats.TeamSide]stats.TeamOutcome)
		for side, result := range map[stats.TeamSide]*teamResult{stats.TeamRed: m.Teams.Red, stats.TeamBlue: m.Teams.Blue} {
			if result == nil || result.HasWon == nil {
				continue
			}
			outcome := stats.TeamOutcome{Won: *result.HasWon}
			if result.RoundsWon != nil {
				outcome.RoundsWon = *result.RoundsWon
			}
			teams[side] = outcome
		}
		if len(teams) > 0 {
			record.Teams = teams
		}
	}
	if m.Players != nil {
		record.Players = make([]stats.PlayerMatchEntry, 0, len(m.Players.AllPlayers))
		for _, p := range m.Players.AllPlayers {
			record.Players = append(record.Players, stats.PlayerMatchEntry{
				PlayerID:  p.PUUID,
				Name:      p.Name,
				Tag:       p.Tag,
				Team:      stats.TeamSide(strings.ToLower(p.Team)),
				Character: p.Character,
				Counters:  p.Stats.toCounters(),
			})
		}
	}
	return record
}

// toCounters returns nil unless every counter is present.
func (s *matchPlayerStats) toCounters() *stats.Counters {
	if s == nil || s.Kills == nil || s.Deaths == nil || s.Assists == nil ||
		s.Headshots == nil || s.Bodyshots == nil || s.Legshots == nil {
		return nil
	}
	return &stats.Counters{
		Kills:     *s.Kills,
		Deaths:    *s.Deaths,
		Assists:   *s.Assists,
		Headshots: *s.Headshots,
		Bodyshots: *s.Bodyshots,
		Legshots:  *s.Legshots,
	}
}
