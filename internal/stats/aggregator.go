package stats

import (
	"math"
	"strings"

	"github.com/charmbracelet/log"
)

// Engine selects and aggregates match records. It holds no state besides its
// configuration and is safe for concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine creates an Engine, filling unset configuration with defaults.
func NewEngine(cfg Config) *Engine {
	if cfg.MaxMatches <= 0 {
		cfg.MaxMatches = DefaultMaxMatches
	}
	if cfg.Strategy == "" {
		cfg.Strategy = ResolveAuto
	}
	if cfg.MissingOutcome == "" {
		cfg.MissingOutcome = MissingOutcomeLoss
	}
	return &Engine{cfg: cfg}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Summarize runs Select with the configured mode and limit, then Aggregate.
func (e *Engine) Summarize(matches []MatchRecord, target TargetIdentity) (*AggregateResult, error) {
	selected, err := Select(matches, e.cfg.Mode, e.cfg.MaxMatches)
	if err != nil {
		return nil, err
	}
	log.Debug("Selected matches for aggregation", "received", len(matches), "selected", len(selected), "mode", e.cfg.Mode)
	return e.Aggregate(selected, target)
}

// Aggregate walks the selected matches in order, locates the target in each and
// accumulates its statistics. Matches where the target cannot be resolved, or
// whose entry lacks counters, are skipped. If no match is left the result is
// ErrNoMatchingMatches.
func (e *Engine) Aggregate(matches []MatchRecord, target TargetIdentity) (*AggregateResult, error) {
	var (
		totalKills, totalDeaths    int
		totalHeadshots, totalShots int
		wins, decided              int
		characterCount             = make(map[string]int)
		characterOrder             []string
		summaries                  = make([]PerMatchSummary, 0, len(matches))
		skipped                    []Skip
	)

	for _, m := range matches {
		player, reason := e.resolve(m, target)
		if reason == "" && player.Counters == nil {
			reason = SkipMalformedEntry
		}
		if reason != "" {
			log.Debug("Skipping match", "matchID", m.MatchID, "reason", reason)
			skipped = append(skipped, Skip{MatchID: m.MatchID, Reason: reason})
			continue
		}

		c := player.Counters
		won, known := outcomeFor(m, player.Team)
		if known || e.cfg.MissingOutcome == MissingOutcomeLoss {
			decided++
		}
		if won {
			wins++
		}

		shots := c.Headshots + c.Bodyshots + c.Legshots
		totalKills += c.Kills
		totalDeaths += c.Deaths
		totalHeadshots += c.Headshots
		totalShots += shots

		if _, seen := characterCount[player.Character]; !seen {
			characterOrder = append(characterOrder, player.Character)
		}
		characterCount[player.Character]++

		summaries = append(summaries, PerMatchSummary{
			MatchID:      m.MatchID,
			Map:          m.Map,
			Character:    player.Character,
			Kills:        c.Kills,
			Deaths:       c.Deaths,
			Assists:      c.Assists,
			KDRatio:      round(kdRatio(c.Kills, c.Deaths), 2),
			HeadshotRate: round(headshotRate(c.Headshots, shots), 1),
			Won:          won,
			Score:        roundScore(m),
		})
	}

	if len(summaries) == 0 {
		return nil, ErrNoMatchingMatches
	}

	winRate := 0
	if decided > 0 {
		winRate = int(math.Round(100 * float64(wins) / float64(decided)))
	}

	return &AggregateResult{
		KDRatio:           round(kdRatio(totalKills, totalDeaths), 2),
		HeadshotRate:      round(headshotRate(totalHeadshots, totalShots), 1),
		WinRate:           winRate,
		MostUsedCharacter: mostUsed(characterOrder, characterCount),
		Matches:           summaries,
		Skipped:           skipped,
	}, nil
}

// resolve returns the single entry identifying target, or the reason there is none.
func (e *Engine) resolve(m MatchRecord, target TargetIdentity) (*PlayerMatchEntry, SkipReason) {
	var found *PlayerMatchEntry
	hits := 0
	for i := range m.Players {
		if e.identifies(m.Players[i], target) {
			hits++
			found = &m.Players[i]
		}
	}
	switch hits {
	case 0:
		return nil, SkipPlayerNotFound
	case 1:
		return found, ""
	default:
		return nil, SkipAmbiguousPlayer
	}
}

func (e *Engine) identifies(p PlayerMatchEntry, t TargetIdentity) bool {
	switch e.cfg.Strategy {
	case ResolvePlayerID:
		return t.PlayerID != "" && p.PlayerID == t.PlayerID
	case ResolveNameTag:
		return sameNameTag(p, t)
	default:
		if t.PlayerID != "" && p.PlayerID != "" {
			return p.PlayerID == t.PlayerID
		}
		return sameNameTag(p, t)
	}
}

// sameNameTag requires both name and tag to match.
func sameNameTag(p PlayerMatchEntry, t TargetIdentity) bool {
	if t.Name == "" || t.Tag == "" {
		return false
	}
	return strings.EqualFold(p.Name, t.Name) && strings.EqualFold(p.Tag, t.Tag)
}

// outcomeFor reports whether side won m and whether m carried outcome data at all.
func outcomeFor(m MatchRecord, side TeamSide) (won bool, known bool) {
	if len(m.Teams) == 0 {
		return false, false
	}
	outcome, ok := m.Teams[TeamSide(strings.ToLower(string(side)))]
	return ok && outcome.Won, true
}

func roundScore(m MatchRecord) *RoundScore {
	blue, okBlue := m.Teams[TeamBlue]
	red, okRed := m.Teams[TeamRed]
	if !okBlue || !okRed {
		return nil
	}
	return &RoundScore{Blue: blue.RoundsWon, Red: red.RoundsWon}
}

// kdRatio falls back to the kill count when there are no deaths.
func kdRatio(kills, deaths int) float64 {
	if deaths == 0 {
		return float64(kills)
	}
	return float64(kills) / float64(deaths)
}

// headshotRate is a percentage of landed shots, 0 when nothing landed.
func headshotRate(headshots, shots int) float64 {
	if shots == 0 {
		return 0
	}
	return float64(headshots) / float64(shots) * 100
}

// mostUsed picks the highest count; ties go to the character seen first.
func mostUsed(order []string, count map[string]int) string {
	best, bestCount := "", 0
	for _, character := range order {
		if count[character] > bestCount {
			best, bestCount = character, count[character]
		}
	}
	return best
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
