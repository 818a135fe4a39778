package stats

import "errors"

// DefaultMaxMatches is the number of most recent matches analyzed when no limit is configured.
const DefaultMaxMatches = 5

var (
	// ErrNoData is the sentinel every "nothing to report" outcome wraps.
	// Callers branch with errors.Is(err, ErrNoData); it is never a hard failure.
	ErrNoData = errors.New("no data")
	// ErrNoUpstreamData is returned when the upstream match list is absent.
	ErrNoUpstreamData = errNoData("no upstream match data")
	// ErrNoMatchingMatches is returned when the target was not resolved in any selected match.
	ErrNoMatchingMatches = errNoData("target player not found in any match")
)

type noDataError struct{ msg string }

func errNoData(msg string) error { return &noDataError{msg: msg} }
func (e *noDataError) Error() string { return ErrNoData.Error() + ": " + e.msg }
func (e *noDataError) Unwrap() error { return ErrNoData }

// TeamSide identifies a team within a match. Values are lower-cased.
type TeamSide string

const (
	TeamRed  TeamSide = "red"
	TeamBlue TeamSide = "blue"
)

// TeamOutcome is one team's result in a match.
type TeamOutcome struct {
	RoundsWon int
	Won       bool
}

// MatchRecord is one completed match.
type MatchRecord struct {
	MatchID string
	Map     string
	Mode    string
	// Teams is nil when the upstream did not report team outcomes.
	Teams   map[TeamSide]TeamOutcome
	Players []PlayerMatchEntry
}

// PlayerMatchEntry is one player's performance within a match.
type PlayerMatchEntry struct {
	PlayerID  string
	Name      string
	Tag       string
	Team      TeamSide
	Character string
	// Counters is nil when the upstream entry lacked its stat block.
	Counters *Counters
}

// Counters are the raw per-match counters of a player.
type Counters struct {
	Kills     int
	Deaths    int
	Assists   int
	Headshots int
	Bodyshots int
	Legshots  int
}

// TargetIdentity is the player whose statistics are aggregated.
type TargetIdentity struct {
	PlayerID string
	Name     string
	Tag      string
}

// IdentityStrategy selects how the target is located inside a match.
type IdentityStrategy string

const (
	// ResolveAuto compares stable ids when both sides carry one and falls back to name and tag.
	ResolveAuto IdentityStrategy = "auto"
	// ResolvePlayerID only compares stable ids.
	ResolvePlayerID IdentityStrategy = "id"
	// ResolveNameTag only compares name and tag, case-insensitively.
	ResolveNameTag IdentityStrategy = "name_tag"
)

// MissingOutcomePolicy decides how a match without team outcomes counts toward the win rate.
type MissingOutcomePolicy string

const (
	// MissingOutcomeLoss counts the match as a loss.
	MissingOutcomeLoss MissingOutcomePolicy = "loss"
	// MissingOutcomeExclude leaves the match out of the win-rate denominator.
	MissingOutcomeExclude MissingOutcomePolicy = "exclude"
)

// Config is consumed once when the Engine is built.
type Config struct {
	Mode           string
	MaxMatches     int
	Strategy       IdentityStrategy
	MissingOutcome MissingOutcomePolicy
}

// SkipReason explains why a selected match produced no summary.
type SkipReason string

const (
	SkipPlayerNotFound  SkipReason = "PLAYER_NOT_FOUND"
	SkipAmbiguousPlayer SkipReason = "AMBIGUOUS_PLAYER"
	SkipMalformedEntry  SkipReason = "MALFORMED_ENTRY"
)

// Skip records a selected match that was left out of the aggregate.
type Skip struct {
	MatchID string     `json:"match_id"`
	Reason  SkipReason `json:"reason"`
}

// RoundScore is the two-team round score of a match.
type RoundScore struct {
	Blue int `json:"blue"`
	Red  int `json:"red"`
}

// PerMatchSummary is the target's line for a single analyzed match.
type PerMatchSummary struct {
	MatchID      string  `json:"match_id"`
	Map          string  `json:"map"`
	Character    string  `json:"character"`
	Kills        int     `json:"kills"`
	Deaths       int     `json:"deaths"`
	Assists      int     `json:"assists"`
	KDRatio      float64 `json:"kd_ratio"`
	HeadshotRate float64 `json:"headshot_rate"`
	Won          bool    `json:"won"`
	// Score is nil when the match had no outcome data for both teams.
	Score *RoundScore `json:"score,omitempty"`
}

// AggregateResult is the derived, read-only output of an aggregation.
type AggregateResult struct {
	KDRatio           float64           `json:"kd_ratio"`
	HeadshotRate      float64           `json:"headshot_rate"`
	WinRate           int               `json:"win_rate"`
	MostUsedCharacter string            `json:"most_used_character"`
	Matches           []PerMatchSummary `json:"matches"`
	Skipped           []Skip            `json:"skipped,omitempty"`
}
