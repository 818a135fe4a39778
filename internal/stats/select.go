package stats

import "strings"

// Select narrows matches to the ordered subset to analyze: records whose mode
// equals mode (case-insensitive, skipped when mode is empty), first limit kept.
// An empty or nil slice means the upstream returned nothing and yields ErrNoUpstreamData.
func Select(matches []MatchRecord, mode string, limit int) ([]MatchRecord, error) {
	if len(matches) == 0 {
		return nil, ErrNoUpstreamData
	}
	if limit <= 0 {
		limit = DefaultMaxMatches
	}

	selected := make([]MatchRecord, 0, limit)
	for _, m := range matches {
		if len(selected) == limit {
			break
		}
		if mode != "" && !strings.EqualFold(m.Mode, mode) {
			continue
		}
		selected = append(selected, m)
	}
	return selected, nil
}
