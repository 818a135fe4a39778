package notifier

import (
	"fmt"

	"github.com/mauv0809/valorant-report/internal/locale"
	"github.com/mauv0809/valorant-report/internal/stats"
)

// Ratio renders a K/D ratio with two decimals.
func Ratio(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// Percent renders a percentage with one decimal.
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// Outcome returns the localised result word for a match.
func Outcome(c locale.Catalog, won bool) string {
	if won {
		return c.Win
	}
	return c.Loss
}

// Score renders "blue - red" or the catalog's placeholder when unknown.
func Score(c locale.Catalog, s *stats.RoundScore) string {
	if s == nil {
		return c.Unavailable
	}
	return fmt.Sprintf("%d - %d", s.Blue, s.Red)
}

// CurrentRank renders the tier with its ranking points, e.g. "Gold 2 (47 RR)".
func CurrentRank(c locale.Catalog, tier string, rr int) string {
	if tier == "" {
		return c.Unavailable
	}
	return fmt.Sprintf("%s (%d RR)", c.Rank(tier), rr)
}

// StatLine renders the counters of one match, e.g. "20/14/3 (KD:1.43) HS:25.0%".
func StatLine(m stats.PerMatchSummary) string {
	return fmt.Sprintf("%d/%d/%d (KD:%s) HS:%s", m.Kills, m.Deaths, m.Assists, Ratio(m.KDRatio), Percent(m.HeadshotRate))
}
