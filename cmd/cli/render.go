package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mauv0809/valorant-report/internal/locale"
	"github.com/mauv0809/valorant-report/internal/notifier"
	"github.com/mauv0809/valorant-report/internal/report"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// renderReport writes the rank line, the aggregate table and the per-match table.
func renderReport(w io.Writer, c locale.Catalog, r *report.Report) {
	fmt.Fprintf(w, "%s#%s\n", r.Name, r.Tag)
	fmt.Fprintf(w, "Rank: %s  Peak: %s\n\n", notifier.CurrentRank(c, r.MMR.CurrentTier, r.MMR.RankingInTier), c.Rank(r.MMR.HighestTier))

	if r.Stats == nil {
		fmt.Fprintln(w, c.NoHistory)
		return
	}
	st := r.Stats

	summary := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	summary.Header("MATCHES", "K/D", "HS%", "WIN%", "AGENT")
	summary.Append(
		strconv.Itoa(len(st.Matches)),
		notifier.Ratio(st.KDRatio),
		notifier.Percent(st.HeadshotRate),
		fmt.Sprintf("%d%%", st.WinRate),
		st.MostUsedCharacter,
	)
	summary.Render()

	matches := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	matches.Header("RESULT", "MAP", "AGENT", "SCORE", "K", "D", "A", "K/D", "HS%")
	for _, m := range st.Matches {
		matches.Append(
			notifier.Outcome(c, m.Won),
			m.Map,
			m.Character,
			notifier.Score(c, m.Score),
			strconv.Itoa(m.Kills),
			strconv.Itoa(m.Deaths),
			strconv.Itoa(m.Assists),
			notifier.Ratio(m.KDRatio),
			notifier.Percent(m.HeadshotRate),
		)
	}
	matches.Render()

	if len(st.Skipped) > 0 {
		fmt.Fprintf(w, "\n%d match(es) skipped:", len(st.Skipped))
		for _, s := range st.Skipped {
			fmt.Fprintf(w, " %s(%s)", s.MatchID, s.Reason)
		}
		fmt.Fprintln(w)
	}
}
