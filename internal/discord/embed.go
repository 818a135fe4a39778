package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/mauv0809/valorant-report/internal/locale"
	"github.com/mauv0809/valorant-report/internal/notifier"
	"github.com/mauv0809/valorant-report/internal/report"
)

const (
	embedColor      = 0xFF4655
	authorIconURL   = "https://red-dot-geek.com/wp-content/uploads/2021/04/valorant-logo-600x600.png"
	maxFieldValue   = 1024
	blankFieldValue = "\u200B"
)

// Embed renders a report as a Discord embed.
func Embed(c locale.Catalog, r *report.Report, now time.Time) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Color:       embedColor,
		Author:      &discordgo.MessageEmbedAuthor{Name: c.ReportAuthor, IconURL: authorIconURL},
		Title:       fmt.Sprintf(c.ReportTitle, r.Name+"#"+r.Tag),
		Description: c.ReportSubtitle,
		Timestamp:   now.Format(time.RFC3339),
		Footer:      &discordgo.MessageEmbedFooter{Text: c.Footer},
	}
	if r.MMR.RankImageURL != "" {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: r.MMR.RankImageURL}
	}

	current := c.Unavailable
	if r.MMR.CurrentTier != "" {
		current = fmt.Sprintf("**%s**\n(%d RR)", c.Rank(r.MMR.CurrentTier), r.MMR.RankingInTier)
	}
	e.Fields = []*discordgo.MessageEmbedField{
		{Name: c.CurrentRank, Value: current, Inline: true},
		{Name: c.HighestRank, Value: fmt.Sprintf("**%s**", c.Rank(r.MMR.HighestTier)), Inline: true},
		{Name: blankFieldValue, Value: blankFieldValue, Inline: true},
	}

	st := r.Stats
	if st == nil {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{Name: c.History, Value: c.NoHistory})
		return e
	}

	var history strings.Builder
	for _, m := range st.Matches {
		status := "🟥 **" + c.Loss + "**"
		if m.Won {
			status = "🟦 **" + c.Win + "**"
		}
		fmt.Fprintf(&history, "%s | %s | %s\n", status, m.Map, m.Character)
		fmt.Fprintf(&history, "└ `%d/%d/%d` (KD:%s) HS:`%s`\n\n", m.Kills, m.Deaths, m.Assists, notifier.Ratio(m.KDRatio), notifier.Percent(m.HeadshotRate))
	}
	historyValue := strings.TrimSpace(history.String())
	if historyValue == "" {
		historyValue = c.NoHistory
	}

	e.Fields = append(e.Fields,
		&discordgo.MessageEmbedField{Name: c.AverageKD, Value: "`" + notifier.Ratio(st.KDRatio) + "`", Inline: true},
		&discordgo.MessageEmbedField{Name: c.AverageHS, Value: "`" + notifier.Percent(st.HeadshotRate) + "`", Inline: true},
		&discordgo.MessageEmbedField{Name: fmt.Sprintf(c.WinRate, r.MaxMatches), Value: fmt.Sprintf("`%d%%`", st.WinRate), Inline: true},
		&discordgo.MessageEmbedField{Name: c.MostUsed, Value: st.MostUsedCharacter},
		&discordgo.MessageEmbedField{Name: c.History, Value: truncate(historyValue, maxFieldValue)},
	)
	return e
}

// truncate cuts s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
