package slack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/valorant-report/internal/command"
	"github.com/mauv0809/valorant-report/internal/locale"
	"github.com/mauv0809/valorant-report/internal/metrics"
	"github.com/mauv0809/valorant-report/internal/notifier"
	"github.com/mauv0809/valorant-report/internal/report"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier renders reports as Block Kit messages and posts them to Slack.
type Notifier struct {
	api     slackClient
	catalog locale.Catalog
	metrics metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token string, catalog locale.Catalog, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:     api,
		catalog: catalog,
		metrics: metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, catalog locale.Catalog, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:     api,
		catalog: catalog,
		metrics: metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, channelID string, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channel, timestamp, err := s.api.PostMessageContext(
		ctx,
		channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionText(message.Text, false),
	)

	if err != nil {
		s.metrics.IncNotifFailed(metrics.SourceSlack)
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent(metrics.SourceSlack)
	log.Info("Successfully sent Slack message", "channel", channel, "timestamp", timestamp)
	return channel, timestamp, nil
}

func (s *Notifier) SendReport(ctx context.Context, channelID string, r *report.Report, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, channelID, s.formatReport(r), dryRun)
	return err
}

func (s *Notifier) SendPlayerNotFound(ctx context.Context, channelID, query string, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, channelID, s.formatPlayerNotFound(query), dryRun)
	return err
}

func (s *Notifier) SendFailure(ctx context.Context, channelID string, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, channelID, s.formatText(s.catalog.FetchFailed), dryRun)
	return err
}

// FormatReportResponse formats a report for a slash command response.
func (s *Notifier) FormatReportResponse(r *report.Report) (any, error) {
	msg := s.formatReport(r)
	msg.ResponseType = "in_channel"
	return msg, nil
}

func (s *Notifier) FormatPlayerNotFoundResponse(query string) (any, error) {
	return s.formatPlayerNotFound(query), nil
}

// FormatUsageResponse explains how to call the command, picking the text by parse error.
func (s *Notifier) FormatUsageResponse(err error) (any, error) {
	if errors.Is(err, command.ErrMalformedID) {
		return s.formatText(s.catalog.MalformedID), nil
	}
	return s.formatText(s.catalog.Usage), nil
}

func (s *Notifier) FormatPendingResponse() (any, error) {
	return s.formatText(s.catalog.Loading), nil
}

// formatReport creates the full report message.
func (s *Notifier) formatReport(r *report.Report) slack.Message {
	c := s.catalog
	player := r.Name + "#" + r.Tag
	blocks := make([]slack.Block, 0, 8)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf(c.ReportTitle, player), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	// Rank, with the tier icon when the API provides one
	var accessory *slack.Accessory
	if r.MMR.RankImageURL != "" {
		accessory = slack.NewAccessory(slack.NewImageBlockElement(r.MMR.RankImageURL, r.MMR.CurrentTier))
	}
	rankFields := []*slack.TextBlockObject{
		mrkdwnText(fmt.Sprintf("*%s*\n%s", c.CurrentRank, notifier.CurrentRank(c, r.MMR.CurrentTier, r.MMR.RankingInTier))),
		mrkdwnText(fmt.Sprintf("*%s*\n%s", c.HighestRank, c.Rank(r.MMR.HighestTier))),
	}
	blocks = append(blocks, slack.NewSectionBlock(mrkdwnText(mrkdwn(c.ReportSubtitle)), rankFields, accessory))

	if r.Stats == nil {
		blocks = append(blocks, slack.NewSectionBlock(mrkdwnText(c.NoHistory), nil, nil))
	} else {
		st := r.Stats
		statFields := []*slack.TextBlockObject{
			mrkdwnText(fmt.Sprintf("*%s*\n`%s`", c.AverageKD, notifier.Ratio(st.KDRatio))),
			mrkdwnText(fmt.Sprintf("*%s*\n`%s`", c.AverageHS, notifier.Percent(st.HeadshotRate))),
			mrkdwnText(fmt.Sprintf("*%s*\n`%d%%`", fmt.Sprintf(c.WinRate, r.MaxMatches), st.WinRate)),
			mrkdwnText(fmt.Sprintf("*%s*\n%s", c.MostUsed, st.MostUsedCharacter)),
		}
		blocks = append(blocks, slack.NewDividerBlock())
		blocks = append(blocks, slack.NewSectionBlock(nil, statFields, nil))

		var history strings.Builder
		fmt.Fprintf(&history, "*%s*\n", c.History)
		for _, m := range st.Matches {
			fmt.Fprintf(&history, "*%s* | %s | %s | %s\n> `%s`\n",
				notifier.Outcome(c, m.Won), m.Map, m.Character, notifier.Score(c, m.Score), notifier.StatLine(m))
		}
		blocks = append(blocks, slack.NewSectionBlock(mrkdwnText(strings.TrimSuffix(history.String(), "\n")), nil, nil))
	}

	// Context
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("mrkdwn", c.Footer, false, false)))

	msg := slack.NewBlockMessage(blocks...)
	msg.Text = fmt.Sprintf(c.ReportTitle, player)
	return msg
}

// formatPlayerNotFound creates a Slack message for an unknown name#tag.
func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	text := fmt.Sprintf("%s (*%s*)", s.catalog.PlayerNotFound, query)
	return s.formatText(text)
}

func (s *Notifier) formatText(text string) slack.Message {
	text = mrkdwn(text)
	msg := slack.NewBlockMessage(slack.NewSectionBlock(mrkdwnText(text), nil, nil))
	msg.Text = text
	return msg
}

func mrkdwnText(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject("mrkdwn", text, false, false)
}

// mrkdwn converts the catalog's double-asterisk bold to Slack's single asterisk.
func mrkdwn(text string) string {
	return strings.ReplaceAll(text, "**", "*")
}
