package discord

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/mauv0809/valorant-report/internal/command"
	"github.com/mauv0809/valorant-report/internal/henrik"
	"github.com/mauv0809/valorant-report/internal/locale"
	"github.com/mauv0809/valorant-report/internal/metrics"
	"github.com/mauv0809/valorant-report/internal/report"
)

// session is the subset of discordgo.Session used to answer commands.
// This allows for easy mocking in tests.
type session interface {
	ChannelMessageSendReply(channelID, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Bot answers "!stats name#tag" messages on the Discord gateway.
type Bot struct {
	session  *discordgo.Session
	api      session
	builder  report.Builder
	catalog  locale.Catalog
	prefix   string
	inFlight *command.InFlight
	metrics  metrics.Metrics
	timeout  time.Duration
	now      func() time.Time
}

// New creates a Bot for the given token. Call Start to connect.
func New(token string, builder report.Builder, catalog locale.Catalog, prefix string, metrics metrics.Metrics) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

	bot := newBot(s, builder, catalog, prefix, metrics)
	bot.session = s
	return bot, nil
}

func newBot(api session, builder report.Builder, catalog locale.Catalog, prefix string, metrics metrics.Metrics) *Bot {
	if prefix == "" {
		prefix = command.DefaultPrefix
	}
	return &Bot{
		api:      api,
		builder:  builder,
		catalog:  catalog,
		prefix:   prefix,
		inFlight: command.NewInFlight(),
		metrics:  metrics,
		timeout:  30 * time.Second,
		now:      time.Now,
	}
}

// Start registers the message handler and opens the gateway connection.
func (bot *Bot) Start() error {
	bot.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Info("Discord bot ready", "user", r.User.String())
	})
	bot.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		// Ignore all messages created by the bot itself
		if s.State != nil && s.State.User != nil && m.Author != nil && m.Author.ID == s.State.User.ID {
			return
		}
		bot.handle(context.Background(), m.Message)
	})
	return bot.session.Open()
}

func (bot *Bot) Stop() {
	if bot.session != nil {
		if err := bot.session.Close(); err != nil {
			log.Error("Failed to close Discord session", "error", err)
		}
	}
}

// handle answers one message. Each message id is processed at most once at a time.
func (bot *Bot) handle(ctx context.Context, m *discordgo.Message) {
	if m.Author != nil && m.Author.Bot {
		return
	}
	id, err := command.Parse(m.Content, bot.prefix)
	if errors.Is(err, command.ErrNotCommand) {
		return
	}

	release, ok := bot.inFlight.TryAcquire(m.ID)
	if !ok {
		log.Debug("Message already in flight", "messageID", m.ID)
		return
	}
	defer release()
	bot.metrics.IncCommandsReceived(metrics.SourceDiscord)

	switch {
	case errors.Is(err, command.ErrUsage):
		bot.reply(m, bot.catalog.Usage)
		return
	case errors.Is(err, command.ErrMalformedID):
		bot.reply(m, bot.catalog.MalformedID)
		return
	}

	log.Info("Received stats command", "player", id.String(), "channel", m.ChannelID)
	loading := bot.reply(m, bot.catalog.Loading)
	if loading == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, bot.timeout)
	defer cancel()
	r, err := bot.builder.Build(ctx, id.Name, id.Tag)

	edit := discordgo.NewMessageEdit(loading.ChannelID, loading.ID)
	switch {
	case errors.Is(err, henrik.ErrPlayerNotFound):
		edit.SetContent(bot.catalog.PlayerNotFound)
	case err != nil:
		log.Error("Failed to build report", "error", err, "player", id.String())
		edit.SetContent(bot.catalog.FetchFailed)
	default:
		edit.SetContent(bot.catalog.Done)
		edit.SetEmbeds([]*discordgo.MessageEmbed{Embed(bot.catalog, r, bot.now())})
	}

	if _, err := bot.api.ChannelMessageEditComplex(edit); err != nil {
		bot.metrics.IncNotifFailed(metrics.SourceDiscord)
		log.Error("Failed to edit Discord message", "error", err, "channel", loading.ChannelID)
		return
	}
	bot.metrics.IncNotifSent(metrics.SourceDiscord)
}

func (bot *Bot) reply(m *discordgo.Message, content string) *discordgo.Message {
	sent, err := bot.api.ChannelMessageSendReply(m.ChannelID, content, m.Reference())
	if err != nil {
		bot.metrics.IncNotifFailed(metrics.SourceDiscord)
		log.Error("Failed to send Discord reply", "error", err, "channel", m.ChannelID)
		return nil
	}
	return sent
}
