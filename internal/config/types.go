package config

import "github.com/mauv0809/valorant-report/internal/stats"

// Config holds all configuration for the application.
type Config struct {
	Port    string
	Henrik  HenrikConfig
	Stats   stats.Config
	Locale  string
	Prefix  string
	Slack   SlackConfig
	Discord DiscordConfig
	PubSub  PubSubConfig
}

type HenrikConfig struct {
	APIKey  string
	BaseURL string
	Region  string
}

type SlackConfig struct {
	Token         string
	SigningSecret string
}

// Enabled reports whether Slack credentials were provided.
func (c SlackConfig) Enabled() bool {
	return c.Token != ""
}

type DiscordConfig struct {
	Token string
}

// Enabled reports whether a Discord bot token was provided.
func (c DiscordConfig) Enabled() bool {
	return c.Token != ""
}

type PubSubConfig struct {
	ProjectID string
	Topic     string
}

// Enabled reports whether slash commands are handed off through Pub/Sub.
func (c PubSubConfig) Enabled() bool {
	return c.ProjectID != ""
}
