package config

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/valorant-report/internal/command"
	"github.com/mauv0809/valorant-report/internal/henrik"
	"github.com/mauv0809/valorant-report/internal/locale"
	"github.com/mauv0809/valorant-report/internal/pubsub"
	"github.com/mauv0809/valorant-report/internal/stats"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	cfg := FromEnv(os.LookupEnv)
	cfg.Port = getEnv("PORT")
	cfg.Henrik.APIKey = getEnv("HENRIK_API_KEY")
	if cfg.Slack.Enabled() {
		cfg.Slack.SigningSecret = getEnv("SLACK_SIGNING_SECRET")
	}
	return cfg
}

// FromEnv builds a Config from optional variables only, applying defaults.
// Invalid values are logged and replaced by their default.
func FromEnv(lookup func(string) (string, bool)) Config {
	getOptional := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}

	maxMatches := stats.DefaultMaxMatches
	if raw := getOptional("MAX_MATCHES", ""); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			log.Warn("Ignoring invalid MAX_MATCHES", "value", raw, "default", maxMatches)
		} else {
			maxMatches = n
		}
	}

	strategy := stats.IdentityStrategy(getOptional("IDENTITY_STRATEGY", string(stats.ResolveAuto)))
	switch strategy {
	case stats.ResolveAuto, stats.ResolvePlayerID, stats.ResolveNameTag:
	default:
		log.Warn("Ignoring unknown IDENTITY_STRATEGY", "value", strategy)
		strategy = stats.ResolveAuto
	}

	policy := stats.MissingOutcomePolicy(getOptional("MISSING_OUTCOME_POLICY", string(stats.MissingOutcomeLoss)))
	switch policy {
	case stats.MissingOutcomeLoss, stats.MissingOutcomeExclude:
	default:
		log.Warn("Ignoring unknown MISSING_OUTCOME_POLICY", "value", policy)
		policy = stats.MissingOutcomeLoss
	}

	apiKey, _ := lookup("HENRIK_API_KEY")
	port, _ := lookup("PORT")
	return Config{
		Port: port,
		Henrik: HenrikConfig{
			APIKey:  apiKey,
			BaseURL: getOptional("HENRIK_BASE_URL", henrik.DefaultBaseURL),
			Region:  getOptional("REGION", "ap"),
		},
		Stats: stats.Config{
			Mode:           getOptional("MATCH_MODE", "competitive"),
			MaxMatches:     maxMatches,
			Strategy:       strategy,
			MissingOutcome: policy,
		},
		Locale: locale.For(getOptional("LOCALE", locale.English)).Lang,
		Prefix: getOptional("COMMAND_PREFIX", command.DefaultPrefix),
		Slack: SlackConfig{
			Token:         getOptional("SLACK_BOT_TOKEN", ""),
			SigningSecret: getOptional("SLACK_SIGNING_SECRET", ""),
		},
		Discord: DiscordConfig{
			Token: getOptional("DISCORD_TOKEN", ""),
		},
		PubSub: PubSubConfig{
			ProjectID: getOptional("GCP_PROJECT", ""),
			Topic:     getOptional("PUBSUB_TOPIC", string(pubsub.EventStatsRequested)),
		},
	}
}
