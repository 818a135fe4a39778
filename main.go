package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/valorant-report/internal/config"
	"github.com/mauv0809/valorant-report/internal/discord"
	"github.com/mauv0809/valorant-report/internal/henrik"
	server "github.com/mauv0809/valorant-report/internal/http"
	"github.com/mauv0809/valorant-report/internal/locale"
	"github.com/mauv0809/valorant-report/internal/metrics"
	"github.com/mauv0809/valorant-report/internal/notifier"
	"github.com/mauv0809/valorant-report/internal/notifier/slack"
	"github.com/mauv0809/valorant-report/internal/pubsub"
	"github.com/mauv0809/valorant-report/internal/report"
	"github.com/mauv0809/valorant-report/internal/stats"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	catalog := locale.For(cfg.Locale)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	henrikClient := henrik.NewClient(cfg.Henrik.APIKey, cfg.Henrik.Region, cfg.Henrik.BaseURL)
	reportService := report.New(henrikClient, stats.NewEngine(cfg.Stats), metricsSvc)

	// Interfaces stay nil for disabled integrations so the server skips their routes.
	var slackNotifier notifier.Notifier
	if cfg.Slack.Enabled() {
		slackNotifier = slack.NewNotifier(cfg.Slack.Token, catalog, metricsSvc)
	} else {
		log.Info("Slack integration disabled")
	}

	var pubsubClient pubsub.PubSubClient
	if cfg.PubSub.Enabled() && slackNotifier != nil {
		pubsubClient = pubsub.New(cfg.PubSub.ProjectID)
		defer func() {
			log.Info("Closing pubsub client")
			if err := pubsubClient.Close(); err != nil {
				log.Error("Failed to close pubsub client", "error", err)
			}
		}()
	}

	if cfg.Discord.Enabled() {
		bot, err := discord.New(cfg.Discord.Token, reportService, catalog, cfg.Prefix, metricsSvc)
		if err != nil {
			log.Fatalf("Failed to create Discord bot: %s", err)
		}
		if err := bot.Start(); err != nil {
			log.Fatalf("Failed to connect to Discord: %s", err)
		}
		defer func() {
			log.Info("Closing Discord session")
			bot.Stop()
		}()
	} else {
		log.Info("Discord integration disabled")
	}

	s := server.NewServer(
		metricsSvc,
		metricsHandler,
		cfg,
		reportService,
		slackNotifier,
		pubsubClient,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port, "region", cfg.Henrik.Region, "mode", cfg.Stats.Mode)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Error("Server error", "error", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
