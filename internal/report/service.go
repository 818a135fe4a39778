package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/valorant-report/internal/henrik"
	"github.com/mauv0809/valorant-report/internal/metrics"
	"github.com/mauv0809/valorant-report/internal/stats"
	"golang.org/x/sync/errgroup"
)

var _ Builder = (*Service)(nil)

// New creates a new report Service.
func New(client henrik.StatsClient, engine *stats.Engine, metrics metrics.Metrics) *Service {
	return &Service{
		client:  client,
		engine:  engine,
		metrics: metrics,
	}
}

// Build fetches rank and match history concurrently and aggregates the history.
// It returns henrik.ErrPlayerNotFound when the account does not exist. A failed
// history fetch or an empty history still yields a report, with nil Stats.
func (s *Service) Build(ctx context.Context, name, tag string) (*Report, error) {
	startTime := time.Now()
	defer func() {
		s.metrics.ObserveReportDuration(time.Since(startTime).Seconds())
	}()

	cfg := s.engine.Config()
	log.Info("Building report", "name", name, "tag", tag, "mode", cfg.Mode)

	var (
		mmr        henrik.MMR
		matches    []stats.MatchRecord
		matchesErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		mmr, err = s.client.GetMMR(gctx, name, tag)
		return err
	})
	g.Go(func() error {
		// History is optional for the report, so its failure must not cancel the rank lookup.
		matches, matchesErr = s.client.GetMatches(gctx, name, tag, cfg.Mode)
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, henrik.ErrPlayerNotFound) {
			log.Info("Player not found", "name", name, "tag", tag)
			s.metrics.IncPlayerNotFound()
			return nil, err
		}
		s.metrics.IncUpstreamErrors()
		return nil, fmt.Errorf("failed to fetch rank for %s#%s: %w", name, tag, err)
	}

	report := &Report{
		Name:       name,
		Tag:        tag,
		MMR:        mmr,
		Mode:       cfg.Mode,
		MaxMatches: cfg.MaxMatches,
	}
	if mmr.Name != "" && mmr.Tag != "" {
		report.Name, report.Tag = mmr.Name, mmr.Tag
	}

	if matchesErr != nil {
		log.Error("Failed to fetch match history", "error", matchesErr, "name", name, "tag", tag)
		s.metrics.IncUpstreamErrors()
	} else {
		target := stats.TargetIdentity{PlayerID: mmr.PUUID, Name: report.Name, Tag: report.Tag}
		result, err := s.engine.Summarize(matches, target)
		switch {
		case errors.Is(err, stats.ErrNoData):
			log.Info("No usable match data", "name", name, "tag", tag, "reason", err)
			s.metrics.IncNoData()
		case err != nil:
			return nil, err
		default:
			report.Stats = result
			log.Info("Report built", "name", name, "tag", tag, "matches", len(result.Matches), "skipped", len(result.Skipped))
		}
	}

	s.metrics.IncReportsBuilt()
	return report, nil
}
