package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/mauv0809/valorant-report/internal/command"
	"github.com/mauv0809/valorant-report/internal/config"
	"github.com/mauv0809/valorant-report/internal/henrik"
	"github.com/mauv0809/valorant-report/internal/locale"
	"github.com/mauv0809/valorant-report/internal/metrics"
	"github.com/mauv0809/valorant-report/internal/report"
	"github.com/mauv0809/valorant-report/internal/stats"
	"github.com/spf13/cobra"
)

var (
	direct     bool
	jsonOutput bool
	lang       string
)

func init() {
	statsCmd.Flags().BoolVar(&direct, "direct", false, "Query the HenrikDev API directly instead of the server (reads HENRIK_API_KEY)")
	statsCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the raw report as JSON")
	statsCmd.Flags().StringVar(&lang, "lang", "", "Language for rank names (en or ja)")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(statsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats name#tag",
	Short: "Show recent competitive stats for a player",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Names may contain spaces, so the arguments are rejoined.
		id, err := command.ParseRiotID(joinArgs(args))
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		var r *report.Report
		if direct {
			r, err = buildDirect(ctx, id)
		} else {
			r, err = fetchReport(ctx, id)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(r)
		}
		renderReport(out, locale.For(lang), r)
		return nil
	},
}

func joinArgs(args []string) string {
	s := args[0]
	for _, a := range args[1:] {
		s += " " + a
	}
	return s
}

// buildDirect builds the report in-process from environment configuration.
func buildDirect(ctx context.Context, id command.RiotID) (*report.Report, error) {
	cfg := config.FromEnv(os.LookupEnv)
	if cfg.Henrik.APIKey == "" {
		return nil, errors.New("HENRIK_API_KEY is not set")
	}
	if lang == "" {
		lang = cfg.Locale
	}
	client := henrik.NewClient(cfg.Henrik.APIKey, cfg.Henrik.Region, cfg.Henrik.BaseURL)
	service := report.New(client, stats.NewEngine(cfg.Stats), metrics.NewMock())
	return service.Build(ctx, id.Name, id.Tag)
}

// fetchReport asks a running server for the report.
func fetchReport(ctx context.Context, id command.RiotID) (*report.Report, error) {
	endpoint := host + "/api/stats?player=" + url.QueryEscape(id.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, henrik.ErrPlayerNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var r report.Report
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &r, nil
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
