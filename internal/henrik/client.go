package henrik

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/valorant-report/internal/stats"
)

// DefaultBaseURL is the public HenrikDev API host.
const DefaultBaseURL = "https://api.henrikdev.xyz"

// APIClient is a HenrikDev API client that implements the StatsClient interface.
type APIClient struct {
	httpClient *http.Client
	apiKey     string
	region     string
	BaseURL    string
}

// NewClient creates a new HenrikDev client for one region (e.g. "ap", "eu").
func NewClient(apiKey, region, baseURL string) StatsClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		region:     region,
		BaseURL:    baseURL,
	}
}

// Ensure APIClient implements the StatsClient interface.
var _ StatsClient = (*APIClient)(nil)

// GetMMR fetches the current and highest rank of a player.
func (c *APIClient) GetMMR(ctx context.Context, name, tag string) (MMR, error) {
	var response mmrResponse
	if err := c.get(ctx, c.playerPath("/valorant/v2/mmr", name, tag), nil, &response); err != nil {
		return MMR{}, err
	}
	if response.Data == nil {
		log.Warn("MMR response carried no data", "name", name, "tag", tag, "status", response.Status)
		return MMR{}, ErrPlayerNotFound
	}
	mmr := response.Data.toMMR()
	log.Debug("Fetched MMR", "name", name, "tag", tag, "tier", mmr.CurrentTier)
	return mmr, nil
}

// GetMatches fetches the recent match history of a player, most recent first.
// A nil slice with a nil error means the API returned no history.
func (c *APIClient) GetMatches(ctx context.Context, name, tag, mode string) ([]stats.MatchRecord, error) {
	query := url.Values{}
	if mode != "" {
		query.Set("filter", mode)
	}

	var response matchesResponse
	if err := c.get(ctx, c.playerPath("/valorant/v3/matches", name, tag), query, &response); err != nil {
		return nil, err
	}
	if response.Data == nil {
		log.Info("Match history response carried no data", "name", name, "tag", tag)
		return nil, nil
	}

	records := make([]stats.MatchRecord, 0, len(response.Data))
	for _, m := range response.Data {
		records = append(records, m.toRecord())
	}
	log.Info("Successfully fetched matches", "name", name, "tag", tag, "count", len(records))
	return records, nil
}

func (c *APIClient) playerPath(prefix, name, tag string) string {
	return fmt.Sprintf("%s/%s/%s/%s", prefix, url.PathEscape(c.region), url.PathEscape(name), url.PathEscape(tag))
}

// get performs an authenticated GET and decodes the JSON body into out.
func (c *APIClient) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	log.Debug("Requesting HenrikDev API", "url", endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrPlayerNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from HenrikDev API", "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
