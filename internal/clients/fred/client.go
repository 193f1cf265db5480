// Package fred fetches economic time series from the Federal Reserve
// Economic Data (FRED) API.
package fred

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.stlouisfed.org/fred"

// Client is a rate-limited FRED API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	log        zerolog.Logger
}

// NewClient creates a FRED client. The documented limit is 120 calls per
// minute, far above what a daily collection run needs.
func NewClient(apiKey string, log zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Every(time.Minute/120), 1),
		log:        log.With().Str("component", "fred").Logger(),
	}
}

// SetBaseURL overrides the API endpoint, used by tests.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// Observation is one dated value of a series.
type Observation struct {
	Date  string
	Value float64
}

type observationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// GetSeries fetches observations for a series, optionally bounded by
// observationStart (YYYY-MM-DD, empty for no bound). Missing values, which
// FRED marks with ".", are dropped.
func (c *Client) GetSeries(ctx context.Context, seriesID, observationStart string) ([]Observation, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter interrupted: %w", err)
	}

	params := url.Values{}
	params.Set("series_id", seriesID)
	params.Set("api_key", c.apiKey)
	params.Set("file_type", "json")
	if observationStart != "" {
		params.Set("observation_start", observationStart)
	}

	c.log.Debug().Str("series", seriesID).Msg("Fetching FRED series")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/series/observations?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed for %s: %w", seriesID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, seriesID)
	}

	var parsed observationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response for %s: %w", seriesID, err)
	}
	if len(parsed.Observations) == 0 {
		return nil, fmt.Errorf("no observations for %s", seriesID)
	}

	obs := make([]Observation, 0, len(parsed.Observations))
	for _, o := range parsed.Observations {
		if o.Value == "." {
			continue
		}
		v, err := strconv.ParseFloat(o.Value, 64)
		if err != nil {
			continue
		}
		obs = append(obs, Observation{Date: o.Date, Value: v})
	}

	c.log.Info().Str("series", seriesID).Int("observations", len(obs)).Msg("Retrieved FRED series")
	return obs, nil
}
