// Package alphavantage fetches daily OHLCV series from the Alpha Vantage
// API. The free tier allows 5 calls per minute and returns unadjusted
// prices only, so close doubles as adjusted close.
package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/aristath/spyglass/internal/modules/history"
)

const defaultBaseURL = "https://www.alphavantage.co/query"

// Client is a rate-limited Alpha Vantage API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	log        zerolog.Logger
}

// NewClient creates an Alpha Vantage client honoring the free-tier limit
// of 5 calls per minute.
func NewClient(apiKey string, log zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Every(time.Minute/5), 1),
		log:        log.With().Str("component", "alphavantage").Logger(),
	}
}

// SetBaseURL overrides the API endpoint, used by tests.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

type dailyResponse struct {
	ErrorMessage string                       `json:"Error Message"`
	Note         string                       `json:"Note"`
	TimeSeries   map[string]map[string]string `json:"Time Series (Daily)"`
}

// DailyPrices fetches the daily series for one symbol in ascending date
// order. outputsize is "compact" (100 days) or "full" (20+ years).
func (c *Client) DailyPrices(ctx context.Context, symbol, outputsize string) ([]history.PriceBar, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter interrupted: %w", err)
	}

	params := url.Values{}
	params.Set("function", "TIME_SERIES_DAILY")
	params.Set("symbol", symbol)
	params.Set("outputsize", outputsize)
	params.Set("apikey", c.apiKey)

	c.log.Debug().Str("symbol", symbol).Str("outputsize", outputsize).Msg("Fetching daily prices")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, symbol)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response for %s: %w", symbol, err)
	}

	var parsed dailyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response for %s: %w", symbol, err)
	}

	if parsed.ErrorMessage != "" {
		return nil, fmt.Errorf("alpha vantage error for %s: %s", symbol, parsed.ErrorMessage)
	}
	if parsed.Note != "" {
		return nil, fmt.Errorf("alpha vantage throttled request for %s: %s", symbol, parsed.Note)
	}
	if len(parsed.TimeSeries) == 0 {
		return nil, fmt.Errorf("no daily data returned for %s", symbol)
	}

	bars := make([]history.PriceBar, 0, len(parsed.TimeSeries))
	for date, fields := range parsed.TimeSeries {
		bar, err := parseBar(symbol, date, fields)
		if err != nil {
			return nil, err
		}
		bars = append(bars, bar)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date < bars[j].Date })

	c.log.Info().Str("symbol", symbol).Int("days", len(bars)).Msg("Retrieved daily prices")
	return bars, nil
}

func parseBar(symbol, date string, fields map[string]string) (history.PriceBar, error) {
	get := func(key string) (float64, error) {
		v, err := strconv.ParseFloat(fields[key], 64)
		if err != nil {
			return 0, fmt.Errorf("bad %q for %s %s: %w", key, symbol, date, err)
		}
		return v, nil
	}

	open, err := get("1. open")
	if err != nil {
		return history.PriceBar{}, err
	}
	high, err := get("2. high")
	if err != nil {
		return history.PriceBar{}, err
	}
	low, err := get("3. low")
	if err != nil {
		return history.PriceBar{}, err
	}
	closePx, err := get("4. close")
	if err != nil {
		return history.PriceBar{}, err
	}
	volume, err := strconv.ParseInt(fields["5. volume"], 10, 64)
	if err != nil {
		return history.PriceBar{}, fmt.Errorf("bad volume for %s %s: %w", symbol, date, err)
	}

	return history.PriceBar{
		Symbol:        symbol,
		Date:          date,
		Open:          open,
		High:          high,
		Low:           low,
		Close:         closePx,
		AdjustedClose: closePx, // free tier has no adjusted series
		Volume:        volume,
		DataSource:    "alphavantage",
	}, nil
}
