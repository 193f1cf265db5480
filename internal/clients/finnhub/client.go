// Package finnhub fetches quotes, company profiles, and fund performance
// metrics from the Finnhub API. The free tier allows 60 calls per minute.
package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://finnhub.io/api/v1"

// Client is a rate-limited Finnhub API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	log        zerolog.Logger
}

// NewClient creates a Finnhub client honoring the free-tier limit of
// 60 calls per minute.
func NewClient(apiKey string, log zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Every(time.Minute/60), 1),
		log:        log.With().Str("component", "finnhub").Logger(),
	}
}

// SetBaseURL overrides the API endpoint, used by tests.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// Quote is a real-time price snapshot.
type Quote struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	PercentChange float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PreviousClose float64 `json:"pc"`
	Timestamp     int64   `json:"t"`
}

// Profile is company/fund metadata from the profile2 endpoint.
type Profile struct {
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Industry string `json:"finnhubIndustry"`
	WebURL   string `json:"weburl"`
	Ticker   string `json:"ticker"`
}

// Performance carries the price-performance figures that Finnhub does
// return for ETFs (unlike P/E, which it does not). Nil = absent.
type Performance struct {
	Week52Return *float64
	Week52High   *float64
	Week52Low    *float64
	Week13Return *float64
	YTDReturn    *float64
	Beta         *float64
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter interrupted: %w", err)
	}

	params.Set("token", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// GetQuote fetches the real-time quote for a symbol. A zero current price
// means Finnhub has no data for the symbol.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*Quote, error) {
	c.log.Debug().Str("symbol", symbol).Msg("Fetching quote")

	var q Quote
	params := url.Values{}
	params.Set("symbol", symbol)
	if err := c.get(ctx, "/quote", params, &q); err != nil {
		return nil, fmt.Errorf("quote for %s: %w", symbol, err)
	}
	if q.Current == 0 {
		return nil, fmt.Errorf("no quote data for %s", symbol)
	}
	return &q, nil
}

// GetProfile fetches fund/company metadata. Returns nil without error when
// Finnhub has no profile for the symbol.
func (c *Client) GetProfile(ctx context.Context, symbol string) (*Profile, error) {
	c.log.Debug().Str("symbol", symbol).Msg("Fetching profile")

	var p Profile
	params := url.Values{}
	params.Set("symbol", symbol)
	if err := c.get(ctx, "/stock/profile2", params, &p); err != nil {
		return nil, fmt.Errorf("profile for %s: %w", symbol, err)
	}
	if p.Name == "" && p.Ticker == "" {
		return nil, nil
	}
	return &p, nil
}

// The metric map mixes numbers with strings (date keys like
// "52WeekHighDate"), so it is decoded loosely and only the numeric keys
// are extracted.
type metricResponse struct {
	Metric map[string]any `json:"metric"`
}

func (mr metricResponse) number(key string) *float64 {
	v, ok := mr.Metric[key].(float64)
	if !ok {
		return nil
	}
	return &v
}

// GetPerformance fetches 52-week and shorter-horizon performance metrics.
// Returns nil without error when no metrics are available.
func (c *Client) GetPerformance(ctx context.Context, symbol string) (*Performance, error) {
	c.log.Debug().Str("symbol", symbol).Msg("Fetching performance metrics")

	var mr metricResponse
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("metric", "all")
	if err := c.get(ctx, "/stock/metric", params, &mr); err != nil {
		return nil, fmt.Errorf("performance metrics for %s: %w", symbol, err)
	}
	if len(mr.Metric) == 0 {
		return nil, nil
	}

	return &Performance{
		Week52Return: mr.number("52WeekPriceReturnDaily"),
		Week52High:   mr.number("52WeekHigh"),
		Week52Low:    mr.number("52WeekLow"),
		Week13Return: mr.number("13WeekPriceReturnDaily"),
		YTDReturn:    mr.number("yearToDatePriceReturnDaily"),
		Beta:         mr.number("beta"),
	}, nil
}
