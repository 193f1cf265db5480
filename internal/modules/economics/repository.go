// Package economics stores macroeconomic indicator series and derives the
// risk-free rate used by the fundamental and risk scorers.
package economics

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/spyglass/internal/database"
)

// FallbackRiskFreeRate is used when no 10-year Treasury observation has
// been collected yet.
const FallbackRiskFreeRate = 0.045

// Indicator identifies one tracked FRED series.
type Indicator struct {
	Code string
	Name string
	Unit string
}

// TrackedIndicators is the macro dashboard: rates, inflation, employment,
// volatility, and consumer sentiment.
var TrackedIndicators = []Indicator{
	{Code: "FEDFUNDS", Name: "Federal Funds Rate", Unit: "%"},
	{Code: "CPIAUCSL", Name: "Consumer Price Index", Unit: "index"},
	{Code: "UNRATE", Name: "Unemployment Rate", Unit: "%"},
	{Code: "VIXCLS", Name: "CBOE Volatility Index", Unit: "index"},
	{Code: "GS10", Name: "10-Year Treasury Yield", Unit: "%"},
	{Code: "GS2", Name: "2-Year Treasury Yield", Unit: "%"},
	{Code: "UMCSENT", Name: "Consumer Sentiment", Unit: "index"},
}

// Observation is one dated indicator value.
type Observation struct {
	Code  string
	Date  string // YYYY-MM-DD
	Value float64
}

// Repository provides access to the economic_indicators tables.
type Repository struct {
	db       *database.DB
	fallback float64
	log      zerolog.Logger
}

// NewRepository creates a new economics repository.
func NewRepository(db *database.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:       db,
		fallback: FallbackRiskFreeRate,
		log:      log.With().Str("component", "economics_repo").Logger(),
	}
}

// SetFallbackRate overrides the default risk-free fallback with the
// configured one. Non-positive values are ignored.
func (r *Repository) SetFallbackRate(rate float64) {
	if rate > 0 {
		r.fallback = rate
	}
}

// SeedMetadata upserts the tracked-indicator registry.
func (r *Repository) SeedMetadata() error {
	for _, ind := range TrackedIndicators {
		_, err := r.db.Conn().Exec(`
			INSERT INTO indicator_metadata (indicator_code, name, unit)
			VALUES (?, ?, ?)
			ON CONFLICT (indicator_code) DO UPDATE SET
				name = excluded.name,
				unit = excluded.unit`,
			ind.Code, ind.Name, ind.Unit)
		if err != nil {
			return fmt.Errorf("failed to seed indicator %s: %w", ind.Code, err)
		}
	}
	return nil
}

// TrackedCodes returns the registered indicator codes in order.
func (r *Repository) TrackedCodes() ([]Indicator, error) {
	rows, err := r.db.Conn().Query(
		`SELECT indicator_code, name, unit FROM indicator_metadata ORDER BY indicator_code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query indicator metadata: %w", err)
	}
	defer rows.Close()

	var out []Indicator
	for rows.Next() {
		var ind Indicator
		if err := rows.Scan(&ind.Code, &ind.Name, &ind.Unit); err != nil {
			return nil, fmt.Errorf("failed to scan indicator: %w", err)
		}
		out = append(out, ind)
	}
	return out, rows.Err()
}

// UpsertObservations stores a batch of observations for one indicator.
func (r *Repository) UpsertObservations(code string, obs []Observation) (int, error) {
	if len(obs) == 0 {
		return 0, nil
	}

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO economic_indicators (indicator_code, date, value)
		VALUES (?, ?, ?)
		ON CONFLICT (indicator_code, date) DO UPDATE SET value = excluded.value`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	written := 0
	for _, o := range obs {
		if _, err := stmt.Exec(code, o.Date, o.Value); err != nil {
			return written, fmt.Errorf("failed to upsert %s %s: %w", code, o.Date, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return written, fmt.Errorf("failed to commit upsert: %w", err)
	}
	return written, nil
}

// LatestValue returns the most recent observation for a code, or nil when
// none is stored.
func (r *Repository) LatestValue(code string) (*Observation, error) {
	row := r.db.Conn().QueryRow(`
		SELECT indicator_code, date, value FROM economic_indicators
		WHERE indicator_code = ?
		ORDER BY date DESC LIMIT 1`, code)

	var o Observation
	err := row.Scan(&o.Code, &o.Date, &o.Value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest %s: %w", code, err)
	}
	return &o, nil
}

// RiskFreeRate returns the latest 10-year Treasury yield as an annual
// fraction, falling back to the configured rate when the series has not
// been collected.
func (r *Repository) RiskFreeRate() float64 {
	obs, err := r.LatestValue("GS10")
	if err != nil || obs == nil {
		r.log.Debug().Msg("No GS10 observation, using fallback risk-free rate")
		return r.fallback
	}
	return obs.Value / 100
}

// Context returns the latest value of every tracked indicator, keyed by
// code. Indicators with no data yet are simply absent.
func (r *Repository) Context() (map[string]Observation, error) {
	indicators, err := r.TrackedCodes()
	if err != nil {
		return nil, err
	}

	out := make(map[string]Observation, len(indicators))
	for _, ind := range indicators {
		obs, err := r.LatestValue(ind.Code)
		if err != nil {
			return nil, err
		}
		if obs != nil {
			out[ind.Code] = *obs
		}
	}
	return out, nil
}
