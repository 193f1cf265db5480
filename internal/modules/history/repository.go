package history

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/spyglass/internal/database"
)

// Repository provides access to the daily_prices table.
type Repository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewRepository creates a new price-history repository.
func NewRepository(db *database.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("component", "history_repo").Logger(),
	}
}

// UpsertBars stores a batch of bars, replacing any existing row for the same
// (symbol, date). Returns the number of rows written.
func (r *Repository) UpsertBars(bars []PriceBar) (int, error) {
	if len(bars) == 0 {
		return 0, nil
	}

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO daily_prices
			(symbol, date, open, high, low, close, adjusted_close, volume, data_source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (symbol, date) DO UPDATE SET
			open           = excluded.open,
			high           = excluded.high,
			low            = excluded.low,
			close          = excluded.close,
			adjusted_close = excluded.adjusted_close,
			volume         = excluded.volume,
			data_source    = excluded.data_source`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	written := 0
	for _, b := range bars {
		if _, err := stmt.Exec(
			b.Symbol, b.Date, b.Open, b.High, b.Low, b.Close,
			b.AdjustedClose, b.Volume, b.DataSource,
		); err != nil {
			return written, fmt.Errorf("failed to upsert bar %s %s: %w", b.Symbol, b.Date, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return written, fmt.Errorf("failed to commit upsert: %w", err)
	}
	return written, nil
}

// GetDailySeries returns the most recent lookbackDays bars for a symbol in
// ascending date order. Missing trading days are tolerated; dates are
// strictly increasing by construction of the primary key. Returns ErrNoData
// when the symbol has zero stored rows.
func (r *Repository) GetDailySeries(symbol string, lookbackDays int) ([]PriceBar, error) {
	rows, err := r.db.Conn().Query(`
		SELECT symbol, date, open, high, low, close, adjusted_close, volume, data_source
		FROM daily_prices
		WHERE symbol = ?
		ORDER BY date DESC
		LIMIT ?`, symbol, lookbackDays)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily series for %s: %w", symbol, err)
	}
	defer rows.Close()

	var bars []PriceBar
	for rows.Next() {
		var b PriceBar
		if err := rows.Scan(
			&b.Symbol, &b.Date, &b.Open, &b.High, &b.Low, &b.Close,
			&b.AdjustedClose, &b.Volume, &b.DataSource,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bar for %s: %w", symbol, err)
		}
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bars for %s: %w", symbol, err)
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoData, symbol)
	}

	// Query returns newest-first; analysis wants ascending dates
	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}
	return bars, nil
}

// LatestDate returns the most recent stored date for a symbol, or empty
// string when no rows exist.
func (r *Repository) LatestDate(symbol string) (string, error) {
	var date string
	err := r.db.Conn().QueryRow(
		`SELECT COALESCE(MAX(date), '') FROM daily_prices WHERE symbol = ?`, symbol,
	).Scan(&date)
	if err != nil {
		return "", fmt.Errorf("failed to query latest date for %s: %w", symbol, err)
	}
	return date, nil
}
