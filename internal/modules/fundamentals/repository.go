package fundamentals

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/spyglass/internal/database"
)

// Repository persists fundamental snapshots to the financial_metrics table,
// one row per (symbol, date).
type Repository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewRepository creates a new financial-metrics repository.
func NewRepository(db *database.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("component", "fundamentals_repo").Logger(),
	}
}

// StoreMetrics upserts today's fundamental snapshot for a symbol.
func (r *Repository) StoreMetrics(m *Metrics) error {
	_, err := r.db.Conn().Exec(`
		INSERT INTO financial_metrics (symbol, date, pe_ratio, dividend_yield, expense_ratio)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (symbol, date) DO UPDATE SET
			pe_ratio       = excluded.pe_ratio,
			dividend_yield = excluded.dividend_yield,
			expense_ratio  = excluded.expense_ratio`,
		m.Symbol, m.Date, m.PERatio, m.DividendYield, m.ExpenseRatio)
	if err != nil {
		return fmt.Errorf("failed to store metrics for %s: %w", m.Symbol, err)
	}
	return nil
}

// Latest returns the most recent stored snapshot for a symbol, or nil when
// none exists. ETF type comes from the baseline table, not the row.
func (r *Repository) Latest(symbol string) (*Metrics, error) {
	row := r.db.Conn().QueryRow(`
		SELECT symbol, date, pe_ratio, dividend_yield, expense_ratio
		FROM financial_metrics
		WHERE symbol = ?
		ORDER BY date DESC LIMIT 1`, symbol)

	var m Metrics
	err := row.Scan(&m.Symbol, &m.Date, &m.PERatio, &m.DividendYield, &m.ExpenseRatio)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query metrics for %s: %w", symbol, err)
	}

	if b, ok := Baselines[symbol]; ok {
		m.ETFType = b.Type
	}
	m.Source = "stored"
	return &m, nil
}
