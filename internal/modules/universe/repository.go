// Package universe manages the fixed set of tracked securities.
package universe

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/spyglass/internal/database"
)

// Security is one tracked ETF.
type Security struct {
	Symbol   string
	Name     string
	ETFType  string // bond, growth, blend, sector, dividend, international
	Exchange *string
	Sector   *string
	Website  *string
	IsActive bool
}

// Repository provides access to the securities table.
type Repository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewRepository creates a new securities repository.
func NewRepository(db *database.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("component", "universe_repo").Logger(),
	}
}

// TrackedSymbols returns the active symbols in alphabetical order.
func (r *Repository) TrackedSymbols() ([]string, error) {
	rows, err := r.db.Conn().Query(
		`SELECT symbol FROM securities WHERE is_active = 1 ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracked symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		symbols = append(symbols, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating symbols: %w", err)
	}
	return symbols, nil
}

// Get returns one security, or nil when the symbol is not tracked.
func (r *Repository) Get(symbol string) (*Security, error) {
	row := r.db.Conn().QueryRow(
		`SELECT symbol, name, etf_type, exchange, sector, website, is_active
		 FROM securities WHERE symbol = ?`, symbol)

	var s Security
	var active int
	err := row.Scan(&s.Symbol, &s.Name, &s.ETFType, &s.Exchange, &s.Sector, &s.Website, &active)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan security %s: %w", symbol, err)
	}
	s.IsActive = active != 0
	return &s, nil
}

// Upsert inserts a security or updates its metadata in place.
func (r *Repository) Upsert(s Security) error {
	active := 0
	if s.IsActive {
		active = 1
	}

	_, err := r.db.Conn().Exec(`
		INSERT INTO securities (symbol, name, etf_type, exchange, sector, website, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (symbol) DO UPDATE SET
			name       = excluded.name,
			etf_type   = excluded.etf_type,
			exchange   = COALESCE(excluded.exchange, securities.exchange),
			sector     = COALESCE(excluded.sector, securities.sector),
			website    = COALESCE(excluded.website, securities.website),
			is_active  = excluded.is_active,
			updated_at = datetime('now')`,
		s.Symbol, s.Name, s.ETFType, s.Exchange, s.Sector, s.Website, active)
	if err != nil {
		return fmt.Errorf("failed to upsert security %s: %w", s.Symbol, err)
	}
	return nil
}

// UpdateProfile applies metadata from an external company profile.
func (r *Repository) UpdateProfile(symbol, name, exchange, sector, website string) error {
	_, err := r.db.Conn().Exec(`
		UPDATE securities SET
			name       = CASE WHEN ? != '' THEN ? ELSE name END,
			exchange   = COALESCE(NULLIF(?, ''), exchange),
			sector     = COALESCE(NULLIF(?, ''), sector),
			website    = COALESCE(NULLIF(?, ''), website),
			updated_at = datetime('now')
		WHERE symbol = ?`,
		name, name, exchange, sector, website, symbol)
	if err != nil {
		return fmt.Errorf("failed to update profile for %s: %w", symbol, err)
	}
	return nil
}
