package database

import "fmt"

// schema defines the relational store: the tracked-security universe, daily
// OHLCV bars, macroeconomic observations, fundamental snapshots, and the
// advisor's persisted recommendations.
const schema = `
CREATE TABLE IF NOT EXISTS securities (
	symbol      TEXT PRIMARY KEY,
	name        TEXT NOT NULL DEFAULT '',
	etf_type    TEXT NOT NULL DEFAULT 'blend',
	exchange    TEXT,
	sector      TEXT,
	website     TEXT,
	is_active   INTEGER NOT NULL DEFAULT 1,
	created_at  TEXT NOT NULL DEFAULT (datetime('now')),
	updated_at  TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS daily_prices (
	symbol          TEXT NOT NULL,
	date            TEXT NOT NULL,
	open            REAL NOT NULL,
	high            REAL NOT NULL,
	low             REAL NOT NULL,
	close           REAL NOT NULL,
	adjusted_close  REAL NOT NULL,
	volume          INTEGER NOT NULL,
	data_source     TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (symbol, date)
);

CREATE INDEX IF NOT EXISTS idx_daily_prices_date ON daily_prices(date);

CREATE TABLE IF NOT EXISTS economic_indicators (
	indicator_code  TEXT NOT NULL,
	date            TEXT NOT NULL,
	value           REAL NOT NULL,
	PRIMARY KEY (indicator_code, date)
);

CREATE TABLE IF NOT EXISTS indicator_metadata (
	indicator_code  TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	unit            TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS financial_metrics (
	symbol          TEXT NOT NULL,
	date            TEXT NOT NULL,
	pe_ratio        REAL,
	dividend_yield  REAL,
	expense_ratio   REAL,
	created_at      TEXT NOT NULL DEFAULT (datetime('now')),
	PRIMARY KEY (symbol, date)
);

CREATE TABLE IF NOT EXISTS agent_recommendations (
	id                  TEXT PRIMARY KEY,
	run_id              TEXT NOT NULL,
	agent_name          TEXT NOT NULL,
	symbol              TEXT,
	recommendation_type TEXT NOT NULL,
	confidence_score    REAL NOT NULL,
	reasoning           TEXT NOT NULL,
	supporting_data     TEXT NOT NULL DEFAULT '{}',
	created_at          TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_recommendations_symbol ON agent_recommendations(symbol, created_at);
`

// InitSchema creates all tables and indexes if they do not already exist.
func (d *DB) InitSchema() error {
	if _, err := d.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}
