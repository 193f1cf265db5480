// Package history stores and retrieves daily OHLCV price bars.
package history

import "errors"

// ErrNoData is returned when a symbol has zero stored observations.
// Callers surface an ERROR-signal result for the symbol instead of crashing
// a batch run.
var ErrNoData = errors.New("no price data found")

// PriceBar is one trading day for one symbol. Bars are unique per
// (symbol, date) and immutable once stored except for corrective upserts
// (e.g. a late dividend adjustment replaces the row in place).
type PriceBar struct {
	Symbol        string
	Date          string // YYYY-MM-DD
	Open          float64
	High          float64
	Low           float64
	Close         float64
	AdjustedClose float64
	Volume        int64
	DataSource    string
}
