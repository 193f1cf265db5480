package fundamentals

// Metrics is the assembled fundamental picture for one ETF. Pointer fields
// are nil when the figure is unavailable (bond-fund P/E, missing live data).
type Metrics struct {
	Symbol        string
	ETFType       ETFType
	PERatio       *float64
	DividendYield *float64 // percent
	ExpenseRatio  *float64 // percent
	Source        string   // "baseline" or "baseline+finnhub"
	Date          string   // YYYY-MM-DD

	Week52Return *float64
	Week52High   *float64
	Week52Low    *float64
	YTDReturn    *float64
	Beta         *float64
}
