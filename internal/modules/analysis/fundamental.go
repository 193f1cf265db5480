package analysis

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/aristath/spyglass/internal/modules/economics"
	"github.com/aristath/spyglass/internal/modules/fundamentals"
	"github.com/aristath/spyglass/internal/modules/scoring"
	"github.com/aristath/spyglass/internal/modules/universe"
)

// FundamentalAnalyst scores ETFs on valuation, yield, and cost.
type FundamentalAnalyst struct {
	fundamentals *fundamentals.Service
	economics    *economics.Repository
	universe     *universe.Repository
	log          zerolog.Logger
}

// NewFundamentalAnalyst creates a fundamental analyst.
func NewFundamentalAnalyst(fund *fundamentals.Service, econ *economics.Repository, univ *universe.Repository, log zerolog.Logger) *FundamentalAnalyst {
	return &FundamentalAnalyst{
		fundamentals: fund,
		economics:    econ,
		universe:     univ,
		log:          log.With().Str("component", "fundamental_analyst").Logger(),
	}
}

// Analyze scores one symbol. refresh additionally pulls live Finnhub
// performance data. Unknown symbols yield an ERROR result.
func (a *FundamentalAnalyst) Analyze(ctx context.Context, symbol string, refresh bool) scoring.FundamentalResult {
	metrics, err := a.fundamentals.GetMetrics(ctx, symbol, refresh)
	if err != nil {
		a.log.Error().Err(err).Str("symbol", symbol).Msg("Could not retrieve fundamental metrics")
		return scoring.FundamentalResult{
			Symbol:  symbol,
			Signal:  scoring.SignalError,
			Reasons: []string{"Could not retrieve fundamental data"},
		}
	}

	return scoring.ScoreFundamental(metrics, a.economics.RiskFreeRate())
}

// AnalyzeAll scores every tracked symbol, best score first.
func (a *FundamentalAnalyst) AnalyzeAll(ctx context.Context, refresh bool) ([]scoring.FundamentalResult, error) {
	symbols, err := a.universe.TrackedSymbols()
	if err != nil {
		return nil, err
	}

	results := make([]scoring.FundamentalResult, 0, len(symbols))
	for _, symbol := range symbols {
		a.log.Info().Str("symbol", symbol).Msg("Fundamental analysis")
		results = append(results, a.Analyze(ctx, symbol, refresh))
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results, nil
}
