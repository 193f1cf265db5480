package analysis

import (
	"errors"
	"sort"

	"github.com/rs/zerolog"

	"github.com/aristath/spyglass/internal/modules/economics"
	"github.com/aristath/spyglass/internal/modules/history"
	"github.com/aristath/spyglass/internal/modules/riskmetrics"
	"github.com/aristath/spyglass/internal/modules/scoring"
	"github.com/aristath/spyglass/internal/modules/universe"
)

// RiskAnalyst scores symbols on volatility, drawdown, and risk-adjusted
// return. Higher score = safer.
type RiskAnalyst struct {
	history   *history.Repository
	economics *economics.Repository
	universe  *universe.Repository
	benchmark string
	log       zerolog.Logger
}

// NewRiskAnalyst creates a risk analyst computing beta against the given
// benchmark symbol.
func NewRiskAnalyst(hist *history.Repository, econ *economics.Repository, univ *universe.Repository, benchmark string, log zerolog.Logger) *RiskAnalyst {
	return &RiskAnalyst{
		history:   hist,
		economics: econ,
		universe:  univ,
		benchmark: benchmark,
		log:       log.With().Str("component", "risk_analyst").Logger(),
	}
}

// Analyze scores one symbol over the given lookback. A missing benchmark
// series only leaves beta undefined; missing symbol data yields an ERROR
// result.
func (a *RiskAnalyst) Analyze(symbol string, days int, riskFree float64) scoring.RiskResult {
	bars, err := a.history.GetDailySeries(symbol, days)
	if err != nil {
		a.log.Error().Err(err).Str("symbol", symbol).Msg("Risk analysis failed")
		return scoring.RiskResult{
			Symbol:  symbol,
			Level:   scoring.LevelError,
			Reasons: []string{err.Error()},
		}
	}

	var benchBars []history.PriceBar
	if symbol != a.benchmark {
		benchBars, err = a.history.GetDailySeries(a.benchmark, days)
		if err != nil && !errors.Is(err, history.ErrNoData) {
			a.log.Warn().Err(err).Str("benchmark", a.benchmark).Msg("Benchmark series unavailable, beta undefined")
		}
	} else {
		benchBars = bars
	}

	metrics := riskmetrics.Compute(symbol, bars, benchBars, a.benchmark, riskFree)
	return scoring.ScoreRisk(metrics)
}

// AnalyzeAll scores every tracked symbol, safest first.
func (a *RiskAnalyst) AnalyzeAll(days int) ([]scoring.RiskResult, error) {
	symbols, err := a.universe.TrackedSymbols()
	if err != nil {
		return nil, err
	}

	riskFree := a.economics.RiskFreeRate()
	results := make([]scoring.RiskResult, 0, len(symbols))
	for _, symbol := range symbols {
		a.log.Info().Str("symbol", symbol).Msg("Risk analysis")
		results = append(results, a.Analyze(symbol, days, riskFree))
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results, nil
}

// CorrelationMatrix computes pairwise return correlations for the given
// symbols (or the whole universe when symbols is empty).
func (a *RiskAnalyst) CorrelationMatrix(symbols []string, days int) (riskmetrics.Matrix, error) {
	if len(symbols) == 0 {
		var err error
		symbols, err = a.universe.TrackedSymbols()
		if err != nil {
			return riskmetrics.Matrix{}, err
		}
	}

	series := make(map[string][]history.PriceBar, len(symbols))
	for _, symbol := range symbols {
		bars, err := a.history.GetDailySeries(symbol, days)
		if err != nil {
			if errors.Is(err, history.ErrNoData) {
				a.log.Warn().Str("symbol", symbol).Msg("No data for correlation, skipping")
				continue
			}
			return riskmetrics.Matrix{}, err
		}
		series[symbol] = bars
	}

	return riskmetrics.CorrelationMatrix(series), nil
}
