// Package analysis runs the three scoring families over stored data. Each
// analyst fetches what it needs, scores one symbol at a time, and degrades
// a symbol with unusable data to an ERROR result so a batch run always
// completes.
package analysis

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/aristath/spyglass/internal/modules/history"
	"github.com/aristath/spyglass/internal/modules/indicators"
	"github.com/aristath/spyglass/internal/modules/scoring"
	"github.com/aristath/spyglass/internal/modules/universe"
)

// TechnicalAnalyst scores symbols on their technical indicators.
type TechnicalAnalyst struct {
	history   *history.Repository
	universe  *universe.Repository
	indicator indicators.Config
	log       zerolog.Logger
}

// NewTechnicalAnalyst creates a technical analyst with the standard
// indicator settings.
func NewTechnicalAnalyst(hist *history.Repository, univ *universe.Repository, log zerolog.Logger) *TechnicalAnalyst {
	return &TechnicalAnalyst{
		history:   hist,
		universe:  univ,
		indicator: indicators.DefaultConfig(),
		log:       log.With().Str("component", "technical_analyst").Logger(),
	}
}

// Analyze scores one symbol over the given lookback. A symbol with no
// stored data yields an ERROR result rather than failing the run.
func (a *TechnicalAnalyst) Analyze(symbol string, days int) scoring.TechnicalResult {
	bars, err := a.history.GetDailySeries(symbol, days)
	if err != nil {
		a.log.Error().Err(err).Str("symbol", symbol).Msg("Technical analysis failed")
		return scoring.TechnicalResult{
			Symbol:  symbol,
			Signal:  scoring.SignalError,
			Reasons: []string{err.Error()},
		}
	}

	frame, err := indicators.Build(bars, a.indicator)
	if err != nil {
		a.log.Error().Err(err).Str("symbol", symbol).Msg("Indicator computation failed")
		return scoring.TechnicalResult{
			Symbol:  symbol,
			Signal:  scoring.SignalError,
			Reasons: []string{err.Error()},
		}
	}

	return scoring.ScoreTechnical(frame.Latest())
}

// AnalyzeAll scores every tracked symbol, best score first.
func (a *TechnicalAnalyst) AnalyzeAll(days int) ([]scoring.TechnicalResult, error) {
	symbols, err := a.universe.TrackedSymbols()
	if err != nil {
		return nil, err
	}

	results := make([]scoring.TechnicalResult, 0, len(symbols))
	for _, symbol := range symbols {
		a.log.Info().Str("symbol", symbol).Msg("Analyzing")
		results = append(results, a.Analyze(symbol, days))
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results, nil
}
