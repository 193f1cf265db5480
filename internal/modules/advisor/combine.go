// Package advisor merges the three analysis families into one weighted
// signal per symbol, generates an LLM daily briefing, and persists the
// resulting recommendations.
package advisor

import (
	"math"

	"github.com/aristath/spyglass/internal/modules/scoring"
)

// Weights splits the combined score across the three families. They are
// fixed regardless of data availability; a family with no data contributes
// zero, never a renormalized share.
type Weights struct {
	Technical   float64
	Fundamental float64
	Risk        float64
}

// DefaultWeights: technical momentum 40%, valuation 30%, safety 30%.
func DefaultWeights() Weights {
	return Weights{Technical: 0.40, Fundamental: 0.30, Risk: 0.30}
}

// NormalizedScores are the per-family scores scaled to [-1,+1].
type NormalizedScores struct {
	Technical   float64
	Fundamental float64
	Risk        float64
}

// CombinedResult is the merged per-symbol record.
type CombinedResult struct {
	Symbol         string
	CombinedScore  float64 // [-1,+1]
	CombinedSignal scoring.Signal
	Technical      scoring.TechnicalResult
	Fundamental    scoring.FundamentalResult
	Risk           scoring.RiskResult
	Normalized     NormalizedScores
}

// Combine folds the three family results into one weighted score. An ERROR
// family carries score 0 and therefore contributes nothing.
func Combine(symbol string, tech scoring.TechnicalResult, fund scoring.FundamentalResult, risk scoring.RiskResult, w Weights) CombinedResult {
	norm := NormalizedScores{
		Technical:   round3(float64(tech.Score) / scoring.TechnicalMax),
		Fundamental: round3(float64(fund.Score) / scoring.FundamentalMax),
		Risk:        round3(float64(risk.Score) / scoring.RiskMax),
	}

	combined := round3(w.Technical*float64(tech.Score)/scoring.TechnicalMax +
		w.Fundamental*float64(fund.Score)/scoring.FundamentalMax +
		w.Risk*float64(risk.Score)/scoring.RiskMax)

	return CombinedResult{
		Symbol:         symbol,
		CombinedScore:  combined,
		CombinedSignal: combinedSignal(combined),
		Technical:      tech,
		Fundamental:    fund,
		Risk:           risk,
		Normalized:     norm,
	}
}

func combinedSignal(score float64) scoring.Signal {
	switch {
	case score >= 0.4:
		return scoring.StrongBuy
	case score >= 0.15:
		return scoring.Buy
	case score >= -0.15:
		return scoring.Neutral
	case score >= -0.4:
		return scoring.Sell
	default:
		return scoring.StrongSell
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
