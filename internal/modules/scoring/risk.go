package scoring

import (
	"fmt"

	"github.com/aristath/spyglass/internal/modules/riskmetrics"
)

// RiskResult is the scored risk assessment for one symbol. Higher score
// means lower risk.
type RiskResult struct {
	Symbol          string
	Level           RiskLevel
	Score           int
	ComponentScores map[string]int
	Reasons         []string
	Metrics         *riskmetrics.Metrics
}

// ScoreRisk maps a risk profile to a [-6,+6] score: volatility, maximum
// drawdown, and Sharpe ratio worth [-2,+2] each. Undefined metrics
// contribute 0 with an "insufficient data" reason.
func ScoreRisk(m *riskmetrics.Metrics) RiskResult {
	volScore, volReasons := scoreVolatility(m.Volatility)
	ddScore, ddReasons := scoreDrawdown(m.MaxDrawdown)
	shScore, shReasons := scoreSharpe(m.SharpeRatio)

	total := volScore + ddScore + shScore

	reasons := make([]string, 0, 3)
	reasons = append(reasons, volReasons...)
	reasons = append(reasons, ddReasons...)
	reasons = append(reasons, shReasons...)

	return RiskResult{
		Symbol: m.Symbol,
		Level:  riskLevel(total),
		Score:  total,
		ComponentScores: map[string]int{
			"volatility":   volScore,
			"max_drawdown": ddScore,
			"sharpe":       shScore,
		},
		Reasons: reasons,
		Metrics: m,
	}
}

// scoreVolatility: lower volatility scores higher. Reference points: US bond
// ETFs run ~4-8% annualized, broad equity ~12-18%, sector/growth 20-30%+.
func scoreVolatility(vol *float64) (int, []string) {
	if vol == nil {
		return 0, []string{"Volatility: insufficient data (0)"}
	}

	pct := *vol * 100
	var score int
	var label string
	switch {
	case pct < 8:
		score, label = 2, "very low (bonds/defensive)"
	case pct < 14:
		score, label = 1, "low-moderate"
	case pct < 20:
		score, label = 0, "market-average"
	case pct < 28:
		score, label = -1, "elevated"
	default:
		score, label = -2, "high"
	}

	return score, []string{fmt.Sprintf("Volatility: %.1f%% annualised — %s %+d", pct, label, score)}
}

// scoreDrawdown: a smaller peak-to-trough loss scores higher. maxDD is a
// non-positive fraction (-0.35 = -35%).
func scoreDrawdown(maxDD *float64) (int, []string) {
	if maxDD == nil {
		return 0, []string{"Max Drawdown: insufficient data (0)"}
	}

	pct := *maxDD * 100
	var score int
	var label string
	switch {
	case pct > -10:
		score, label = 2, "minimal drawdown"
	case pct > -20:
		score, label = 1, "moderate drawdown"
	case pct > -30:
		score, label = 0, "significant drawdown"
	case pct > -40:
		score, label = -1, "large drawdown"
	default:
		score, label = -2, "severe drawdown"
	}

	return score, []string{fmt.Sprintf("Max Drawdown: %.1f%% — %s %+d", pct, label, score)}
}

func scoreSharpe(sharpe *float64) (int, []string) {
	if sharpe == nil {
		return 0, []string{"Sharpe: insufficient data (0)"}
	}

	s := *sharpe
	var score int
	var label string
	switch {
	case s > 1.5:
		score, label = 2, "excellent risk-adjusted return"
	case s > 0.5:
		score, label = 1, "good risk-adjusted return"
	case s > 0.0:
		score, label = 0, "modest risk-adjusted return"
	case s > -0.5:
		score, label = -1, "below risk-free return"
	default:
		score, label = -2, "poor risk-adjusted return"
	}

	return score, []string{fmt.Sprintf("Sharpe Ratio: %.2f — %s %+d", s, label, score)}
}
