package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/spyglass/internal/modules/riskmetrics"
)

func TestScoreRiskBondProfile(t *testing.T) {
	// Bond-like profile: 5% vol, -4% drawdown, Sharpe 0.8
	m := &riskmetrics.Metrics{
		Symbol:      "BND",
		Volatility:  fp(0.05),
		MaxDrawdown: fp(-0.04),
		SharpeRatio: fp(0.8),
	}
	r := ScoreRisk(m)

	assert.Equal(t, 2, r.ComponentScores["volatility"])
	assert.Equal(t, 2, r.ComponentScores["max_drawdown"])
	assert.Equal(t, 1, r.ComponentScores["sharpe"])
	assert.Equal(t, 5, r.Score)
	assert.Equal(t, Conservative, r.Level)
}

func TestScoreRiskAggressiveProfile(t *testing.T) {
	// Sector-fund stress: 32% vol, -45% drawdown, Sharpe -0.8
	m := &riskmetrics.Metrics{
		Symbol:      "XLE",
		Volatility:  fp(0.32),
		MaxDrawdown: fp(-0.45),
		SharpeRatio: fp(-0.8),
	}
	r := ScoreRisk(m)

	assert.Equal(t, -6, r.Score)
	assert.Equal(t, HighRisk, r.Level)
}

func TestScoreRiskUndefinedMetrics(t *testing.T) {
	m := &riskmetrics.Metrics{Symbol: "NEW"}
	r := ScoreRisk(m)

	assert.Equal(t, 0, r.Score)
	assert.Equal(t, Elevated, r.Level)
	assert.Equal(t, []string{
		"Volatility: insufficient data (0)",
		"Max Drawdown: insufficient data (0)",
		"Sharpe: insufficient data (0)",
	}, r.Reasons)
}

func TestVolatilityBrackets(t *testing.T) {
	tests := []struct {
		vol  float64 // fraction
		want int
	}{
		{0.05, 2},
		{0.079, 2},
		{0.08, 1},
		{0.13, 1},
		{0.14, 0},
		{0.19, 0},
		{0.20, -1},
		{0.27, -1},
		{0.28, -2},
		{0.40, -2},
	}
	for _, tt := range tests {
		score, _ := scoreVolatility(fp(tt.vol))
		assert.Equal(t, tt.want, score, "vol %.3f", tt.vol)
	}
}

func TestDrawdownBrackets(t *testing.T) {
	tests := []struct {
		dd   float64
		want int
	}{
		{-0.05, 2},
		{-0.099, 2},
		{-0.15, 1},
		{-0.25, 0},
		{-0.35, -1},
		{-0.45, -2},
	}
	for _, tt := range tests {
		score, _ := scoreDrawdown(fp(tt.dd))
		assert.Equal(t, tt.want, score, "dd %.3f", tt.dd)
	}
}

func TestSharpeBrackets(t *testing.T) {
	tests := []struct {
		sharpe float64
		want   int
	}{
		{2.0, 2},
		{1.6, 2},
		{1.0, 1},
		{0.3, 0},
		{-0.3, -1},
		{-1.0, -2},
	}
	for _, tt := range tests {
		score, _ := scoreSharpe(fp(tt.sharpe))
		assert.Equal(t, tt.want, score, "sharpe %.2f", tt.sharpe)
	}
}

func TestRiskLevelThresholds(t *testing.T) {
	tests := []struct {
		score int
		want  RiskLevel
	}{
		{6, Conservative},
		{4, Conservative},
		{3, Moderate},
		{1, Moderate},
		{0, Elevated},
		{-2, Elevated},
		{-3, HighRisk},
		{-6, HighRisk},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, riskLevel(tt.score), "score %d", tt.score)
	}
}
