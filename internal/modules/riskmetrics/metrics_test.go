package riskmetrics

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/spyglass/internal/modules/history"
)

func barsFromCloses(symbol string, closes []float64) []history.PriceBar {
	bars := make([]history.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = history.PriceBar{
			Symbol: symbol,
			Date:   fmt.Sprintf("2024-%02d-%02d", i/28+1, i%28+1),
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func steadyGrowth(n int, start, dailyRet float64) []float64 {
	out := make([]float64, n)
	v := start
	for i := range out {
		out[i] = v
		v *= 1 + dailyRet
	}
	return out
}

func TestComputeEmptySeries(t *testing.T) {
	m := Compute("VTI", nil, nil, "SPY", 0.045)
	assert.Equal(t, 0, m.Observations)
	assert.Nil(t, m.AnnualReturn)
	assert.Nil(t, m.Volatility)
	assert.Nil(t, m.Beta)
	assert.Nil(t, m.SharpeRatio)
	assert.Nil(t, m.MaxDrawdown)
	assert.Nil(t, m.VaR95)
}

func TestShortSeriesUndefinedNotZero(t *testing.T) {
	bars := barsFromCloses("VTI", []float64{100, 101, 102, 103, 104})
	m := Compute("VTI", bars, bars, "SPY", 0.045)

	assert.Equal(t, 4, m.Observations)
	require.NotNil(t, m.Volatility, "volatility only needs two observations")
	assert.Nil(t, m.SharpeRatio, "below the observation floor")
	assert.Nil(t, m.VaR95)
	assert.Nil(t, m.Beta)
}

func TestSelfBetaIsExactlyOne(t *testing.T) {
	bars := barsFromCloses("SPY", steadyGrowth(5, 100, 0.001))
	m := Compute("SPY", bars, bars, "SPY", 0.045)
	require.NotNil(t, m.Beta)
	assert.Equal(t, 1.0, *m.Beta)
}

func TestBetaAgainstScaledBenchmark(t *testing.T) {
	// Symbol returns are exactly twice the benchmark's on every common date
	n := 60
	benchCloses := make([]float64, n)
	ownCloses := make([]float64, n)
	benchCloses[0], ownCloses[0] = 100, 100
	for i := 1; i < n; i++ {
		r := 0.01 * math.Sin(float64(i))
		benchCloses[i] = benchCloses[i-1] * (1 + r)
		ownCloses[i] = ownCloses[i-1] * (1 + 2*r)
	}

	own := barsFromCloses("VTI", ownCloses)
	bench := barsFromCloses("SPY", benchCloses)
	m := Compute("VTI", own, bench, "SPY", 0.045)

	require.NotNil(t, m.Beta)
	assert.InDelta(t, 2.0, *m.Beta, 1e-9)
}

func TestVolatilityFlatPrices(t *testing.T) {
	bars := barsFromCloses("BND", steadyGrowth(40, 100, 0))
	m := Compute("BND", bars, nil, "SPY", 0.045)

	require.NotNil(t, m.Volatility)
	assert.Equal(t, 0.0, *m.Volatility)

	// Zero dispersion also leaves Sharpe undefined
	assert.Nil(t, m.SharpeRatio)
}

func TestMaxDrawdownBounds(t *testing.T) {
	closes := []float64{100, 110, 120, 90, 95, 100, 130, 125}
	bars := barsFromCloses("VTI", closes)
	m := Compute("VTI", bars, nil, "SPY", 0.045)

	require.NotNil(t, m.MaxDrawdown)
	assert.LessOrEqual(t, *m.MaxDrawdown, 0.0)
	assert.GreaterOrEqual(t, *m.MaxDrawdown, -1.0)
	// Peak at 120 (row 2), trough at 90 (row 3): −25%
	assert.InDelta(t, -0.25, *m.MaxDrawdown, 1e-9)
	assert.Equal(t, bars[2].Date, m.MaxDrawdownPeakDate)
	assert.Equal(t, bars[3].Date, m.MaxDrawdownTroughDate)

	require.NotNil(t, m.CalmarRatio)
	assert.InDelta(t, *m.AnnualReturn/0.25, *m.CalmarRatio, 1e-9)
}

func TestMonotonicRiseHasZeroDrawdownAndNoCalmar(t *testing.T) {
	bars := barsFromCloses("VTI", steadyGrowth(30, 100, 0.002))
	m := Compute("VTI", bars, nil, "SPY", 0.045)

	require.NotNil(t, m.MaxDrawdown)
	assert.Equal(t, 0.0, *m.MaxDrawdown)
	assert.Nil(t, m.CalmarRatio, "calmar is undefined when drawdown is zero")
}

func TestVaRPositiveLossMagnitude(t *testing.T) {
	n := 60
	closes := make([]float64, n)
	closes[0] = 100
	for i := 1; i < n; i++ {
		r := 0.01
		if i%5 == 0 {
			r = -0.02
		}
		closes[i] = closes[i-1] * (1 + r)
	}
	m := Compute("VTI", barsFromCloses("VTI", closes), nil, "SPY", 0.045)

	require.NotNil(t, m.VaR95)
	assert.Greater(t, *m.VaR95, 0.0)
	assert.InDelta(t, 0.02, *m.VaR95, 1e-9)
}

func TestSharpeOnSteadyGrowth(t *testing.T) {
	// 0.1% daily with mild alternating noise beats a 4.5% annual risk-free rate
	n := 120
	closes := make([]float64, n)
	closes[0] = 100
	for i := 1; i < n; i++ {
		r := 0.001 + 0.0005*math.Sin(float64(i))
		closes[i] = closes[i-1] * (1 + r)
	}
	m := Compute("VTI", barsFromCloses("VTI", closes), nil, "SPY", 0.045)

	require.NotNil(t, m.SharpeRatio)
	assert.Greater(t, *m.SharpeRatio, 0.0)
}

func TestCorrelationMatrix(t *testing.T) {
	n := 40
	a := make([]float64, n)
	b := make([]float64, n)
	a[0], b[0] = 100, 200
	for i := 1; i < n; i++ {
		r := 0.01 * math.Sin(float64(i))
		a[i] = a[i-1] * (1 + r)
		b[i] = b[i-1] * (1 - r) // perfectly anti-correlated
	}

	m := CorrelationMatrix(map[string][]history.PriceBar{
		"AAA": barsFromCloses("AAA", a),
		"BBB": barsFromCloses("BBB", b),
	})

	require.False(t, m.Empty())
	require.Equal(t, []string{"AAA", "BBB"}, m.Symbols)
	assert.Equal(t, 1.0, m.Values[0][0])
	assert.Equal(t, 1.0, m.Values[1][1])
	assert.InDelta(t, -1.0, m.Values[0][1], 1e-6)
	assert.InDelta(t, m.Values[0][1], m.Values[1][0], 1e-12)
}

func TestCorrelationMatrixRequiresTwoSymbols(t *testing.T) {
	m := CorrelationMatrix(map[string][]history.PriceBar{
		"AAA": barsFromCloses("AAA", steadyGrowth(30, 100, 0.001)),
	})
	assert.True(t, m.Empty())
}

func TestCorrelationMatrixIntersectsDates(t *testing.T) {
	a := barsFromCloses("AAA", steadyGrowth(30, 100, 0.002))
	b := barsFromCloses("BBB", steadyGrowth(30, 50, 0.001))
	// Drop some of BBB's middle days; the join should survive the gap
	b = append(b[:10], b[15:]...)

	m := CorrelationMatrix(map[string][]history.PriceBar{"AAA": a, "BBB": b})
	require.False(t, m.Empty())
}
