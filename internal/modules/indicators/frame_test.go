package indicators

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/spyglass/internal/modules/history"
)

func makeBars(closes []float64, volume int64) []history.PriceBar {
	bars := make([]history.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = history.PriceBar{
			Symbol:        "TEST",
			Date:          fmt.Sprintf("2024-01-%02d", i+1),
			Open:          c,
			High:          c * 1.01,
			Low:           c * 0.99,
			Close:         c,
			AdjustedClose: c,
			Volume:        volume,
			DataSource:    "test",
		}
	}
	return bars
}

func constantSeries(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func risingSeries(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func TestBuildEmptySeries(t *testing.T) {
	_, err := Build(nil, DefaultConfig())
	require.ErrorIs(t, err, ErrEmptySeries)
}

func TestRollingMeanWarmup(t *testing.T) {
	closes := risingSeries(25, 100, 1)
	f, err := Build(makeBars(closes, 1000), DefaultConfig())
	require.NoError(t, err)

	sma10 := f.SMA[10]
	for i := 0; i < 9; i++ {
		assert.False(t, Defined(sma10[i]), "row %d should be inside the warm-up", i)
	}
	require.True(t, Defined(sma10[9]))
	// Mean of 100..109
	assert.InDelta(t, 104.5, sma10[9], 1e-9)

	// 200-day average can never warm up on 25 rows
	for i, v := range f.SMA[200] {
		assert.False(t, Defined(v), "sma200 row %d should be undefined", i)
	}
}

func TestExponentialMeanMatchesRecursion(t *testing.T) {
	values := []float64{10, 12, 11, 13, 15}
	out := exponentialMean(values, 3)

	assert.False(t, Defined(out[0]))
	assert.False(t, Defined(out[1]))

	// alpha = 0.5; seeded at the first observation
	s := 10.0
	for i := 1; i < len(values); i++ {
		s = 0.5*values[i] + 0.5*s
		if i >= 2 {
			assert.InDelta(t, s, out[i], 1e-12, "row %d", i)
		}
	}
}

func TestRSIBoundsAndSaturation(t *testing.T) {
	cfg := DefaultConfig()

	// Strictly rising closes have zero average loss
	f, err := Build(makeBars(risingSeries(60, 100, 0.5), 1000), cfg)
	require.NoError(t, err)

	for i := 0; i < cfg.RSIPeriod; i++ {
		assert.False(t, Defined(f.RSI[i]), "rsi row %d should be undefined", i)
	}
	last := f.RSI[len(f.RSI)-1]
	require.True(t, Defined(last))
	assert.Equal(t, 100.0, last)

	// Alternating series stays strictly inside the bounds
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i%2)*3
	}
	f, err = Build(makeBars(closes, 1000), cfg)
	require.NoError(t, err)
	for i := cfg.RSIPeriod; i < len(f.RSI); i++ {
		require.True(t, Defined(f.RSI[i]))
		assert.GreaterOrEqual(t, f.RSI[i], 0.0)
		assert.LessOrEqual(t, f.RSI[i], 100.0)
	}
}

func TestMACDWarmup(t *testing.T) {
	cfg := DefaultConfig()
	closes := risingSeries(40, 100, 0.3)
	f, err := Build(makeBars(closes, 1000), cfg)
	require.NoError(t, err)

	lineStart := cfg.MACDSlow - 1
	for i := 0; i < lineStart; i++ {
		assert.False(t, Defined(f.MACDLine[i]), "line row %d", i)
	}
	assert.True(t, Defined(f.MACDLine[lineStart]))

	// Signal needs signalPeriod observations of the line
	sigStart := cfg.MACDSlow + cfg.MACDSignal - 2
	for i := 0; i < sigStart; i++ {
		assert.False(t, Defined(f.MACDSignal[i]), "signal row %d", i)
	}
	require.True(t, Defined(f.MACDSignal[sigStart]))
	require.True(t, Defined(f.MACDHistogram[sigStart]))
	assert.InDelta(t, f.MACDLine[sigStart]-f.MACDSignal[sigStart], f.MACDHistogram[sigStart], 1e-12)

	// A steadily rising series keeps the fast average above the slow one
	assert.Greater(t, f.MACDLine[len(closes)-1], 0.0)
}

func TestBollingerOnConstantSeries(t *testing.T) {
	f, err := Build(makeBars(constantSeries(30, 50), 1000), DefaultConfig())
	require.NoError(t, err)

	i := len(f.Bars) - 1
	require.True(t, Defined(f.BBMiddle[i]))
	assert.InDelta(t, 50.0, f.BBMiddle[i], 1e-9)
	assert.InDelta(t, f.BBUpper[i], f.BBLower[i], 1e-9)
	assert.InDelta(t, 0.0, f.BBWidth[i], 1e-9)

	// Collapsed bands make %B undefined
	assert.False(t, Defined(f.BBPct[i]))
}

func TestBollingerBandsContainStdDev(t *testing.T) {
	closes := []float64{100, 102, 98, 101, 99, 103, 97, 102, 100, 101,
		99, 102, 98, 103, 100, 101, 99, 100, 102, 98}
	f, err := Build(makeBars(closes, 1000), DefaultConfig())
	require.NoError(t, err)

	i := 19
	require.True(t, Defined(f.BBUpper[i]))
	require.True(t, Defined(f.BBLower[i]))
	assert.Greater(t, f.BBUpper[i], f.BBMiddle[i])
	assert.Less(t, f.BBLower[i], f.BBMiddle[i])

	require.True(t, Defined(f.BBPct[i]))
	pct := (closes[i] - f.BBLower[i]) / (f.BBUpper[i] - f.BBLower[i])
	assert.InDelta(t, pct, f.BBPct[i], 1e-12)
}

func TestOBVCumulative(t *testing.T) {
	closes := []float64{100, 101, 102, 101, 101, 103}
	bars := makeBars(closes, 500)
	f, err := Build(bars, DefaultConfig())
	require.NoError(t, err)

	// up, up, down, flat, up
	want := []float64{0, 500, 1000, 500, 500, 1000}
	for i, w := range want {
		assert.InDelta(t, w, f.OBV[i], 1e-9, "obv row %d", i)
	}
}

func TestVolRatio(t *testing.T) {
	closes := constantSeries(25, 100)
	bars := makeBars(closes, 1000)
	bars[24].Volume = 3000
	f, err := Build(bars, DefaultConfig())
	require.NoError(t, err)

	i := 24
	require.True(t, Defined(f.VolRatio[i]))
	// 19 days at 1000 plus one at 3000 averages to 1100
	assert.InDelta(t, 3000.0/1100.0, f.VolRatio[i], 1e-9)
}

func TestGoldenCrossScenario(t *testing.T) {
	// 200 flat days then 100 strongly rising: the 50-day average ends well
	// above the 200-day one.
	closes := append(constantSeries(200, 100), risingSeries(100, 100, 1)...)
	f, err := Build(makeBars(closes, 1000), DefaultConfig())
	require.NoError(t, err)

	i := len(closes) - 1
	require.True(t, Defined(f.SMA[50][i]))
	require.True(t, Defined(f.SMA[200][i]))
	assert.Greater(t, f.SMA[50][i], f.SMA[200][i])
}

func TestLatestSnapshot(t *testing.T) {
	closes := risingSeries(60, 100, 0.5)
	f, err := Build(makeBars(closes, 1000), DefaultConfig())
	require.NoError(t, err)

	snap := f.Latest()
	assert.Equal(t, "TEST", snap.Symbol)
	assert.Equal(t, closes[59], snap.Close)

	require.NotNil(t, snap.SMA[50])
	assert.Nil(t, snap.SMA[200], "200-day average cannot warm up on 60 rows")
	require.NotNil(t, snap.RSI)
	assert.False(t, math.IsNaN(*snap.RSI))
	require.NotNil(t, snap.MACDLine)
	require.NotNil(t, snap.MACDSignal)
	require.NotNil(t, snap.VolRatio)
	require.NotNil(t, snap.OBV)
}

func TestShortSeriesAllUndefinedButNoError(t *testing.T) {
	f, err := Build(makeBars([]float64{100, 101, 102}, 1000), DefaultConfig())
	require.NoError(t, err)

	snap := f.Latest()
	assert.Nil(t, snap.SMA[10])
	assert.Nil(t, snap.RSI)
	assert.Nil(t, snap.MACDLine)
	assert.Nil(t, snap.BBMiddle)
	require.NotNil(t, snap.OBV, "on-balance volume is defined from the first row")
}
