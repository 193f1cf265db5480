// Package indicators computes technical-indicator columns over a daily OHLCV
// series: moving averages, MACD, RSI, Bollinger Bands, and volume-flow
// indicators. Each column carries a warm-up requirement; before enough
// leading observations exist its value is undefined, which is a first-class
// outcome rather than an error.
package indicators

import (
	"errors"
	"math"

	"github.com/aristath/spyglass/internal/modules/history"
)

// Config holds the indicator periods. Defaults match the standard settings
// used throughout: MACD 12/26/9, RSI 14, Bollinger 20 ± 2σ, volume 20.
type Config struct {
	MAPeriods       []int
	MACDFast        int
	MACDSlow        int
	MACDSignal      int
	RSIPeriod       int
	BollingerPeriod int
	BollingerStdDev float64
	VolumePeriod    int
}

// DefaultConfig returns the standard indicator settings.
func DefaultConfig() Config {
	return Config{
		MAPeriods:       []int{10, 20, 50, 200},
		MACDFast:        12,
		MACDSlow:        26,
		MACDSignal:      9,
		RSIPeriod:       14,
		BollingerPeriod: 20,
		BollingerStdDev: 2.0,
		VolumePeriod:    20,
	}
}

// ErrEmptySeries is returned when there is no price data at all. Short but
// non-empty history is never an error; affected columns are simply undefined.
var ErrEmptySeries = errors.New("cannot compute indicators on empty price series")

// Frame is a price series augmented with derived per-day columns. Column
// slices are index-aligned with Bars; undefined values are NaN and must be
// checked with Defined before use.
type Frame struct {
	Bars []history.PriceBar

	SMA map[int][]float64
	EMA map[int][]float64

	MACDLine      []float64
	MACDSignal    []float64
	MACDHistogram []float64

	RSI []float64

	BBMiddle []float64
	BBUpper  []float64
	BBLower  []float64
	BBWidth  []float64
	BBPct    []float64

	VolSMA   []float64
	VolRatio []float64
	OBV      []float64
	OBVSMA   []float64
}

// Build computes every indicator column for an ascending-by-date series.
func Build(bars []history.PriceBar, cfg Config) (*Frame, error) {
	if len(bars) == 0 {
		return nil, ErrEmptySeries
	}

	n := len(bars)
	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i, b := range bars {
		closes[i] = b.Close
		volumes[i] = float64(b.Volume)
	}

	f := &Frame{
		Bars: bars,
		SMA:  make(map[int][]float64, len(cfg.MAPeriods)),
		EMA:  make(map[int][]float64, len(cfg.MAPeriods)),
	}

	for _, p := range cfg.MAPeriods {
		f.SMA[p] = rollingMean(closes, p)
		f.EMA[p] = exponentialMean(closes, p)
	}

	f.MACDLine, f.MACDSignal, f.MACDHistogram = macdColumns(
		closes, cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal)

	f.RSI = rsiColumn(closes, cfg.RSIPeriod)

	f.BBMiddle, f.BBUpper, f.BBLower, f.BBWidth, f.BBPct = bollingerColumns(
		closes, cfg.BollingerPeriod, cfg.BollingerStdDev)

	f.VolSMA, f.VolRatio, f.OBV, f.OBVSMA = volumeColumns(
		closes, volumes, cfg.VolumePeriod)

	return f, nil
}

// macdColumns computes the MACD line, its signal line, and the histogram.
// The line is undefined until the slow EMA warms up; the signal needs a
// further signalPeriod observations of the line on top of that.
func macdColumns(closes []float64, fast, slow, signalPeriod int) (line, signal, hist []float64) {
	n := len(closes)
	line = nanSlice(n)
	signal = nanSlice(n)
	hist = nanSlice(n)

	emaFast := exponentialMean(closes, fast)
	emaSlow := exponentialMean(closes, slow)
	for i := 0; i < n; i++ {
		if Defined(emaFast[i]) && Defined(emaSlow[i]) {
			line[i] = emaFast[i] - emaSlow[i]
		}
	}

	// Smooth the signal over the line's defined region only
	start := slow - 1
	if start < 0 || start >= n || !Defined(line[start]) {
		return line, signal, hist
	}

	alpha := 2.0 / (float64(signalPeriod) + 1)
	s := line[start]
	count := 1
	if count >= signalPeriod {
		signal[start] = s
	}
	for i := start + 1; i < n; i++ {
		s = alpha*line[i] + (1-alpha)*s
		count++
		if count >= signalPeriod {
			signal[i] = s
		}
	}

	for i := 0; i < n; i++ {
		if Defined(line[i]) && Defined(signal[i]) {
			hist[i] = line[i] - signal[i]
		}
	}
	return line, signal, hist
}

// rsiColumn computes the Wilder-smoothed Relative Strength Index.
//
//	gain[t] = max(close[t]−close[t−1], 0)
//	loss[t] = max(close[t−1]−close[t], 0)
//	RS      = avgGain / avgLoss   (smoothed with α = 1/period)
//	RSI     = 100 − 100/(1+RS)
//
// When the average loss is zero RS is infinite and RSI saturates at 100;
// the division is guarded rather than left to float semantics.
func rsiColumn(closes []float64, period int) []float64 {
	n := len(closes)
	out := nanSlice(n)
	if n < 2 || period <= 0 {
		return out
	}

	alpha := 1.0 / float64(period)
	avgGain := math.Max(closes[1]-closes[0], 0)
	avgLoss := math.Max(closes[0]-closes[1], 0)
	if 1 >= period {
		out[1] = rsiValue(avgGain, avgLoss)
	}

	for i := 2; i < n; i++ {
		delta := closes[i] - closes[i-1]
		avgGain = alpha*math.Max(delta, 0) + (1-alpha)*avgGain
		avgLoss = alpha*math.Max(-delta, 0) + (1-alpha)*avgLoss
		if i >= period {
			out[i] = rsiValue(avgGain, avgLoss)
		}
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// bollingerColumns computes the middle band (trailing SMA), the upper/lower
// bands at k standard deviations, the band width as a percentage of the
// middle band, and %B (position of the close within the bands).
func bollingerColumns(closes []float64, period int, k float64) (middle, upper, lower, width, pct []float64) {
	n := len(closes)
	middle = rollingMean(closes, period)
	std := rollingStd(closes, period)
	upper = nanSlice(n)
	lower = nanSlice(n)
	width = nanSlice(n)
	pct = nanSlice(n)

	for i := 0; i < n; i++ {
		if !Defined(middle[i]) || !Defined(std[i]) {
			continue
		}
		upper[i] = middle[i] + k*std[i]
		lower[i] = middle[i] - k*std[i]

		if middle[i] != 0 {
			width[i] = (upper[i] - lower[i]) / middle[i] * 100
		}

		// Collapsed bands leave %B undefined
		if band := upper[i] - lower[i]; band != 0 {
			pct[i] = (closes[i] - lower[i]) / band
		}
	}
	return middle, upper, lower, width, pct
}

// volumeColumns computes the average-volume baseline, today's volume as a
// multiple of it, On Balance Volume, and the OBV trend average.
//
//	OBV[0] = 0
//	OBV[t] = OBV[t−1] + sign(close[t]−close[t−1]) × volume[t]
func volumeColumns(closes, volumes []float64, period int) (volSMA, volRatio, obv, obvSMA []float64) {
	n := len(closes)
	volSMA = rollingMean(volumes, period)
	volRatio = nanSlice(n)
	obv = make([]float64, n)

	for i := 0; i < n; i++ {
		if Defined(volSMA[i]) && volSMA[i] != 0 {
			volRatio[i] = volumes[i] / volSMA[i]
		}
		if i == 0 {
			obv[0] = 0
			continue
		}
		obv[i] = obv[i-1] + sign(closes[i]-closes[i-1])*volumes[i]
	}

	obvSMA = rollingMean(obv, period)
	return volSMA, volRatio, obv, obvSMA
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
