package indicators

import (
	"math"

	"github.com/markcheno/go-talib"

	"github.com/aristath/spyglass/pkg/formulas"
)

// Derived columns use NaN as the documented "insufficient history" sentinel.
// Every consumer goes through Defined or the pointer-valued Snapshot; raw NaN
// never reaches a scoring comparison.

// Defined reports whether a column value is present at this row.
func Defined(v float64) bool {
	return !math.IsNaN(v)
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// rollingMean is a trailing simple moving average, inclusive of the current
// row, undefined for the first period-1 rows.
func rollingMean(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	sma := talib.Sma(values, period)
	copy(out[period-1:], sma[period-1:])
	return out
}

// rollingStd is the trailing sample standard deviation over the same window
// convention as rollingMean: both become defined on the same row, which keeps
// the Bollinger middle band and its bands aligned.
func rollingStd(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period < 2 || len(values) < period {
		return out
	}

	for i := period - 1; i < len(values); i++ {
		out[i] = formulas.StdDev(values[i-period+1 : i+1])
	}
	return out
}

// exponentialMean smooths with α = 2/(period+1). The recursion is seeded at
// the first observation and runs from the start of the series, but the first
// period-1 outputs are masked as undefined.
func exponentialMean(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) == 0 {
		return out
	}

	alpha := 2.0 / (float64(period) + 1)
	s := values[0]
	if period == 1 {
		out[0] = s
	}
	for i := 1; i < len(values); i++ {
		s = alpha*values[i] + (1-alpha)*s
		if i >= period-1 {
			out[i] = s
		}
	}
	return out
}
