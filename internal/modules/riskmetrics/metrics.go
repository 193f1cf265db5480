// Package riskmetrics derives portfolio-risk statistics from daily return
// series: annualized volatility, beta against a benchmark, Sharpe ratio,
// maximum drawdown, Calmar ratio, and 95% Value at Risk. Statistics the
// lookback window is too short to support are nil, never zero.
package riskmetrics

import (
	"math"
	"sort"

	"github.com/aristath/spyglass/internal/modules/history"
	"github.com/aristath/spyglass/pkg/formulas"
)

// MinObservations is the floor below which beta, Sharpe, and VaR are
// considered statistically meaningless and left undefined.
const MinObservations = 20

// Metrics holds the risk profile of one symbol over one lookback window.
// Nil fields could not be computed from the available history; values are
// fractions (0.16 = 16%) except where noted.
type Metrics struct {
	Symbol       string
	Observations int // daily returns used

	AnnualReturn *float64
	Volatility   *float64
	Beta         *float64
	SharpeRatio  *float64

	MaxDrawdown           *float64 // non-positive fraction
	MaxDrawdownPeakDate   string
	MaxDrawdownTroughDate string
	CalmarRatio           *float64

	VaR95 *float64 // positive loss magnitude
}

// dated pairs a daily return with the date it was realized on.
type dated struct {
	date string
	ret  float64
}

func datedReturns(bars []history.PriceBar) []dated {
	out := make([]dated, 0, len(bars))
	for i := 1; i < len(bars); i++ {
		prev := bars[i-1].Close
		if prev == 0 {
			continue
		}
		out = append(out, dated{date: bars[i].Date, ret: bars[i].Close/prev - 1})
	}
	return out
}

// Compute derives the full risk profile for a symbol. benchmarkBars may be
// nil, in which case beta is left undefined; a symbol benchmarked against
// itself has beta 1.0 by convention.
func Compute(symbol string, bars, benchmarkBars []history.PriceBar, benchmarkSymbol string, riskFreeAnnual float64) *Metrics {
	m := &Metrics{Symbol: symbol}

	rets := datedReturns(bars)
	m.Observations = len(rets)
	if len(rets) == 0 {
		return m
	}

	returns := make([]float64, len(rets))
	for i, r := range rets {
		returns[i] = r.ret
	}

	annRet := formulas.AnnualizedReturn(returns)
	m.AnnualReturn = &annRet

	if len(returns) >= 2 {
		vol := formulas.AnnualizedVolatility(returns)
		m.Volatility = &vol
	}

	m.Beta = beta(symbol, rets, benchmarkBars, benchmarkSymbol)
	m.SharpeRatio = sharpe(returns, riskFreeAnnual)

	dd, peak, trough := maxDrawdown(rets)
	if dd != nil {
		m.MaxDrawdown = dd
		m.MaxDrawdownPeakDate = peak
		m.MaxDrawdownTroughDate = trough
		if *dd != 0 {
			calmar := annRet / math.Abs(*dd)
			m.CalmarRatio = &calmar
		}
	}

	if len(returns) >= MinObservations {
		v := -formulas.Percentile(returns, 5)
		m.VaR95 = &v
	}

	return m
}

// beta regresses the symbol's returns against the benchmark's over their
// common dates. An inner join by date tolerates differing data gaps.
func beta(symbol string, rets []dated, benchmarkBars []history.PriceBar, benchmarkSymbol string) *float64 {
	if symbol == benchmarkSymbol {
		one := 1.0
		return &one
	}
	if len(benchmarkBars) == 0 {
		return nil
	}

	benchByDate := make(map[string]float64)
	for _, r := range datedReturns(benchmarkBars) {
		benchByDate[r.date] = r.ret
	}

	var own, bench []float64
	for _, r := range rets {
		if b, ok := benchByDate[r.date]; ok {
			own = append(own, r.ret)
			bench = append(bench, b)
		}
	}
	if len(own) < MinObservations {
		return nil
	}

	benchVar := formulas.Variance(bench)
	if benchVar == 0 {
		return nil
	}
	b := formulas.Covariance(own, bench) / benchVar
	return &b
}

func sharpe(returns []float64, riskFreeAnnual float64) *float64 {
	if len(returns) < MinObservations {
		return nil
	}

	rfDaily := riskFreeAnnual / formulas.TradingDaysPerYear
	excess := make([]float64, len(returns))
	for i, r := range returns {
		excess[i] = r - rfDaily
	}

	std := formulas.StdDev(excess)
	if std == 0 {
		return nil
	}
	s := formulas.Mean(excess) / std * math.Sqrt(formulas.TradingDaysPerYear)
	return &s
}

// maxDrawdown walks the cumulative wealth index W[t] = Π(1+r) and reports
// the deepest peak-to-trough loss with the dates of the most recent peak
// before the trough and the trough itself.
func maxDrawdown(rets []dated) (*float64, string, string) {
	if len(rets) == 0 {
		return nil, "", ""
	}

	wealth := 1.0
	runningMax := 1.0
	peakDate := rets[0].date
	worst := 0.0
	worstPeak := peakDate
	worstTrough := rets[0].date

	for _, r := range rets {
		wealth *= 1 + r.ret
		if wealth >= runningMax {
			runningMax = wealth
			peakDate = r.date
		}
		dd := (wealth - runningMax) / runningMax
		if dd < worst {
			worst = dd
			worstPeak = peakDate
			worstTrough = r.date
		}
	}

	return &worst, worstPeak, worstTrough
}

// Matrix is a symmetric pairwise-correlation table. Symbols and Values are
// index-aligned; Values[i][j] is the correlation of Symbols[i] and
// Symbols[j] daily returns.
type Matrix struct {
	Symbols []string
	Values  [][]float64
}

// Empty reports whether the matrix has no usable content.
func (m Matrix) Empty() bool {
	return len(m.Symbols) < 2
}

// CorrelationMatrix computes pairwise return correlations over the dates
// common to every provided symbol. Symbols with fewer than two common
// observations make the whole matrix unusable; with fewer than two symbols
// an empty matrix is returned rather than an error.
func CorrelationMatrix(series map[string][]history.PriceBar) Matrix {
	symbols := make([]string, 0, len(series))
	byDate := make(map[string]map[string]float64, len(series))
	for sym, bars := range series {
		rets := datedReturns(bars)
		if len(rets) == 0 {
			continue
		}
		dates := make(map[string]float64, len(rets))
		for _, r := range rets {
			dates[r.date] = r.ret
		}
		symbols = append(symbols, sym)
		byDate[sym] = dates
	}
	if len(symbols) < 2 {
		return Matrix{}
	}
	sort.Strings(symbols)

	// Keep only dates present for every symbol
	var common []string
	for date := range byDate[symbols[0]] {
		shared := true
		for _, sym := range symbols[1:] {
			if _, ok := byDate[sym][date]; !ok {
				shared = false
				break
			}
		}
		if shared {
			common = append(common, date)
		}
	}
	if len(common) < 2 {
		return Matrix{}
	}
	sort.Strings(common)

	aligned := make(map[string][]float64, len(symbols))
	for _, sym := range symbols {
		col := make([]float64, len(common))
		for i, date := range common {
			col[i] = byDate[sym][date]
		}
		aligned[sym] = col
	}

	values := make([][]float64, len(symbols))
	for i := range symbols {
		values[i] = make([]float64, len(symbols))
		for j := range symbols {
			if i == j {
				values[i][j] = 1.0
				continue
			}
			values[i][j] = formulas.Correlation(aligned[symbols[i]], aligned[symbols[j]])
		}
	}

	return Matrix{Symbols: symbols, Values: values}
}
