package scoring

import (
	"fmt"

	"github.com/aristath/spyglass/internal/modules/indicators"
)

// TechnicalKeyValues are the headline indicator readings carried alongside
// the score for display and narrative prompts. Nil = not computable.
type TechnicalKeyValues struct {
	SMA50    *float64
	SMA200   *float64
	MACDLine *float64
	RSI      *float64
	BBPct    *float64
	BBWidth  *float64
	VolRatio *float64
}

// TechnicalResult is the scored technical picture for one symbol on one day.
type TechnicalResult struct {
	Symbol          string
	Date            string
	Close           float64
	Signal          Signal
	Score           int
	ComponentScores map[string]int
	Reasons         []string
	KeyValues       TechnicalKeyValues
}

// ScoreTechnical maps an indicator snapshot to a [-10,+10] score across five
// components worth [-2,+2] each. A component with missing inputs contributes
// 0 with an "insufficient data" reason rather than being skipped.
func ScoreTechnical(snap indicators.Snapshot) TechnicalResult {
	maScore, maReasons := scoreMovingAverages(snap)
	macdScore, macdReasons := scoreMACD(snap)
	rsiScore, rsiReasons := scoreRSI(snap)
	bbScore, bbReasons := scoreBollinger(snap)
	volScore, volReasons := scoreVolume(snap)

	total := maScore + macdScore + rsiScore + bbScore + volScore

	reasons := make([]string, 0, 8)
	reasons = append(reasons, maReasons...)
	reasons = append(reasons, macdReasons...)
	reasons = append(reasons, rsiReasons...)
	reasons = append(reasons, bbReasons...)
	reasons = append(reasons, volReasons...)

	return TechnicalResult{
		Symbol: snap.Symbol,
		Date:   snap.Date,
		Close:  snap.Close,
		Signal: technicalSignal(total),
		Score:  total,
		ComponentScores: map[string]int{
			"moving_averages": maScore,
			"macd":            macdScore,
			"rsi":             rsiScore,
			"bollinger":       bbScore,
			"volume":          volScore,
		},
		Reasons: reasons,
		KeyValues: TechnicalKeyValues{
			SMA50:    snap.SMA[50],
			SMA200:   snap.SMA[200],
			MACDLine: snap.MACDLine,
			RSI:      snap.RSI,
			BBPct:    snap.BBPct,
			BBWidth:  snap.BBWidth,
			VolRatio: snap.VolRatio,
		},
	}
}

func scoreMovingAverages(snap indicators.Snapshot) (int, []string) {
	sma50, sma200 := snap.SMA[50], snap.SMA[200]
	if sma50 == nil || sma200 == nil {
		return 0, []string{"MA: insufficient data"}
	}

	score := 0
	var reasons []string

	if *sma50 > *sma200 {
		score++
		reasons = append(reasons, "MA: Golden Cross (SMA50 > SMA200) +1")
	} else {
		score--
		reasons = append(reasons, "MA: Death Cross (SMA50 < SMA200) -1")
	}

	if snap.Close > *sma50 {
		score++
		reasons = append(reasons, "MA: Price above SMA50 +1")
	} else {
		score--
		reasons = append(reasons, "MA: Price below SMA50 -1")
	}

	return score, reasons
}

func scoreMACD(snap indicators.Snapshot) (int, []string) {
	line, signal := snap.MACDLine, snap.MACDSignal
	if line == nil || signal == nil {
		return 0, []string{"MACD: insufficient data"}
	}

	score := 0
	var reasons []string

	if *line > *signal {
		score++
		reasons = append(reasons, "MACD: line above signal +1")
	} else {
		score--
		reasons = append(reasons, "MACD: line below signal -1")
	}

	if *line > 0 {
		score++
		reasons = append(reasons, "MACD: line positive (above zero) +1")
	} else {
		score--
		reasons = append(reasons, "MACD: line negative (below zero) -1")
	}

	return score, reasons
}

func scoreRSI(snap indicators.Snapshot) (int, []string) {
	if snap.RSI == nil {
		return 0, []string{"RSI: insufficient data"}
	}
	rsi := *snap.RSI

	switch {
	case rsi <= 30:
		return 2, []string{fmt.Sprintf("RSI: oversold (%.1f) strong buy signal +2", rsi)}
	case rsi <= 45:
		return 1, []string{fmt.Sprintf("RSI: approaching oversold (%.1f) +1", rsi)}
	case rsi >= 70:
		return -2, []string{fmt.Sprintf("RSI: overbought (%.1f) caution -2", rsi)}
	case rsi >= 55:
		return -1, []string{fmt.Sprintf("RSI: approaching overbought (%.1f) -1", rsi)}
	default:
		return 0, []string{fmt.Sprintf("RSI: neutral (%.1f) 0", rsi)}
	}
}

func scoreBollinger(snap indicators.Snapshot) (int, []string) {
	if snap.BBPct == nil {
		return 0, []string{"BB: insufficient data"}
	}
	pctB := *snap.BBPct

	switch {
	case pctB <= 0.05:
		return 2, []string{fmt.Sprintf("BB: at/below lower band (%%B=%.2f) oversold +2", pctB)}
	case pctB <= 0.3:
		return 1, []string{fmt.Sprintf("BB: near lower band (%%B=%.2f) +1", pctB)}
	case pctB >= 0.95:
		return -2, []string{fmt.Sprintf("BB: at/above upper band (%%B=%.2f) overbought -2", pctB)}
	case pctB >= 0.7:
		return -1, []string{fmt.Sprintf("BB: near upper band (%%B=%.2f) -1", pctB)}
	default:
		return 0, []string{fmt.Sprintf("BB: middle of bands (%%B=%.2f) 0", pctB)}
	}
}

func scoreVolume(snap indicators.Snapshot) (int, []string) {
	if snap.VolRatio == nil || snap.OBV == nil || snap.OBVSMA == nil {
		return 0, []string{"Volume: insufficient data"}
	}

	score := 0
	var reasons []string

	if *snap.OBV > *snap.OBVSMA {
		score++
		reasons = append(reasons, "Vol: OBV above average (buyers in control) +1")
	} else {
		score--
		reasons = append(reasons, "Vol: OBV below average (sellers in control) -1")
	}

	ratio := *snap.VolRatio
	priceMove := snap.Close - snap.Open

	switch {
	case ratio >= 1.5 && priceMove > 0:
		score++
		reasons = append(reasons, fmt.Sprintf("Vol: high volume up day (%.1fx) conviction +1", ratio))
	case ratio >= 1.5 && priceMove < 0:
		score--
		reasons = append(reasons, fmt.Sprintf("Vol: high volume down day (%.1fx) selling pressure -1", ratio))
	default:
		reasons = append(reasons, fmt.Sprintf("Vol: normal volume (%.1fx) 0", ratio))
	}

	return score, reasons
}
