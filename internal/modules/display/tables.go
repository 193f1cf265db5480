// Package display renders analysis results as fixed-width terminal tables.
package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aristath/spyglass/internal/modules/advisor"
	"github.com/aristath/spyglass/internal/modules/riskmetrics"
	"github.com/aristath/spyglass/internal/modules/scoring"
)

var signalIcons = map[scoring.Signal]string{
	scoring.StrongBuy:   "++",
	scoring.Buy:         " +",
	scoring.Neutral:     " ~",
	scoring.Sell:        " -",
	scoring.StrongSell:  "--",
	scoring.SignalError: " !",
}

var levelIcons = map[scoring.RiskLevel]string{
	scoring.Conservative: "LOW",
	scoring.Moderate:     "MED",
	scoring.Elevated:     "HI!",
	scoring.HighRisk:     "!!!",
	scoring.LevelError:   "ERR",
}

func icon(s scoring.Signal) string {
	if i, ok := signalIcons[s]; ok {
		return i
	}
	return " ?"
}

func na(v *float64, format string) string {
	if v == nil {
		return "---"
	}
	return fmt.Sprintf(format, *v)
}

func today() string {
	return time.Now().Format("2006-01-02")
}

// TechnicalSummary prints the compact per-symbol technical table.
func TechnicalSummary(w io.Writer, results []scoring.TechnicalResult) {
	line := strings.Repeat("=", 70)
	fmt.Fprintf(w, "\n%s\n", line)
	fmt.Fprintf(w, "  TECHNICAL ANALYSIS SUMMARY  —  %s\n", today())
	fmt.Fprintf(w, "%s\n", line)
	fmt.Fprintf(w, "  %-8s %8s %6s %-13s %6s %6s %6s\n", "Symbol", "Price", "Score", "Signal", "RSI", "%B", "VolR")
	fmt.Fprintf(w, "  %s\n", strings.Repeat("-", 62))

	for _, r := range results {
		rsi := na(r.KeyValues.RSI, "%.0f")
		pctB := na(r.KeyValues.BBPct, "%.2f")
		vol := "---"
		if r.KeyValues.VolRatio != nil {
			vol = fmt.Sprintf("%.1fx", *r.KeyValues.VolRatio)
		}
		fmt.Fprintf(w, "  %-8s $%7.2f %+5d  [%s] %-12s %6s %6s %6s\n",
			r.Symbol, r.Close, r.Score, icon(r.Signal), r.Signal, rsi, pctB, vol)
	}
	fmt.Fprintf(w, "%s\n\n", line)
}

// TechnicalDetail prints the full breakdown for one symbol.
func TechnicalDetail(w io.Writer, r scoring.TechnicalResult) {
	line := strings.Repeat("=", 70)
	fmt.Fprintf(w, "\n%s\n", line)
	fmt.Fprintf(w, "  %s  |  $%.2f  |  %s\n", r.Symbol, r.Close, r.Date)
	fmt.Fprintf(w, "  Signal: [%s] %s  (Score: %+d/10)\n", icon(r.Signal), r.Signal, r.Score)
	fmt.Fprintf(w, "%s\n", line)

	kv := r.KeyValues
	fmt.Fprintf(w, "\n  Component Scores:\n")
	fmt.Fprintf(w, "  %-20s %+d  (SMA50=%s, SMA200=%s)\n", "Moving Averages",
		r.ComponentScores["moving_averages"], na(kv.SMA50, "$%.2f"), na(kv.SMA200, "$%.2f"))
	fmt.Fprintf(w, "  %-20s %+d  (line=%s)\n", "MACD", r.ComponentScores["macd"], na(kv.MACDLine, "%.3f"))
	fmt.Fprintf(w, "  %-20s %+d  (RSI=%s)\n", "RSI", r.ComponentScores["rsi"], na(kv.RSI, "%.1f"))
	fmt.Fprintf(w, "  %-20s %+d  (%%B=%s, width=%s%%)\n", "Bollinger Bands",
		r.ComponentScores["bollinger"], na(kv.BBPct, "%.2f"), na(kv.BBWidth, "%.2f"))
	fmt.Fprintf(w, "  %-20s %+d  (ratio=%sx)\n", "Volume", r.ComponentScores["volume"], na(kv.VolRatio, "%.2f"))

	fmt.Fprintf(w, "\n  Reasoning:\n")
	for _, reason := range r.Reasons {
		fmt.Fprintf(w, "    • %s\n", reason)
	}
	fmt.Fprintln(w)
}

// FundamentalSummary prints the compact per-symbol fundamentals table.
func FundamentalSummary(w io.Writer, results []scoring.FundamentalResult) {
	line := strings.Repeat("=", 70)
	fmt.Fprintf(w, "\n%s\n", line)
	fmt.Fprintf(w, "  FUNDAMENTAL ANALYSIS SUMMARY  —  %s\n", today())
	fmt.Fprintf(w, "%s\n", line)
	fmt.Fprintf(w, "  %-7s %6s %-13s %6s %6s %7s %-12s\n", "Symbol", "Score", "Signal", "P/E", "Yield", "ER", "Type")
	fmt.Fprintf(w, "  %s\n", strings.Repeat("-", 63))

	for _, r := range results {
		pe, yld, er := "---", "---", "---"
		if r.Metrics != nil {
			pe = na(r.Metrics.PERatio, "%.1f")
			yld = na(r.Metrics.DividendYield, "%.2f%%")
			er = na(r.Metrics.ExpenseRatio, "%.3f%%")
		}
		fmt.Fprintf(w, "  %-7s %+5d  [%s] %-12s %6s %6s %7s %-12s\n",
			r.Symbol, r.Score, icon(r.Signal), r.Signal, pe, yld, er, r.ETFType)
	}
	fmt.Fprintf(w, "%s\n\n", line)
}

// RiskSummary prints the compact per-symbol risk table, safest first.
func RiskSummary(w io.Writer, results []scoring.RiskResult) {
	line := strings.Repeat("=", 75)
	fmt.Fprintf(w, "\n%s\n", line)
	fmt.Fprintf(w, "  RISK ANALYSIS SUMMARY  —  %s\n", today())
	fmt.Fprintf(w, "%s\n", line)
	fmt.Fprintf(w, "  %-7s %6s %-14s %10s %6s %7s %8s\n", "Symbol", "Score", "Risk Level", "Volatility", "Beta", "Sharpe", "Max DD")
	fmt.Fprintf(w, "  %s\n", strings.Repeat("-", 68))

	for _, r := range results {
		vol, beta, sharpe, dd := "---", "---", "---", "---"
		if m := r.Metrics; m != nil {
			if m.Volatility != nil {
				vol = fmt.Sprintf("%.1f%%", *m.Volatility*100)
			}
			beta = na(m.Beta, "%.2f")
			sharpe = na(m.SharpeRatio, "%.2f")
			if m.MaxDrawdown != nil {
				dd = fmt.Sprintf("%.1f%%", *m.MaxDrawdown*100)
			}
		}
		levelIcon := levelIcons[r.Level]
		fmt.Fprintf(w, "  %-7s %+5d  [%s] %-13s %10s %6s %7s %8s\n",
			r.Symbol, r.Score, levelIcon, r.Level, vol, beta, sharpe, dd)
	}
	fmt.Fprintf(w, "%s\n\n", line)
}

// RiskDetail prints the full metric breakdown for one symbol.
func RiskDetail(w io.Writer, r scoring.RiskResult) {
	line := strings.Repeat("=", 70)
	fmt.Fprintf(w, "\n%s\n", line)
	fmt.Fprintf(w, "  %s  —  Risk Level: %s  (Score: %+d/6)\n", r.Symbol, r.Level, r.Score)
	fmt.Fprintf(w, "%s\n", line)

	m := r.Metrics
	if m != nil {
		fmt.Fprintf(w, "\n  Full Metrics:\n")
		fmt.Fprintf(w, "    Annual Return    : %s\n", pctOf(m.AnnualReturn))
		fmt.Fprintf(w, "    Volatility       : %s\n", pctOf(m.Volatility))
		fmt.Fprintf(w, "    Beta             : %s\n", na(m.Beta, "%.2f"))
		fmt.Fprintf(w, "    Sharpe Ratio     : %s\n", na(m.SharpeRatio, "%.2f"))
		fmt.Fprintf(w, "    Max Drawdown     : %s\n", pctOf(m.MaxDrawdown))
		fmt.Fprintf(w, "    VaR 95%% (1-day)  : %s\n", pctOf(m.VaR95))
		fmt.Fprintf(w, "    Calmar Ratio     : %s\n", na(m.CalmarRatio, "%.2f"))
		if m.MaxDrawdownPeakDate != "" && m.MaxDrawdownTroughDate != "" {
			fmt.Fprintf(w, "    Worst Drawdown   : %s → %s\n", m.MaxDrawdownPeakDate, m.MaxDrawdownTroughDate)
		}
	}

	fmt.Fprintf(w, "\n  Reasoning:\n")
	for _, reason := range r.Reasons {
		fmt.Fprintf(w, "    • %s\n", reason)
	}
	fmt.Fprintln(w)
}

func pctOf(v *float64) string {
	if v == nil {
		return "---"
	}
	return fmt.Sprintf("%+.1f%%", *v*100)
}

// CombinedSummary prints the weighted portfolio signal table.
func CombinedSummary(w io.Writer, results []advisor.CombinedResult) {
	line := strings.Repeat("=", 80)
	fmt.Fprintf(w, "\n%s\n", line)
	fmt.Fprintf(w, "  COMBINED PORTFOLIO SIGNALS  —  %s\n", today())
	fmt.Fprintf(w, "  Weights: Technical 40%% | Fundamental 30%% | Risk 30%%\n")
	fmt.Fprintf(w, "%s\n", line)
	fmt.Fprintf(w, "  %-7s %7s %-14s %5s %5s %5s %6s %6s\n", "Symbol", "Score", "Signal", "Tech", "Fund", "Risk", "Vol", "Beta")
	fmt.Fprintf(w, "  %s\n", strings.Repeat("-", 72))

	for _, r := range results {
		vol, beta := "---", "---"
		if m := r.Risk.Metrics; m != nil {
			if m.Volatility != nil {
				vol = fmt.Sprintf("%.0f%%", *m.Volatility*100)
			}
			beta = na(m.Beta, "%.2f")
		}
		fmt.Fprintf(w, "  %-7s %+6.2f  [%s] %-13s %+4d  %+4d  %+4d %6s %6s\n",
			r.Symbol, r.CombinedScore, icon(r.CombinedSignal), r.CombinedSignal,
			r.Technical.Score, r.Fundamental.Score, r.Risk.Score, vol, beta)
	}
	fmt.Fprintf(w, "%s\n\n", line)
}

// CorrelationMatrix prints the pairwise return correlations as a compact
// ASCII grid.
func CorrelationMatrix(w io.Writer, m riskmetrics.Matrix) {
	if m.Empty() {
		fmt.Fprintln(w, "(Correlation matrix unavailable)")
		return
	}

	line := strings.Repeat("=", 75)
	fmt.Fprintf(w, "\n%s\n", line)
	fmt.Fprintf(w, "  RETURN CORRELATION MATRIX  (daily returns)\n")
	fmt.Fprintf(w, "  1.00=perfect  0.90+=high  0.50-0.89=medium  <0.50=low\n")
	fmt.Fprintf(w, "%s\n", line)

	fmt.Fprintf(w, "  %6s", "")
	for _, s := range m.Symbols {
		fmt.Fprintf(w, " %6s", s)
	}
	fmt.Fprintln(w)

	for i, rowSym := range m.Symbols {
		fmt.Fprintf(w, "  %6s", rowSym)
		for j := range m.Symbols {
			fmt.Fprintf(w, " %6.2f", m.Values[i][j])
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}
