package scoring

import (
	"fmt"

	"github.com/aristath/spyglass/internal/modules/fundamentals"
)

// FundamentalResult is the scored fundamental picture for one ETF.
type FundamentalResult struct {
	Symbol          string
	ETFType         fundamentals.ETFType
	Signal          Signal
	Score           int
	ComponentScores map[string]int
	Reasons         []string
	Metrics         *fundamentals.Metrics
	RiskFreeRatePct float64
}

// ScoreFundamental maps an ETF's fundamentals to a [-5,+5] score:
// valuation and yield worth [-2,+2] each, expense ratio [-1,+1].
// riskFreeAnnual is a fraction (0.045 = 4.5%); bond-fund yield is scored
// as a spread over it.
func ScoreFundamental(m *fundamentals.Metrics, riskFreeAnnual float64) FundamentalResult {
	rfPct := riskFreeAnnual * 100

	valScore, valReasons := scoreValuation(m)
	yieldScore, yieldReasons := scoreYield(m, rfPct)
	erScore, erReasons := scoreExpenseRatio(m)

	total := valScore + yieldScore + erScore

	reasons := make([]string, 0, 3)
	reasons = append(reasons, valReasons...)
	reasons = append(reasons, yieldReasons...)
	reasons = append(reasons, erReasons...)

	return FundamentalResult{
		Symbol:  m.Symbol,
		ETFType: m.ETFType,
		Signal:  fundamentalSignal(total),
		Score:   total,
		ComponentScores: map[string]int{
			"valuation":     valScore,
			"yield":         yieldScore,
			"expense_ratio": erScore,
		},
		Reasons:         reasons,
		Metrics:         m,
		RiskFreeRatePct: rfPct,
	}
}

// scoreValuation compares P/E against type-adjusted thresholds. Bond funds
// have no meaningful P/E and always score neutral.
func scoreValuation(m *fundamentals.Metrics) (int, []string) {
	if m.ETFType == fundamentals.TypeBond {
		return 0, []string{"Valuation: P/E not applicable for bond ETF (0)"}
	}
	if m.PERatio == nil {
		return 0, []string{"Valuation: P/E data unavailable (0)"}
	}

	pe := *m.PERatio
	t := fundamentals.ThresholdsFor(m.ETFType)

	switch {
	case pe < t.Cheap:
		return 2, []string{fmt.Sprintf("Valuation: P/E=%.1f — cheap vs %s peers (threshold <%g) +2", pe, m.ETFType, t.Cheap)}
	case pe < t.FairHigh:
		return 1, []string{fmt.Sprintf("Valuation: P/E=%.1f — fair value (%g–%g) +1", pe, t.Cheap, t.FairHigh)}
	case pe < t.Expensive:
		return -1, []string{fmt.Sprintf("Valuation: P/E=%.1f — stretched (%g–%g) -1", pe, t.FairHigh, t.Expensive)}
	default:
		return -2, []string{fmt.Sprintf("Valuation: P/E=%.1f — expensive (>%g) -2", pe, t.Expensive)}
	}
}

// scoreYield applies a type-dependent policy: bond funds score on spread
// over the risk-free rate, growth funds are not penalized for low yield,
// everything else scores on absolute level.
func scoreYield(m *fundamentals.Metrics, rfPct float64) (int, []string) {
	if m.DividendYield == nil {
		return 0, []string{"Yield: dividend data unavailable (0)"}
	}
	y := *m.DividendYield

	switch m.ETFType {
	case fundamentals.TypeBond:
		spread := y - rfPct
		switch {
		case spread > 1.5:
			return 2, []string{fmt.Sprintf("Yield: %.2f%% — strong spread over %.2f%% T-rate (+%.1f%%) +2", y, rfPct, spread)}
		case spread > 0.3:
			return 1, []string{fmt.Sprintf("Yield: %.2f%% — modest spread over %.2f%% T-rate (+%.1f%%) +1", y, rfPct, spread)}
		case spread >= -0.3:
			return 0, []string{fmt.Sprintf("Yield: %.2f%% — at parity with %.2f%% T-rate (0)", y, rfPct)}
		case spread >= -1.0:
			return -1, []string{fmt.Sprintf("Yield: %.2f%% — below T-rate %.2f%% (%.1f%%) -1", y, rfPct, spread)}
		default:
			return -2, []string{fmt.Sprintf("Yield: %.2f%% — significantly below T-rate %.2f%% (%.1f%%) -2", y, rfPct, spread)}
		}

	case fundamentals.TypeGrowth:
		switch {
		case y >= 1.5:
			return 1, []string{fmt.Sprintf("Yield: %.2f%% — healthy for growth ETF +1", y)}
		case y >= 0.3:
			return 0, []string{fmt.Sprintf("Yield: %.2f%% — typical for growth ETF (0)", y)}
		default:
			return 0, []string{fmt.Sprintf("Yield: %.2f%% — minimal (expected for growth) (0)", y)}
		}

	default:
		switch {
		case y >= 3.0:
			return 2, []string{fmt.Sprintf("Yield: %.2f%% — high income return +2", y)}
		case y >= 1.5:
			return 1, []string{fmt.Sprintf("Yield: %.2f%% — healthy yield +1", y)}
		case y >= 0.5:
			return 0, []string{fmt.Sprintf("Yield: %.2f%% — modest (0)", y)}
		default:
			return -1, []string{fmt.Sprintf("Yield: %.2f%% — very low yield -1", y)}
		}
	}
}

func scoreExpenseRatio(m *fundamentals.Metrics) (int, []string) {
	if m.ExpenseRatio == nil {
		return 0, []string{"Expense Ratio: unknown (0)"}
	}
	er := *m.ExpenseRatio

	switch {
	case er <= 0.05:
		return 1, []string{fmt.Sprintf("Expense Ratio: %.4f%% — ultra-low cost +1", er)}
	case er <= 0.15:
		return 1, []string{fmt.Sprintf("Expense Ratio: %.4f%% — low cost +1", er)}
	case er <= 0.30:
		return 0, []string{fmt.Sprintf("Expense Ratio: %.4f%% — average cost (0)", er)}
	default:
		return -1, []string{fmt.Sprintf("Expense Ratio: %.4f%% — above average cost -1", er)}
	}
}
