// Package scoring turns indicator snapshots, fundamental metrics, and risk
// profiles into bounded integer scores with categorical signals. Every rule
// is deterministic and records a human-readable reason used later for
// narrative generation.
package scoring

// Signal is the 5-level ordinal recommendation, plus ERROR for symbols
// whose data could not be analyzed at all.
type Signal string

const (
	StrongBuy   Signal = "STRONG BUY"
	Buy         Signal = "BUY"
	Neutral     Signal = "NEUTRAL"
	Sell        Signal = "SELL"
	StrongSell  Signal = "STRONG SELL"
	SignalError Signal = "ERROR"
)

// RiskLevel classifies a symbol's risk score. Higher score = safer.
type RiskLevel string

const (
	Conservative RiskLevel = "CONSERVATIVE"
	Moderate     RiskLevel = "MODERATE"
	Elevated     RiskLevel = "ELEVATED"
	HighRisk     RiskLevel = "HIGH RISK"
	LevelError   RiskLevel = "ERROR"
)

// Score maxima per family; combined scoring normalizes against these.
const (
	TechnicalMax   = 10
	FundamentalMax = 5
	RiskMax        = 6
)

func technicalSignal(score int) Signal {
	switch {
	case score >= 6:
		return StrongBuy
	case score >= 2:
		return Buy
	case score >= -1:
		return Neutral
	case score >= -5:
		return Sell
	default:
		return StrongSell
	}
}

func fundamentalSignal(score int) Signal {
	switch {
	case score >= 4:
		return StrongBuy
	case score >= 2:
		return Buy
	case score >= -1:
		return Neutral
	case score >= -3:
		return Sell
	default:
		return StrongSell
	}
}

func riskLevel(score int) RiskLevel {
	switch {
	case score >= 4:
		return Conservative
	case score >= 1:
		return Moderate
	case score >= -2:
		return Elevated
	default:
		return HighRisk
	}
}
