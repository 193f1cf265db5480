// Package fundamentals assembles per-ETF fundamental metrics: P/E, dividend
// yield, and expense ratio from a maintained baseline table, optionally
// enriched with live 52-week performance data.
//
// The baselines are hardcoded because free-tier market APIs return no P/E or
// yield data for ETFs. Values come from the fund providers' own pages and
// change slowly; they are reviewed quarterly.
package fundamentals

// ETFType categorizes a fund for threshold selection. Bond funds have no
// meaningful P/E; growth funds trade at a structural premium.
type ETFType string

const (
	TypeBond          ETFType = "bond"
	TypeGrowth        ETFType = "growth"
	TypeBlend         ETFType = "blend"
	TypeSector        ETFType = "sector"
	TypeDividend      ETFType = "dividend"
	TypeInternational ETFType = "international"
)

// Baseline is the slow-moving fundamental profile of one ETF.
// PE is nil for bond funds.
type Baseline struct {
	Name         string
	PE           *float64
	YieldPct     float64
	ExpenseRatio float64
	Type         ETFType
}

func pe(v float64) *float64 { return &v }

// Baselines holds the tracked universe. Update quarterly from
// investor.vanguard.com, ishares.com, invesco.com, and ssga.com.
var Baselines = map[string]Baseline{
	"BND":  {Name: "Vanguard Total Bond Market ETF", PE: nil, YieldPct: 4.1, ExpenseRatio: 0.03, Type: TypeBond},
	"QQQ":  {Name: "Invesco QQQ Trust", PE: pe(37.0), YieldPct: 0.6, ExpenseRatio: 0.20, Type: TypeGrowth},
	"SPY":  {Name: "SPDR S&P 500 ETF Trust", PE: pe(23.5), YieldPct: 1.3, ExpenseRatio: 0.0945, Type: TypeBlend},
	"VIG":  {Name: "Vanguard Dividend Appreciation ETF", PE: pe(23.0), YieldPct: 1.8, ExpenseRatio: 0.06, Type: TypeDividend},
	"VTI":  {Name: "Vanguard Total Stock Market ETF", PE: pe(23.0), YieldPct: 1.3, ExpenseRatio: 0.03, Type: TypeBlend},
	"VXUS": {Name: "Vanguard Total International Stock ETF", PE: pe(14.5), YieldPct: 3.0, ExpenseRatio: 0.07, Type: TypeInternational},
	"XLE":  {Name: "Energy Select Sector SPDR Fund", PE: pe(14.0), YieldPct: 3.5, ExpenseRatio: 0.09, Type: TypeSector},
	"XLF":  {Name: "Financial Select Sector SPDR Fund", PE: pe(16.5), YieldPct: 2.0, ExpenseRatio: 0.09, Type: TypeSector},
	"XLI":  {Name: "Industrial Select Sector SPDR Fund", PE: pe(23.0), YieldPct: 1.5, ExpenseRatio: 0.09, Type: TypeSector},
	"XLK":  {Name: "Technology Select Sector SPDR Fund", PE: pe(33.0), YieldPct: 0.7, ExpenseRatio: 0.09, Type: TypeGrowth},
	"XLV":  {Name: "Health Care Select Sector SPDR Fund", PE: pe(21.0), YieldPct: 1.6, ExpenseRatio: 0.09, Type: TypeSector},
}

// PEThreshold defines what counts as cheap or expensive for an ETF type.
type PEThreshold struct {
	Cheap     float64
	FairHigh  float64
	Expensive float64
}

// PEThresholds by ETF type. Bond funds are absent on purpose; valuation
// scoring skips them entirely.
var PEThresholds = map[ETFType]PEThreshold{
	TypeGrowth:        {Cheap: 28, FairHigh: 40, Expensive: 40},
	TypeBlend:         {Cheap: 18, FairHigh: 26, Expensive: 26},
	TypeSector:        {Cheap: 17, FairHigh: 25, Expensive: 25},
	TypeDividend:      {Cheap: 18, FairHigh: 26, Expensive: 26},
	TypeInternational: {Cheap: 12, FairHigh: 18, Expensive: 18},
}

// ThresholdsFor returns the P/E thresholds for a type, falling back to the
// blend row for unknown types.
func ThresholdsFor(t ETFType) PEThreshold {
	if th, ok := PEThresholds[t]; ok {
		return th
	}
	return PEThresholds[TypeBlend]
}
