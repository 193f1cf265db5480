package advisor

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/spyglass/internal/database"
	"github.com/aristath/spyglass/internal/modules/scoring"
)

// Repository persists briefings and per-symbol recommendations. Every save
// shares a run ID so one day's output can be queried as a unit.
type Repository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewRepository creates a new recommendations repository.
func NewRepository(db *database.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("component", "advisor_repo").Logger(),
	}
}

// recommendationType flattens the 5-level signal to the stored BUY/HOLD/SELL
// action. ERROR and unknown signals default to HOLD.
func recommendationType(s scoring.Signal) string {
	switch s {
	case scoring.StrongBuy, scoring.Buy:
		return "BUY"
	case scoring.Sell, scoring.StrongSell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// confidence maps a combined score in [-1,+1] to [0,1], clamped.
func confidence(combinedScore float64) float64 {
	c := (combinedScore + 1) / 2
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

type signalSummary struct {
	Symbol        string  `json:"symbol"`
	CombinedScore float64 `json:"combined_score"`
	Signal        string  `json:"signal"`
}

type briefingData struct {
	Date       string          `json:"date"`
	TopSymbols []string        `json:"top_symbols"`
	AllSignals []signalSummary `json:"all_signals"`
}

type symbolData struct {
	TechnicalScore   int     `json:"technical_score"`
	FundamentalScore int     `json:"fundamental_score"`
	RiskScore        int     `json:"risk_score"`
	CombinedScore    float64 `json:"combined_score"`
}

// SaveRun stores the briefing (symbol NULL, type BRIEFING) plus one
// combined recommendation per symbol, all under a fresh run ID. The
// briefing may be empty when narration was skipped. Returns the run ID.
func (r *Repository) SaveRun(date, briefing string, results []CombinedResult) (string, error) {
	runID := uuid.NewString()

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if briefing != "" {
		summary := briefingData{Date: date, TopSymbols: symbolsOf(results, 3, false)}
		for _, res := range results {
			summary.AllSignals = append(summary.AllSignals, signalSummary{
				Symbol:        res.Symbol,
				CombinedScore: res.CombinedScore,
				Signal:        string(res.CombinedSignal),
			})
		}
		payload, err := json.Marshal(summary)
		if err != nil {
			return "", fmt.Errorf("failed to marshal briefing data: %w", err)
		}

		_, err = tx.Exec(`
			INSERT INTO agent_recommendations
				(id, run_id, agent_name, symbol, recommendation_type,
				 confidence_score, reasoning, supporting_data)
			VALUES (?, ?, 'portfolio_advisor', NULL, 'BRIEFING', 1.0, ?, ?)`,
			uuid.NewString(), runID, briefing, string(payload))
		if err != nil {
			return "", fmt.Errorf("failed to save briefing: %w", err)
		}
	}

	for _, res := range results {
		payload, err := json.Marshal(symbolData{
			TechnicalScore:   res.Technical.Score,
			FundamentalScore: res.Fundamental.Score,
			RiskScore:        res.Risk.Score,
			CombinedScore:    res.CombinedScore,
		})
		if err != nil {
			return "", fmt.Errorf("failed to marshal data for %s: %w", res.Symbol, err)
		}

		reasoning := fmt.Sprintf("Combined: %s (%+.2f). Tech: %s, Fund: %s, Risk: %s",
			res.CombinedSignal, res.CombinedScore,
			res.Technical.Signal, res.Fundamental.Signal, res.Risk.Level)

		_, err = tx.Exec(`
			INSERT INTO agent_recommendations
				(id, run_id, agent_name, symbol, recommendation_type,
				 confidence_score, reasoning, supporting_data)
			VALUES (?, ?, 'portfolio_advisor', ?, ?, ?, ?, ?)`,
			uuid.NewString(), runID, res.Symbol,
			recommendationType(res.CombinedSignal),
			confidence(res.CombinedScore),
			reasoning, string(payload))
		if err != nil {
			return "", fmt.Errorf("failed to save recommendation for %s: %w", res.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit recommendations: %w", err)
	}

	r.log.Info().Str("run_id", runID).Int("symbols", len(results)).Msg("Saved recommendations")
	return runID, nil
}
