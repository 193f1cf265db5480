package advisor

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/spyglass/internal/modules/analysis"
	"github.com/aristath/spyglass/internal/modules/economics"
	"github.com/aristath/spyglass/internal/modules/universe"
)

// Service orchestrates the three analysts, combines their signals, and
// optionally narrates and persists the result.
type Service struct {
	technical   *analysis.TechnicalAnalyst
	fundamental *analysis.FundamentalAnalyst
	risk        *analysis.RiskAnalyst
	economics   *economics.Repository
	universe    *universe.Repository
	repo        *Repository
	narrator    *Narrator
	weights     Weights
	log         zerolog.Logger
}

// NewService wires the portfolio advisor. narrator may be nil (no API key);
// repo may be nil to disable persistence.
func NewService(
	tech *analysis.TechnicalAnalyst,
	fund *analysis.FundamentalAnalyst,
	risk *analysis.RiskAnalyst,
	econ *economics.Repository,
	univ *universe.Repository,
	repo *Repository,
	narrator *Narrator,
	weights Weights,
	log zerolog.Logger,
) *Service {
	return &Service{
		technical:   tech,
		fundamental: fund,
		risk:        risk,
		economics:   econ,
		universe:    univ,
		repo:        repo,
		narrator:    narrator,
		weights:     weights,
		log:         log.With().Str("component", "portfolio_advisor").Logger(),
	}
}

// RunAll analyzes every tracked symbol with all three families and returns
// combined results sorted best first.
func (s *Service) RunAll(ctx context.Context, days int) ([]CombinedResult, error) {
	symbols, err := s.universe.TrackedSymbols()
	if err != nil {
		return nil, err
	}

	riskFree := s.economics.RiskFreeRate()
	s.log.Info().Int("symbols", len(symbols)).Msg("Running full analysis")

	results := make([]CombinedResult, 0, len(symbols))
	for _, symbol := range symbols {
		s.log.Info().Str("symbol", symbol).Msg("Combining signals")
		tech := s.technical.Analyze(symbol, days)
		fund := s.fundamental.Analyze(ctx, symbol, false)
		risk := s.risk.Analyze(symbol, days, riskFree)
		results = append(results, Combine(symbol, tech, fund, risk, s.weights))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CombinedScore > results[j].CombinedScore
	})
	return results, nil
}

// Briefing generates the LLM daily briefing for a set of combined results.
// Returns empty string when narration is disabled.
func (s *Service) Briefing(ctx context.Context, results []CombinedResult) (string, error) {
	if s.narrator == nil {
		s.log.Warn().Msg("Narrator disabled, skipping briefing")
		return "", nil
	}

	econ, err := s.economics.Context()
	if err != nil {
		return "", err
	}

	today := time.Now().Format("2006-01-02")
	return s.narrator.DailyBriefing(ctx, today, results, econ)
}

// Save persists a run's briefing and recommendations. No-op when
// persistence is disabled.
func (s *Service) Save(briefing string, results []CombinedResult) (string, error) {
	if s.repo == nil {
		return "", nil
	}
	return s.repo.SaveRun(time.Now().Format("2006-01-02"), briefing, results)
}
