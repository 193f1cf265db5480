package fundamentals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/spyglass/internal/clients/finnhub"
)

// ErrUnknownSymbol is returned when a symbol has no baseline entry.
var ErrUnknownSymbol = errors.New("no baseline data for symbol")

// Service assembles fundamental metrics from the baseline table, optionally
// enriched with live Finnhub performance figures.
type Service struct {
	finnhub *finnhub.Client
	repo    *Repository
	log     zerolog.Logger
}

// NewService creates a fundamentals service. finnhub may be nil when no API
// key is configured; live enrichment is then skipped. repo may be nil to
// disable persistence.
func NewService(fh *finnhub.Client, repo *Repository, log zerolog.Logger) *Service {
	return &Service{
		finnhub: fh,
		repo:    repo,
		log:     log.With().Str("component", "fundamentals").Logger(),
	}
}

// GetMetrics returns the fundamental picture for a symbol. With
// includePerformance set, Finnhub's 52-week figures are merged in; failures
// there degrade to baseline-only data rather than erroring.
func (s *Service) GetMetrics(ctx context.Context, symbol string, includePerformance bool) (*Metrics, error) {
	baseline, ok := Baselines[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}

	yield := baseline.YieldPct
	er := baseline.ExpenseRatio
	m := &Metrics{
		Symbol:        symbol,
		ETFType:       baseline.Type,
		PERatio:       baseline.PE,
		DividendYield: &yield,
		ExpenseRatio:  &er,
		Source:        "baseline",
		Date:          time.Now().Format("2006-01-02"),
	}

	if includePerformance && s.finnhub != nil {
		perf, err := s.finnhub.GetPerformance(ctx, symbol)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", symbol).Msg("Performance enrichment failed, using baseline only")
		} else if perf != nil {
			m.Week52Return = perf.Week52Return
			m.Week52High = perf.Week52High
			m.Week52Low = perf.Week52Low
			m.YTDReturn = perf.YTDReturn
			m.Beta = perf.Beta
			m.Source = "baseline+finnhub"
		}
	}

	if s.repo != nil {
		if err := s.repo.StoreMetrics(m); err != nil {
			s.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to persist financial metrics")
		}
	}

	return m, nil
}
