// Package collector orchestrates data collection: daily prices, economic
// indicators, and security profiles. One failing symbol or series never
// aborts a run; it is logged and skipped.
package collector

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/spyglass/internal/clients/alphavantage"
	"github.com/aristath/spyglass/internal/clients/finnhub"
	"github.com/aristath/spyglass/internal/clients/fred"
	"github.com/aristath/spyglass/internal/modules/economics"
	"github.com/aristath/spyglass/internal/modules/history"
	"github.com/aristath/spyglass/internal/modules/universe"
)

// Service coordinates the external clients and repositories.
type Service struct {
	prices    *alphavantage.Client
	finnhub   *finnhub.Client
	fred      *fred.Client
	history   *history.Repository
	economics *economics.Repository
	universe  *universe.Repository
	log       zerolog.Logger
}

// NewService wires the collector. Clients may be nil when their API key is
// missing; the corresponding collection step is then skipped.
func NewService(
	prices *alphavantage.Client,
	fh *finnhub.Client,
	fredClient *fred.Client,
	hist *history.Repository,
	econ *economics.Repository,
	univ *universe.Repository,
	log zerolog.Logger,
) *Service {
	return &Service{
		prices:    prices,
		finnhub:   fh,
		fred:      fredClient,
		history:   hist,
		economics: econ,
		universe:  univ,
		log:       log.With().Str("component", "collector").Logger(),
	}
}

// CollectMarketData fetches and stores the daily series for the given
// symbols (the whole universe when empty). outputsize "compact" covers
// recent catch-up; "full" backfills years of history.
func (s *Service) CollectMarketData(ctx context.Context, symbols []string, outputsize string) error {
	if s.prices == nil {
		s.log.Warn().Msg("Alpha Vantage key not set, skipping market data")
		return nil
	}

	if len(symbols) == 0 {
		var err error
		symbols, err = s.universe.TrackedSymbols()
		if err != nil {
			return err
		}
	}
	if len(symbols) == 0 {
		s.log.Warn().Msg("No symbols to collect")
		return nil
	}

	s.log.Info().Int("symbols", len(symbols)).Msg("Collecting market data")

	for _, symbol := range symbols {
		bars, err := s.prices.DailyPrices(ctx, symbol, outputsize)
		if err != nil {
			s.log.Error().Err(err).Str("symbol", symbol).Msg("Skipping symbol")
			continue
		}

		written, err := s.history.UpsertBars(bars)
		if err != nil {
			s.log.Error().Err(err).Str("symbol", symbol).Msg("Failed to store bars")
			continue
		}
		s.log.Info().Str("symbol", symbol).Int("bars", written).Msg("Stored daily prices")
	}

	s.log.Info().Msg("Market data collection complete")
	return nil
}

// CollectEconomicIndicators fetches the last two years of every tracked
// FRED series.
func (s *Service) CollectEconomicIndicators(ctx context.Context) error {
	if s.fred == nil {
		s.log.Warn().Msg("FRED key not set, skipping economic indicators")
		return nil
	}

	indicators, err := s.economics.TrackedCodes()
	if err != nil {
		return err
	}
	if len(indicators) == 0 {
		s.log.Warn().Msg("No economic indicators configured")
		return nil
	}

	start := time.Now().AddDate(-2, 0, 0).Format("2006-01-02")
	s.log.Info().Int("indicators", len(indicators)).Msg("Collecting economic indicators")

	for _, ind := range indicators {
		obs, err := s.fred.GetSeries(ctx, ind.Code, start)
		if err != nil {
			s.log.Error().Err(err).Str("indicator", ind.Code).Msg("Skipping indicator")
			continue
		}

		rows := make([]economics.Observation, len(obs))
		for i, o := range obs {
			rows[i] = economics.Observation{Code: ind.Code, Date: o.Date, Value: o.Value}
		}

		written, err := s.economics.UpsertObservations(ind.Code, rows)
		if err != nil {
			s.log.Error().Err(err).Str("indicator", ind.Code).Msg("Failed to store observations")
			continue
		}
		s.log.Info().Str("indicator", ind.Code).Int("observations", written).Msg("Stored series")
	}

	s.log.Info().Msg("Economic data collection complete")
	return nil
}

// CollectProfiles refreshes security metadata from Finnhub.
func (s *Service) CollectProfiles(ctx context.Context, symbols []string) error {
	if s.finnhub == nil {
		s.log.Warn().Msg("Finnhub key not set, skipping profiles")
		return nil
	}

	if len(symbols) == 0 {
		var err error
		symbols, err = s.universe.TrackedSymbols()
		if err != nil {
			return err
		}
	}

	s.log.Info().Int("symbols", len(symbols)).Msg("Updating security profiles")

	for _, symbol := range symbols {
		profile, err := s.finnhub.GetProfile(ctx, symbol)
		if err != nil {
			s.log.Error().Err(err).Str("symbol", symbol).Msg("Skipping profile")
			continue
		}
		if profile == nil {
			s.log.Warn().Str("symbol", symbol).Msg("No profile available")
			continue
		}

		if err := s.universe.UpdateProfile(symbol, profile.Name, profile.Exchange, profile.Industry, profile.WebURL); err != nil {
			s.log.Error().Err(err).Str("symbol", symbol).Msg("Failed to update profile")
		}
	}

	s.log.Info().Msg("Profile updates complete")
	return nil
}

// RunDaily is the scheduled collection pass: prices and macro data every
// run, profile refresh only on Mondays since metadata barely moves.
func (s *Service) RunDaily(ctx context.Context) {
	if err := s.CollectMarketData(ctx, nil, "compact"); err != nil {
		s.log.Error().Err(err).Msg("Market data collection failed")
	}
	if err := s.CollectEconomicIndicators(ctx); err != nil {
		s.log.Error().Err(err).Msg("Economic data collection failed")
	}
	if time.Now().Weekday() == time.Monday {
		if err := s.CollectProfiles(ctx, nil); err != nil {
			s.log.Error().Err(err).Msg("Profile collection failed")
		}
	}
}
