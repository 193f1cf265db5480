package cli

import (
	"github.com/rs/zerolog"

	"github.com/aristath/spyglass/internal/clients/alphavantage"
	"github.com/aristath/spyglass/internal/clients/finnhub"
	"github.com/aristath/spyglass/internal/clients/fred"
	"github.com/aristath/spyglass/internal/config"
	"github.com/aristath/spyglass/internal/database"
	"github.com/aristath/spyglass/internal/modules/advisor"
	"github.com/aristath/spyglass/internal/modules/analysis"
	"github.com/aristath/spyglass/internal/modules/collector"
	"github.com/aristath/spyglass/internal/modules/economics"
	"github.com/aristath/spyglass/internal/modules/fundamentals"
	"github.com/aristath/spyglass/internal/modules/history"
	"github.com/aristath/spyglass/internal/modules/universe"
	"github.com/aristath/spyglass/pkg/logger"
)

// app holds the fully wired service graph. Every command builds one,
// uses what it needs, and closes it on the way out.
type app struct {
	cfg *config.Config
	log zerolog.Logger
	db  *database.DB

	universe  *universe.Repository
	history   *history.Repository
	economics *economics.Repository
	finnhub   *finnhub.Client

	collector   *collector.Service
	technical   *analysis.TechnicalAnalyst
	fundamental *analysis.FundamentalAnalyst
	risk        *analysis.RiskAnalyst
	advisor     *advisor.Service
	narrator    *advisor.Narrator
}

// newApp loads config, opens the database, and wires every service.
// Clients whose API key is missing come up nil and their features degrade.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(log)

	db, err := database.New(database.Config{Path: cfg.DatabasePath, Name: "spyglass"})
	if err != nil {
		return nil, err
	}

	univ := universe.NewRepository(db, log)
	hist := history.NewRepository(db, log)
	econ := economics.NewRepository(db, log)
	econ.SetFallbackRate(cfg.Analysis.RiskFreeFallback)
	fundRepo := fundamentals.NewRepository(db, log)

	var avClient *alphavantage.Client
	if cfg.AlphaVantageKey != "" {
		avClient = alphavantage.NewClient(cfg.AlphaVantageKey, log)
	}
	var fhClient *finnhub.Client
	if cfg.FinnhubKey != "" {
		fhClient = finnhub.NewClient(cfg.FinnhubKey, log)
	}
	var fredClient *fred.Client
	if cfg.FREDKey != "" {
		fredClient = fred.NewClient(cfg.FREDKey, log)
	}

	fundService := fundamentals.NewService(fhClient, fundRepo, log)

	tech := analysis.NewTechnicalAnalyst(hist, univ, log)
	fund := analysis.NewFundamentalAnalyst(fundService, econ, univ, log)
	risk := analysis.NewRiskAnalyst(hist, econ, univ, cfg.Analysis.BenchmarkSymbol, log)

	narrator := advisor.NewNarrator(cfg.AnthropicKey, cfg.NarrativeModel, cfg.BriefingModel, log)
	advRepo := advisor.NewRepository(db, log)
	weights := advisor.Weights{
		Technical:   cfg.Analysis.WeightTechnical,
		Fundamental: cfg.Analysis.WeightFundamental,
		Risk:        cfg.Analysis.WeightRisk,
	}
	adv := advisor.NewService(tech, fund, risk, econ, univ, advRepo, narrator, weights, log)

	coll := collector.NewService(avClient, fhClient, fredClient, hist, econ, univ, log)

	return &app{
		cfg:         cfg,
		log:         log,
		db:          db,
		universe:    univ,
		history:     hist,
		economics:   econ,
		finnhub:     fhClient,
		collector:   coll,
		technical:   tech,
		fundamental: fund,
		risk:        risk,
		advisor:     adv,
		narrator:    narrator,
	}, nil
}

func (a *app) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Error().Err(err).Msg("Failed to close database")
		}
	}
}
