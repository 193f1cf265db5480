// Package config provides configuration management functionality.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	DataDir         string // Base directory for the database and briefing output
	DatabasePath    string // SQLite database file (defaults to <DataDir>/spyglass.db)
	LogLevel        string
	LogPretty       bool
	AlphaVantageKey string
	FinnhubKey      string
	FREDKey         string
	AnthropicKey    string
	NarrativeModel  string // Cheap model for per-symbol narratives
	BriefingModel   string // Stronger model for the daily briefing
	CollectionCron  string // Cron expression for the daily collection job
	Analysis        AnalysisConfig
}

// AnalysisConfig carries the knobs the analysis core accepts as parameters.
// It is passed explicitly to the analysts rather than read from globals.
type AnalysisConfig struct {
	LookbackDays      int     // Trading-day window for indicators and risk metrics
	RiskFreeFallback  float64 // Annual risk-free rate used when no GS10 data is stored
	BenchmarkSymbol   string  // Benchmark for beta
	WeightTechnical   float64
	WeightFundamental float64
	WeightRisk        float64
}

// DefaultAnalysis returns the standard analysis parameters:
// 1-year lookback, SPY benchmark, 40/30/30 combination weights.
func DefaultAnalysis() AnalysisConfig {
	return AnalysisConfig{
		LookbackDays:      252,
		RiskFreeFallback:  0.045,
		BenchmarkSymbol:   "SPY",
		WeightTechnical:   0.40,
		WeightFundamental: 0.30,
		WeightRisk:        0.30,
	}
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present (missing .env is not an error).
func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir := getEnv("SPYGLASS_DATA_DIR", "./data")
	dbPath := getEnv("SPYGLASS_DB_PATH", "")
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "spyglass.db")
	}

	cfg := &Config{
		DataDir:         dataDir,
		DatabasePath:    dbPath,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogPretty:       getEnvBool("LOG_PRETTY", true),
		AlphaVantageKey: os.Getenv("ALPHA_VANTAGE_API_KEY"),
		FinnhubKey:      os.Getenv("FINNHUB_API_KEY"),
		FREDKey:         os.Getenv("FRED_API_KEY"),
		AnthropicKey:    os.Getenv("ANTHROPIC_API_KEY"),
		NarrativeModel:  getEnv("SPYGLASS_NARRATIVE_MODEL", "claude-haiku-4-5"),
		BriefingModel:   getEnv("SPYGLASS_BRIEFING_MODEL", "claude-sonnet-4-5"),
		CollectionCron:  getEnv("SPYGLASS_COLLECTION_CRON", "30 22 * * MON-FRI"),
		Analysis:        DefaultAnalysis(),
	}

	if days := getEnvInt("SPYGLASS_LOOKBACK_DAYS", 0); days > 0 {
		cfg.Analysis.LookbackDays = days
	}
	if bench := os.Getenv("SPYGLASS_BENCHMARK"); bench != "" {
		cfg.Analysis.BenchmarkSymbol = bench
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
