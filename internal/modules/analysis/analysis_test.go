package analysis

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/spyglass/internal/database"
	"github.com/aristath/spyglass/internal/modules/economics"
	"github.com/aristath/spyglass/internal/modules/history"
	"github.com/aristath/spyglass/internal/modules/scoring"
	"github.com/aristath/spyglass/internal/modules/universe"
)

type testEnv struct {
	history   *history.Repository
	economics *economics.Repository
	universe  *universe.Repository
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	db, err := database.New(database.Config{Path: "file::memory:", Name: "test"})
	require.NoError(t, err)
	require.NoError(t, db.InitSchema())
	t.Cleanup(func() { db.Close() })

	log := zerolog.New(nil).Level(zerolog.Disabled)
	return testEnv{
		history:   history.NewRepository(db, log),
		economics: economics.NewRepository(db, log),
		universe:  universe.NewRepository(db, log),
	}
}

// seedSeries stores n daily bars walking a gentle sine around base.
func seedSeries(t *testing.T, env testEnv, symbol string, n int, base float64) {
	t.Helper()
	start := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	bars := make([]history.PriceBar, n)
	for i := 0; i < n; i++ {
		close := base + 5*math.Sin(float64(i)/15)
		bars[i] = history.PriceBar{
			Symbol: symbol,
			Date:   start.AddDate(0, 0, i).Format("2006-01-02"),
			Open:   close, High: close + 1, Low: close - 1, Close: close,
			AdjustedClose: close,
			Volume:        1000 + int64(i%7)*100,
			DataSource:    "test",
		}
	}
	_, err := env.history.UpsertBars(bars)
	require.NoError(t, err)
}

func TestTechnicalAnalyzeMissingSymbol(t *testing.T) {
	env := newTestEnv(t)
	log := zerolog.New(nil).Level(zerolog.Disabled)
	analyst := NewTechnicalAnalyst(env.history, env.universe, log)

	r := analyst.Analyze("GHOST", 252)

	assert.Equal(t, "GHOST", r.Symbol)
	assert.Equal(t, scoring.SignalError, r.Signal)
	assert.Zero(t, r.Score)
	require.NotEmpty(t, r.Reasons)
}

func TestTechnicalAnalyzeStoredSeries(t *testing.T) {
	env := newTestEnv(t)
	seedSeries(t, env, "VTI", 300, 240)

	log := zerolog.New(nil).Level(zerolog.Disabled)
	analyst := NewTechnicalAnalyst(env.history, env.universe, log)

	r := analyst.Analyze("VTI", 252)

	assert.NotEqual(t, scoring.SignalError, r.Signal)
	assert.NotEmpty(t, r.Reasons)
	assert.NotNil(t, r.KeyValues.RSI, "252 bars is enough for every indicator")
	assert.NotNil(t, r.KeyValues.SMA200)
}

func TestRiskAnalyzeWithoutBenchmark(t *testing.T) {
	env := newTestEnv(t)
	seedSeries(t, env, "QQQ", 120, 400)

	log := zerolog.New(nil).Level(zerolog.Disabled)
	analyst := NewRiskAnalyst(env.history, env.economics, env.universe, "SPY", log)

	// SPY has no stored data: beta stays undefined, everything else scores
	r := analyst.Analyze("QQQ", 252, 0.045)

	assert.NotEqual(t, scoring.LevelError, r.Level)
	require.NotNil(t, r.Metrics)
	assert.Nil(t, r.Metrics.Beta)
	assert.NotNil(t, r.Metrics.Volatility)
}

func TestRiskAnalyzeMissingSymbol(t *testing.T) {
	env := newTestEnv(t)
	log := zerolog.New(nil).Level(zerolog.Disabled)
	analyst := NewRiskAnalyst(env.history, env.economics, env.universe, "SPY", log)

	r := analyst.Analyze("GHOST", 252, 0.045)

	assert.Equal(t, scoring.LevelError, r.Level)
	assert.Zero(t, r.Score)
}

func TestAnalyzeAllOrdersByScore(t *testing.T) {
	env := newTestEnv(t)

	for i, symbol := range []string{"AAA", "BBB", "CCC"} {
		require.NoError(t, env.universe.Upsert(universe.Security{
			Symbol: symbol, Name: symbol, ETFType: "blend", IsActive: true,
		}))
		seedSeries(t, env, symbol, 300, 100+float64(i)*50)
	}

	log := zerolog.New(nil).Level(zerolog.Disabled)
	analyst := NewTechnicalAnalyst(env.history, env.universe, log)

	results, err := analyst.AnalyzeAll(252)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score,
			fmt.Sprintf("results[%d] out of order", i))
	}
}

func TestCorrelationMatrixSkipsMissingSymbols(t *testing.T) {
	env := newTestEnv(t)
	seedSeries(t, env, "VTI", 100, 240)
	seedSeries(t, env, "QQQ", 100, 400)

	log := zerolog.New(nil).Level(zerolog.Disabled)
	analyst := NewRiskAnalyst(env.history, env.economics, env.universe, "SPY", log)

	m, err := analyst.CorrelationMatrix([]string{"VTI", "QQQ", "GHOST"}, 252)
	require.NoError(t, err)
	assert.False(t, m.Empty())
	assert.Equal(t, []string{"QQQ", "VTI"}, m.Symbols)
}
