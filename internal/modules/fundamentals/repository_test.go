package fundamentals

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/spyglass/internal/database"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := database.New(database.Config{Path: "file::memory:", Name: "test"})
	require.NoError(t, err)
	require.NoError(t, db.InitSchema())
	t.Cleanup(func() { db.Close() })

	return NewRepository(db, zerolog.New(nil).Level(zerolog.Disabled))
}

func f(v float64) *float64 { return &v }

func TestStoreMetricsAndLatest(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.StoreMetrics(&Metrics{
		Symbol: "SPY", Date: "2025-08-28",
		PERatio: f(23.5), DividendYield: f(1.3), ExpenseRatio: f(0.0945),
	}))
	require.NoError(t, repo.StoreMetrics(&Metrics{
		Symbol: "SPY", Date: "2025-08-29",
		PERatio: f(23.8), DividendYield: f(1.3), ExpenseRatio: f(0.0945),
	}))

	m, err := repo.Latest("SPY")
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Equal(t, "2025-08-29", m.Date)
	require.NotNil(t, m.PERatio)
	assert.Equal(t, 23.8, *m.PERatio)
	assert.Equal(t, TypeBlend, m.ETFType, "type comes from the baseline table")
	assert.Equal(t, "stored", m.Source)
}

func TestStoreMetricsNilFields(t *testing.T) {
	repo := newTestRepo(t)

	// Bond funds have no P/E
	require.NoError(t, repo.StoreMetrics(&Metrics{
		Symbol: "BND", Date: "2025-08-29",
		DividendYield: f(4.1), ExpenseRatio: f(0.03),
	}))

	m, err := repo.Latest("BND")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Nil(t, m.PERatio)
	assert.Equal(t, TypeBond, m.ETFType)
}

func TestLatestNoData(t *testing.T) {
	repo := newTestRepo(t)

	m, err := repo.Latest("QQQ")
	require.NoError(t, err)
	assert.Nil(t, m)
}
