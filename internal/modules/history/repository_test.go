package history

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

func bar(symbol, date string, close float64) PriceBar {
	return PriceBar{
		Symbol: symbol, Date: date,
		Open: close, High: close, Low: close, Close: close,
		AdjustedClose: close, Volume: 1000, DataSource: "test",
	}
}

func TestUpsertBarsAndGetDailySeries(t *testing.T) {
	repo := newTestRepo(t)

	written, err := repo.UpsertBars([]PriceBar{
		bar("VTI", "2025-01-02", 240),
		bar("VTI", "2025-01-03", 241),
		bar("VTI", "2025-01-06", 239),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, written)

	bars, err := repo.GetDailySeries("VTI", 252)
	require.NoError(t, err)
	require.Len(t, bars, 3)

	// Ascending dates regardless of storage order
	assert.Equal(t, "2025-01-02", bars[0].Date)
	assert.Equal(t, "2025-01-06", bars[2].Date)
	assert.Equal(t, 239.0, bars[2].Close)
}

func TestUpsertBarsReplacesOnConflict(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.UpsertBars([]PriceBar{bar("SPY", "2025-01-02", 500)})
	require.NoError(t, err)

	// Same (symbol, date), revised close
	_, err = repo.UpsertBars([]PriceBar{bar("SPY", "2025-01-02", 505)})
	require.NoError(t, err)

	bars, err := repo.GetDailySeries("SPY", 10)
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, 505.0, bars[0].Close)
}

func TestGetDailySeriesHonorsLookbackWindow(t *testing.T) {
	repo := newTestRepo(t)

	dates := []string{"2025-01-02", "2025-01-03", "2025-01-06", "2025-01-07", "2025-01-08"}
	var bars []PriceBar
	for i, d := range dates {
		bars = append(bars, bar("QQQ", d, 400+float64(i)))
	}
	_, err := repo.UpsertBars(bars)
	require.NoError(t, err)

	got, err := repo.GetDailySeries("QQQ", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// The window keeps the most recent bars, still ascending
	assert.Equal(t, "2025-01-06", got[0].Date)
	assert.Equal(t, "2025-01-08", got[2].Date)
}

func TestGetDailySeriesNoData(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetDailySeries("MISSING", 252)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestLatestDate(t *testing.T) {
	repo := newTestRepo(t)

	date, err := repo.LatestDate("VTI")
	require.NoError(t, err)
	assert.Empty(t, date)

	_, err = repo.UpsertBars([]PriceBar{
		bar("VTI", "2025-01-02", 240),
		bar("VTI", "2025-01-03", 241),
	})
	require.NoError(t, err)

	date, err = repo.LatestDate("VTI")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-03", date)
}
