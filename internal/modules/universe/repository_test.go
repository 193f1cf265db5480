package universe

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

func TestUpsertAndGet(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.Upsert(Security{
		Symbol: "VTI", Name: "Vanguard Total Stock Market", ETFType: "blend", IsActive: true,
	})
	require.NoError(t, err)

	s, err := repo.Get("VTI")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "Vanguard Total Stock Market", s.Name)
	assert.Equal(t, "blend", s.ETFType)
	assert.True(t, s.IsActive)
}

func TestGetUnknownSymbol(t *testing.T) {
	repo := newTestRepo(t)

	s, err := repo.Get("NOPE")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestTrackedSymbolsSkipsInactive(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.Upsert(Security{Symbol: "VTI", Name: "VTI", ETFType: "blend", IsActive: true}))
	require.NoError(t, repo.Upsert(Security{Symbol: "BND", Name: "BND", ETFType: "bond", IsActive: true}))
	require.NoError(t, repo.Upsert(Security{Symbol: "OLD", Name: "OLD", ETFType: "blend", IsActive: false}))

	symbols, err := repo.TrackedSymbols()
	require.NoError(t, err)
	assert.Equal(t, []string{"BND", "VTI"}, symbols)
}

func TestUpdateProfileKeepsExistingOnEmpty(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.Upsert(Security{Symbol: "SPY", Name: "SPDR S&P 500", ETFType: "blend", IsActive: true}))
	require.NoError(t, repo.UpdateProfile("SPY", "", "ARCX", "Index Funds", "https://www.ssga.com"))

	s, err := repo.Get("SPY")
	require.NoError(t, err)
	require.NotNil(t, s)

	// Empty profile name must not wipe the stored one
	assert.Equal(t, "SPDR S&P 500", s.Name)
	require.NotNil(t, s.Exchange)
	assert.Equal(t, "ARCX", *s.Exchange)
	require.NotNil(t, s.Sector)
	assert.Equal(t, "Index Funds", *s.Sector)
}
