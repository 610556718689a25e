package sourcedb

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration tests for source database access.
// Run with: go test -v -tags=integration ./internal/sourcedb/...
// Requires ALPHA_TEST_DATABASE_URL / BETA_TEST_DATABASE_URL to point at
// seeded test instances of the ALPHA and BETA schemas.

func setupAlphaTestDB(t *testing.T) (*AlphaDB, context.Context) {
	dsn := os.Getenv("ALPHA_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("ALPHA_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := NewAlphaDB(ctx, dsn)
	require.NoError(t, err, "Failed to connect to ALPHA test database")
	return db, ctx
}

func setupBetaTestDB(t *testing.T) (*BetaDB, context.Context) {
	dsn := os.Getenv("BETA_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("BETA_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := NewBetaDB(ctx, dsn)
	require.NoError(t, err, "Failed to connect to BETA test database")
	return db, ctx
}

func TestAlphaDB_HealthAndList(t *testing.T) {
	db, ctx := setupAlphaTestDB(t)
	defer db.Close()

	require.NoError(t, db.Health(ctx), "ALPHA health check should pass")

	teams, err := db.Teams.List(ctx)
	require.NoError(t, err, "Should list ALPHA teams")
	assert.NotNil(t, teams)
}

func TestBetaDB_HealthAndList(t *testing.T) {
	db, ctx := setupBetaTestDB(t)
	defer db.Close()

	require.NoError(t, db.Health(ctx), "BETA health check should pass")

	teams, err := db.Teams.List(ctx)
	require.NoError(t, err, "Should list BETA teams")
	assert.NotNil(t, teams)
}

func TestAlphaDB_MatchesIncludeRelationalIDs(t *testing.T) {
	db, ctx := setupAlphaTestDB(t)
	defer db.Close()

	matches, err := db.Matches.List(ctx)
	require.NoError(t, err, "Should list ALPHA matches")
	for _, m := range matches {
		assert.NotZero(t, m.CompetitionID)
		assert.NotZero(t, m.SeasonID)
	}
}

func TestBetaDB_PlayersIncludeFootedness(t *testing.T) {
	db, ctx := setupBetaTestDB(t)
	defer db.Close()

	players, err := db.Players.List(ctx)
	require.NoError(t, err, "Should list BETA players")
	for _, p := range players {
		assert.NotEmpty(t, p.FullName)
	}
}
