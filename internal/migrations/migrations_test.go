package migrations

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApply_IsIdempotent(t *testing.T) {
	dsn := os.Getenv("UES_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("UES_TEST_DATABASE_URL not set, skipping migration integration test")
	}

	require.NoError(t, Apply(dsn))
	require.NoError(t, Apply(dsn), "re-applying an already-current schema must be a no-op, not an error")
}
