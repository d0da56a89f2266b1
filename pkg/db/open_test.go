package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()

	database, err := Open(ctx, DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.RunMigrations(ctx))

	entries, err := database.ListAuditEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "mongo", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"mongo"`)
}
