package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateSQLiteIsIdempotent(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "directory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db))

	for _, table := range []string{"Venue", "Artist", "Show"} {
		var name string
		err := db.GetContext(ctx, &name, "SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table)
		require.NoError(t, err)
		assert.Equal(t, table, name)
	}
}

func TestSQLiteEnforcesForeignKeys(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "directory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db))

	_, err = db.ExecContext(ctx, "INSERT INTO `Show` (start_time, artist_id, venue_id) VALUES (?, ?, ?)",
		"2026-01-01 20:00:00", 99, 99)
	assert.Error(t, err)
}

func TestSQLiteLowerFoldsUnicode(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "directory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var got string
	require.NoError(t, db.Get(&got, "SELECT "+SQLiteLower+"(?)", "CAFÉ Émile"))
	assert.Equal(t, "café émile", got)

	var null *string
	require.NoError(t, db.Get(&null, "SELECT "+SQLiteLower+"(NULL)"))
	assert.Nil(t, null)
}
