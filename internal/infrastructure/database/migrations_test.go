package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrationsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, SQLiteConfig{Path: filepath.Join(t.TempDir(), "archive.db")})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(db, nil))
	require.NoError(t, RunMigrations(db, nil))

	version, dirty, err := MigrationVersion(db)
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)

	_, err = db.ExecContext(ctx, `INSERT INTO changelog_archive
		(id, type, payload, occurred_at, archived_at, person_id) VALUES ('1', 'sms_sent', '{}', 'now', 0, 'att_001')`)
	assert.NoError(t, err)
}

func TestRollbackMigrations(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, SQLiteConfig{Path: filepath.Join(t.TempDir(), "archive.db")})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(db, nil))
	require.NoError(t, RollbackMigrations(db, 1, nil))

	version, _, err := MigrationVersion(db)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	require.NoError(t, RollbackMigrations(db, 0, nil))
	version, _, err = MigrationVersion(db)
	require.NoError(t, err)
	assert.Zero(t, version)
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	_, err := OpenSQLite(context.Background(), SQLiteConfig{})
	assert.Error(t, err)
}
