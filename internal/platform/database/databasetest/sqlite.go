// Package databasetest provides migrated databases for repository tests.
package databasetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/platform/migrations"
	"github.com/fbraem/kwai/internal/platform/sqlite"
)

// NewSQLite returns a database backed by a fresh, migrated SQLite file.
func NewSQLite(t testing.TB) *database.Database {
	t.Helper()
	db, err := sqlite.Connect(context.Background(), filepath.Join(t.TempDir(), "kwai.db"))
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return database.New(db)
}
