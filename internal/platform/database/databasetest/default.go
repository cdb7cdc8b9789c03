//go:build !integration

package databasetest

import (
	"testing"

	"github.com/fbraem/kwai/internal/platform/database"
)

// New returns the database repository tests run against. Builds with the
// integration tag use a PostgreSQL container instead of SQLite.
func New(t *testing.T) *database.Database {
	t.Helper()
	return NewSQLite(t)
}
