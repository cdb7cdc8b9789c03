// Package portaltest creates applications and authors for tests of the portal context.
package portaltest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/domains/portal/adapters/persistence/sqlstore"
	"github.com/fbraem/kwai/internal/domains/portal/domain"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

// CreateApplication stores an application that can contain news, pages and events.
func CreateApplication(t testing.TB, db *database.Database, name string) domain.Application {
	t.Helper()
	application, err := sqlstore.NewApplicationRepository(db).Create(context.Background(), domain.Application{
		Title:            name,
		Name:             name,
		ShortDescription: "Application " + name,
		CanContainNews:   true,
		CanContainPages:  true,
		CanContainEvents: true,
		TraceableTime:    kernel.NewTraceableTime(),
	})
	require.NoError(t, err)
	return application
}

// CreateAuthor registers owner as an active author.
func CreateAuthor(t testing.TB, db *database.Database, owner kernel.Owner) domain.Author {
	t.Helper()
	author := domain.Author{
		Entity:        kernel.NewEntity(owner.ID),
		UUID:          owner.UUID,
		Name:          owner.Name.String(),
		Active:        true,
		TraceableTime: kernel.NewTraceableTime(),
	}
	require.NoError(t, sqlstore.NewAuthorRepository(db).Create(context.Background(), author))
	return author
}
