// Package identitytest creates user accounts for tests of the identity context.
package identitytest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/domains/identity/adapters/persistence/sqlstore"
	"github.com/fbraem/kwai/internal/domains/identity/domain"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

// CreateUserAccount stores an account that can log in with password.
func CreateUserAccount(t testing.TB, db *database.Database, email, password string, admin bool) domain.UserAccount {
	t.Helper()
	address, err := kernel.NewEmailAddress(email)
	require.NoError(t, err)
	hash, err := kernel.HashPassword(password)
	require.NoError(t, err)
	account, err := sqlstore.NewUserAccountRepository(db).Create(context.Background(), domain.UserAccount{
		UUID:          kernel.NewUniqueID(),
		Email:         address,
		Name:          kernel.Name{FirstName: "Jigoro", LastName: "Kano"},
		Password:      hash,
		Admin:         admin,
		TraceableTime: kernel.NewTraceableTime(),
	})
	require.NoError(t, err)
	return account
}
