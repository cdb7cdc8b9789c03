// Package clubtest creates club members for tests of the contexts building on the club.
package clubtest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/domains/club/adapters/persistence/sqlstore"
	"github.com/fbraem/kwai/internal/domains/club/domain"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

// CreateMember stores an active Belgian member with the given license, name and birthdate.
func CreateMember(t testing.TB, db *database.Database, license string, name kernel.Name, birthdate time.Time) domain.Member {
	t.Helper()
	ctx := context.Background()
	belgium, err := sqlstore.NewCountryRepository(db).GetByISO2(ctx, "BE")
	require.NoError(t, err)
	person := domain.Person{
		Name:        name,
		Gender:      domain.GenderMale,
		Birthdate:   domain.Birthdate{Date: kernel.NewDate(birthdate)},
		Nationality: belgium,
		Contact: domain.Contact{
			Address:       domain.Address{City: "Gent", Country: belgium},
			TraceableTime: kernel.NewTraceableTime(),
		},
		TraceableTime: kernel.NewTraceableTime(),
	}
	end := kernel.NewDate(time.Now().AddDate(1, 0, 0))
	member, err := domain.NewMember(domain.License{Number: license, EndDate: end}, person, true)
	require.NoError(t, err)
	created, err := sqlstore.NewMemberRepository(db).Create(ctx, member)
	require.NoError(t, err)
	return created
}
