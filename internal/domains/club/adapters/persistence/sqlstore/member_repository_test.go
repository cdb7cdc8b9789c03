package sqlstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/domains/club/adapters/persistence/sqlstore"
	"github.com/fbraem/kwai/internal/domains/club/domain"
	"github.com/fbraem/kwai/internal/domains/club/ports"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/platform/database/databasetest"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

type fixture struct {
	db        *database.Database
	members   *sqlstore.MemberRepository
	countries *sqlstore.CountryRepository
	uploads   *sqlstore.FileUploadRepository
	belgium   domain.Country
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := databasetest.New(t)
	countries := sqlstore.NewCountryRepository(db)
	belgium, err := countries.GetByISO2(context.Background(), "be")
	require.NoError(t, err)
	return fixture{
		db:        db,
		members:   sqlstore.NewMemberRepository(db),
		countries: countries,
		uploads:   sqlstore.NewFileUploadRepository(db),
		belgium:   belgium,
	}
}

func (f fixture) newMember(t *testing.T, license string, endDate time.Time, lastName string) domain.Member {
	t.Helper()
	email, err := kernel.NewEmailAddress(lastName + "@example.com")
	require.NoError(t, err)
	person := domain.Person{
		Name:        kernel.Name{FirstName: "Jigoro", LastName: lastName},
		Gender:      domain.GenderMale,
		Birthdate:   domain.Birthdate{Date: kernel.NewDate(time.Date(1990, 3, 12, 0, 0, 0, 0, time.UTC))},
		Nationality: f.belgium,
		Contact: domain.Contact{
			Emails: []kernel.EmailAddress{email},
			Mobile: "0470 12 34 56",
			Address: domain.Address{
				Address:    "Dojostraat 1",
				PostalCode: "9000",
				City:       "Gent",
				Country:    f.belgium,
			},
			TraceableTime: kernel.NewTraceableTime(),
		},
		TraceableTime: kernel.NewTraceableTime(),
	}
	member, err := domain.NewMember(domain.License{Number: license, EndDate: kernel.NewDate(endDate)}, person, true)
	require.NoError(t, err)
	created, err := f.members.Create(context.Background(), member)
	require.NoError(t, err)
	return created
}

func TestMemberRepository_CreateAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.newMember(t, "12345678", time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), "Kano")
	require.False(t, created.ID().IsEmpty())
	require.False(t, created.Person.ID().IsEmpty())
	require.False(t, created.Person.Contact.ID().IsEmpty())

	member, err := f.members.Get(ctx, f.members.CreateQuery().FilterByLicense("12345678"))
	require.NoError(t, err)
	require.Equal(t, created.ID(), member.ID())
	require.Equal(t, created.UUID, member.UUID)
	require.Equal(t, "Kano", member.Person.Name.LastName)
	require.Equal(t, "BE", member.Person.Nationality.ISO2)
	require.Equal(t, "BE", member.Person.Contact.Address.Country.ISO2)
	require.Equal(t, "2024-06-30", member.License.EndDate.String())
	require.Len(t, member.Person.Contact.Emails, 1)
	require.True(t, member.Active)

	byUUID, err := f.members.Get(ctx, f.members.CreateQuery().FilterByUUID(created.UUID))
	require.NoError(t, err)
	require.Equal(t, created.ID(), byUUID.ID())
}

func TestMemberRepository_GetUnknownMember(t *testing.T) {
	f := newFixture(t)
	_, err := f.members.Get(context.Background(), f.members.CreateQuery().FilterByLicense("00000000"))
	require.ErrorIs(t, err, ports.ErrMemberNotFound)
	require.ErrorIs(t, err, kernel.ErrNotFound)
}

func TestMemberQuery_FilterByLicenseDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	count, err := f.members.CreateQuery().FilterByLicenseDate(6, 2024).Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)

	f.newMember(t, "1", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "Kano")
	f.newMember(t, "2", time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), "Mifune")
	f.newMember(t, "3", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), "Kyuzo")

	count, err = f.members.CreateQuery().FilterByLicenseDate(6, 2024).Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	count, err = f.members.CreateQuery().FilterByLicenseDate(12, 2024).Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestMemberRepository_GetAllPages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	end := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	f.newMember(t, "1", end, "Abe")
	f.newMember(t, "2", end, "Baba")
	f.newMember(t, "3", end, "Chiba")

	query := f.members.CreateQuery()
	var names []string
	for member, err := range f.members.GetAll(ctx, query, 2, 1) {
		require.NoError(t, err)
		names = append(names, member.Person.Name.LastName)
	}
	require.Equal(t, []string{"Baba", "Chiba"}, names)

	count, err := query.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestMemberRepository_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	member := f.newMember(t, "12345678", time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), "Kano")

	changed := kernel.Replace(member, func(m *domain.Member) {
		m.Remark = "black belt"
		m.Competition = true
		m.Person.Contact.Address.City = "Brugge"
		m.TraceableTime = m.TraceableTime.MarkForUpdate()
	})
	require.NoError(t, f.members.Update(ctx, changed))

	reloaded, err := f.members.Get(ctx, f.members.CreateQuery().FilterByID(member.ID()))
	require.NoError(t, err)
	require.Equal(t, "black belt", reloaded.Remark)
	require.True(t, reloaded.Competition)
	require.Equal(t, "Brugge", reloaded.Person.Contact.Address.City)
	require.False(t, reloaded.TraceableTime.UpdatedAt.IsEmpty())
}

func TestMemberRepository_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	member := f.newMember(t, "12345678", time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), "Kano")

	require.NoError(t, f.members.Delete(ctx, member))
	_, err := f.members.Get(ctx, f.members.CreateQuery().FilterByID(member.ID()))
	require.ErrorIs(t, err, ports.ErrMemberNotFound)
}

func TestMemberRepository_ActivateUploadedMembers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	end := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	uploaded := f.newMember(t, "1", end, "Abe")
	other := f.newMember(t, "2", end, "Baba")

	upload, err := f.uploads.Create(ctx, domain.NewFileUpload("members.csv", kernel.Owner{ID: kernel.NewIntIdentifier(1)}, false))
	require.NoError(t, err)
	require.NoError(t, f.uploads.SaveMember(ctx, upload, uploaded))

	require.NoError(t, f.members.ActivateMembers(ctx, upload))
	require.NoError(t, f.members.DeactivateMembers(ctx, upload))

	count, err := f.members.CreateQuery().FilterByActive().Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	reloaded, err := f.members.Get(ctx, f.members.CreateQuery().FilterByID(other.ID()))
	require.NoError(t, err)
	require.False(t, reloaded.Active)
}

func TestFileUploadRepository_SaveMemberTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	member := f.newMember(t, "12345678", time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), "Kano")
	upload, err := f.uploads.Create(ctx, domain.NewFileUpload("members.csv", kernel.Owner{ID: kernel.NewIntIdentifier(1)}, false))
	require.NoError(t, err)

	require.NoError(t, f.uploads.SaveMember(ctx, upload, member))
	err = f.uploads.SaveMember(ctx, upload, member)
	require.ErrorIs(t, err, ports.ErrDuplicateMember)
	require.ErrorIs(t, err, kernel.ErrDuplicate)
}

func TestCountryRepository(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.countries.GetByISO2(ctx, "XX")
	require.ErrorIs(t, err, ports.ErrCountryNotFound)

	created, err := f.countries.Create(ctx, domain.Country{ISO2: "XX", ISO3: "XXX", Name: "Nowhere", TraceableTime: kernel.NewTraceableTime()})
	require.NoError(t, err)
	found, err := f.countries.GetByISO2(ctx, "xx")
	require.NoError(t, err)
	require.Equal(t, created.ID(), found.ID())

	require.NoError(t, f.countries.Delete(ctx, found))
	_, err = f.countries.GetByISO2(ctx, "XX")
	require.ErrorIs(t, err, ports.ErrCountryNotFound)
}
