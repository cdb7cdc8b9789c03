package sqlstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/domains/club/clubtest"
	"github.com/fbraem/kwai/internal/domains/teams/adapters/persistence/sqlstore"
	"github.com/fbraem/kwai/internal/domains/teams/domain"
	"github.com/fbraem/kwai/internal/domains/teams/ports"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/platform/database/databasetest"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

type fixture struct {
	db      *database.Database
	teams   *sqlstore.TeamRepository
	members *sqlstore.MemberRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := databasetest.New(t)
	return fixture{db: db, teams: sqlstore.NewTeamRepository(db), members: sqlstore.NewMemberRepository(db)}
}

func (f fixture) createTeam(t *testing.T, name string) domain.Team {
	t.Helper()
	team, err := domain.NewTeam(name, true, "")
	require.NoError(t, err)
	team, err = f.teams.Create(context.Background(), team)
	require.NoError(t, err)
	return team
}

func (f fixture) member(t *testing.T, license, lastName string, born time.Time) domain.Member {
	t.Helper()
	clubtest.CreateMember(t, f.db, license, kernel.Name{FirstName: "Judoka", LastName: lastName}, born)
	for member, err := range f.members.GetAll(context.Background(), f.members.CreateQuery(), 0, 0) {
		require.NoError(t, err)
		if member.License.Number == license {
			return member
		}
	}
	t.Fatalf("member %s not found", license)
	return domain.Member{}
}

func TestTeamRepository_GetAllGroupsMembers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u11 := f.createTeam(t, "U11")
	f.createTeam(t, "Competition")
	u13 := f.createTeam(t, "U13")
	kano := f.member(t, "1", "Kano", time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC))
	mifune := f.member(t, "2", "Mifune", time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, f.teams.AddMember(ctx, u11, domain.NewTeamMember(kano, true)))
	require.NoError(t, f.teams.AddMember(ctx, u11, domain.NewTeamMember(mifune, false)))
	require.NoError(t, f.teams.AddMember(ctx, u13, domain.NewTeamMember(kano, true)))

	var teams []domain.Team
	for team, err := range f.teams.GetAll(ctx, f.teams.CreateQuery(), 2, 1) {
		require.NoError(t, err)
		teams = append(teams, team)
	}
	require.Len(t, teams, 2)
	require.Equal(t, "U11", teams[0].Name)
	require.Len(t, teams[0].Members(), 2)
	require.Equal(t, "U13", teams[1].Name)
	require.Len(t, teams[1].Members(), 1)
	require.Equal(t, "BE", teams[1].Members()[0].Member.Nationality.ISO2)

	count, err := f.teams.CreateQuery().Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestTeamRepository_GetTeamWithoutMembers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.createTeam(t, "U9")

	team, err := f.teams.Get(ctx, f.teams.CreateQuery().FilterByID(created.ID()))
	require.NoError(t, err)
	require.Equal(t, "U9", team.Name)
	require.Empty(t, team.Members())

	_, err = f.teams.Get(ctx, f.teams.CreateQuery().FilterByName("unknown"))
	require.ErrorIs(t, err, ports.ErrTeamNotFound)
}

func TestTeamRepository_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	team := f.createTeam(t, "U15")
	kano := f.member(t, "1", "Kano", time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, f.teams.AddMember(ctx, team, domain.NewTeamMember(kano, true)))

	changed, err := team.Change("U15 girls", false, "split")
	require.NoError(t, err)
	require.NoError(t, f.teams.Update(ctx, changed))
	stored, err := f.teams.Get(ctx, f.teams.CreateQuery().FilterByID(team.ID()))
	require.NoError(t, err)
	require.Equal(t, "U15 girls", stored.Name)
	require.False(t, stored.Active)
	require.Equal(t, "split", stored.Remark)

	require.NoError(t, f.teams.Delete(ctx, stored))
	_, err = f.teams.Get(ctx, f.teams.CreateQuery().FilterByID(team.ID()))
	require.ErrorIs(t, err, ports.ErrTeamNotFound)
	count, err := f.members.CreateQuery().FilterByTeam(team.ID(), true).Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestMemberRepository_FilterByTeam(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	team := f.createTeam(t, "U11")
	kano := f.member(t, "1", "Kano", time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC))
	f.member(t, "2", "Mifune", time.Date(2016, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, f.teams.AddMember(ctx, team, domain.NewTeamMember(kano, true)))

	inTeam, err := f.members.CreateQuery().FilterByTeam(team.ID(), true).Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, inTeam)

	other, err := f.members.Get(ctx, f.members.CreateQuery().FilterByTeam(team.ID(), false))
	require.NoError(t, err)
	require.Equal(t, "Mifune", other.Name.LastName)

	born, err := f.members.CreateQuery().
		FilterByBirthdate(kernel.NewDate(time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)), kernel.Date{}).
		Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, born)

	_, err = f.members.Get(ctx, f.members.CreateQuery().FilterByUUID(kernel.NewUniqueID()))
	require.ErrorIs(t, err, ports.ErrMemberNotFound)
}

func TestUnitOfWorkRollsBackTeam(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	failure := errors.New("presenter failed")
	err := database.NewUnitOfWork(f.db).Do(ctx, func(ctx context.Context) error {
		team, err := domain.NewTeam("U18", true, "")
		require.NoError(t, err)
		if _, err := f.teams.Create(ctx, team); err != nil {
			return err
		}
		return failure
	})
	require.ErrorIs(t, err, failure)

	count, err := f.teams.CreateQuery().FilterByName("U18").Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestTeamRepository_CountMatchesDrainedTeams(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kano := f.member(t, "1", "Kano", time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC))
	mifune := f.member(t, "2", "Mifune", time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC))
	for _, name := range []string{"U9", "U11", "U13", "U15"} {
		team := f.createTeam(t, name)
		require.NoError(t, f.teams.AddMember(ctx, team, domain.NewTeamMember(kano, true)))
		require.NoError(t, f.teams.AddMember(ctx, team, domain.NewTeamMember(mifune, true)))
	}
	f.createTeam(t, "Veterans")
	query := f.teams.CreateQuery()

	var paged int
	for _, err := range f.teams.GetAll(ctx, query, 2, 2) {
		require.NoError(t, err)
		paged++
	}
	require.Equal(t, 2, paged)
	count, err := query.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, count)

	var members int
	var drained []domain.Team
	for team, err := range f.teams.GetAll(ctx, query, 0, 0) {
		require.NoError(t, err)
		drained = append(drained, team)
		members += len(team.Members())
	}
	require.Len(t, drained, count)
	require.Equal(t, 8, members)
}
