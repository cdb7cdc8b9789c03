package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/domains/club/clubtest"
	"github.com/fbraem/kwai/internal/domains/teams/adapters/persistence/sqlstore"
	"github.com/fbraem/kwai/internal/domains/teams/application"
	"github.com/fbraem/kwai/internal/domains/teams/domain"
	"github.com/fbraem/kwai/internal/domains/teams/ports"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/platform/database/databasetest"
	"github.com/fbraem/kwai/internal/shared/kernel"
	"github.com/fbraem/kwai/internal/shared/presenter"
)

func newService(t *testing.T) (*application.Service, *database.Database) {
	t.Helper()
	db := databasetest.NewSQLite(t)
	service := application.NewService(
		sqlstore.NewTeamRepository(db),
		sqlstore.NewMemberRepository(db),
		database.NewUnitOfWork(db),
	)
	return service, db
}

func createTeam(t *testing.T, service *application.Service, name string) domain.Team {
	t.Helper()
	var created presenter.Single[domain.Team]
	err := service.CreateTeam(context.Background(), ports.CreateTeamCommand{
		TeamCommand: ports.TeamCommand{Name: name, Active: true},
	}, &created)
	require.NoError(t, err)
	team, ok := created.Value()
	require.True(t, ok)
	return team
}

func TestCreateTeamRejectsDuplicateName(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()
	createTeam(t, service, "U11")

	err := service.CreateTeam(ctx, ports.CreateTeamCommand{TeamCommand: ports.TeamCommand{Name: "U11"}},
		presenter.Func[domain.Team](func(domain.Team) {}))
	require.ErrorIs(t, err, ports.ErrTeamExists)
	require.ErrorIs(t, err, kernel.ErrDuplicate)

	err = service.CreateTeam(ctx, ports.CreateTeamCommand{}, presenter.Func[domain.Team](func(domain.Team) {}))
	require.ErrorIs(t, err, application.ErrInvalidInput)
}

func TestUpdateAndDeleteTeam(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()
	team := createTeam(t, service, "U11")
	createTeam(t, service, "U13")

	err := service.UpdateTeam(ctx, ports.UpdateTeamCommand{
		ID:          team.ID().Value(),
		TeamCommand: ports.TeamCommand{Name: "U13"},
	}, presenter.Func[domain.Team](func(domain.Team) {}))
	require.ErrorIs(t, err, ports.ErrTeamExists)

	var updated presenter.Single[domain.Team]
	err = service.UpdateTeam(ctx, ports.UpdateTeamCommand{
		ID:          team.ID().Value(),
		TeamCommand: ports.TeamCommand{Name: "U11", Remark: "same name"},
	}, &updated)
	require.NoError(t, err)
	value, _ := updated.Value()
	require.Equal(t, "same name", value.Remark)

	require.NoError(t, service.DeleteTeam(ctx, ports.DeleteTeamCommand{ID: team.ID().Value()}))
	err = service.GetTeam(ctx, ports.GetTeamCommand{ID: team.ID().Value()}, presenter.Func[domain.Team](func(domain.Team) {}))
	require.ErrorIs(t, err, kernel.ErrNotFound)

	var teams presenter.List[domain.Team]
	require.NoError(t, service.GetTeams(ctx, ports.GetTeamsCommand{}, &teams))
	require.Equal(t, 1, teams.Count)
	require.Equal(t, "U13", teams.Items[0].Name)
}

func TestCreateTeamMember(t *testing.T) {
	service, db := newService(t)
	ctx := context.Background()
	team := createTeam(t, service, "U11")
	member := clubtest.CreateMember(t, db, "123", kernel.Name{FirstName: "Jigoro", LastName: "Kano"},
		time.Date(2014, 2, 3, 0, 0, 0, 0, time.UTC))
	clubtest.CreateMember(t, db, "456", kernel.Name{FirstName: "Kyuzo", LastName: "Mifune"},
		time.Date(2015, 2, 3, 0, 0, 0, 0, time.UTC))

	command := ports.CreateTeamMemberCommand{TeamID: team.ID().Value(), MemberUUID: member.UUID.String(), Active: true}
	var presented presenter.Single[domain.Team]
	require.NoError(t, service.CreateTeamMember(ctx, command, &presented))
	withMember, _ := presented.Value()
	require.Len(t, withMember.Members(), 1)
	require.Equal(t, "Kano", withMember.Members()[0].Member.Name.LastName)

	err := service.CreateTeamMember(ctx, command, presenter.Func[domain.Team](func(domain.Team) {}))
	require.ErrorIs(t, err, domain.ErrTeamMemberExists)

	err = service.CreateTeamMember(ctx, ports.CreateTeamMemberCommand{TeamID: team.ID().Value(), MemberUUID: kernel.NewUniqueID().String()},
		presenter.Func[domain.Team](func(domain.Team) {}))
	require.ErrorIs(t, err, ports.ErrMemberNotFound)

	var inTeam presenter.List[domain.Member]
	require.NoError(t, service.GetTeamMembers(ctx, ports.GetTeamMembersCommand{TeamID: team.ID().Value(), InTeam: true}, &inTeam))
	require.Equal(t, 1, inTeam.Count)

	var notInTeam presenter.List[domain.Member]
	require.NoError(t, service.GetTeamMembers(ctx, ports.GetTeamMembersCommand{TeamID: team.ID().Value()}, &notInTeam))
	require.Equal(t, 1, notInTeam.Count)
	require.Equal(t, "Mifune", notInTeam.Items[0].Name.LastName)

	var all presenter.List[domain.Member]
	require.NoError(t, service.GetTeamMembers(ctx, ports.GetTeamMembersCommand{}, &all))
	require.Equal(t, 2, all.Count)
}
