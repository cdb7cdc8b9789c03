package ports

import (
	"context"

	"github.com/fbraem/kwai/internal/domains/teams/domain"
	"github.com/fbraem/kwai/internal/shared/presenter"
)

type GetTeamsCommand struct {
	Limit  int
	Offset int
}

type GetTeamCommand struct {
	ID int64
}

// TeamCommand holds the properties of a team to create or update.
type TeamCommand struct {
	Name   string
	Active bool
	Remark string
}

type CreateTeamCommand struct {
	TeamCommand
}

type UpdateTeamCommand struct {
	ID int64
	TeamCommand
}

type DeleteTeamCommand struct {
	ID int64
}

// GetTeamMembersCommand selects club members. Without TeamID all members are
// returned, otherwise the members of the team or, when InTeam is false, the members
// not yet in the team.
type GetTeamMembersCommand struct {
	TeamID int64
	InTeam bool
	Limit  int
	Offset int
}

type CreateTeamMemberCommand struct {
	TeamID     int64
	MemberUUID string
	Active     bool
}

// Service defines the team use cases.
type Service interface {
	GetTeams(ctx context.Context, command GetTeamsCommand, p presenter.AsyncPresenter[domain.Team]) error
	GetTeam(ctx context.Context, command GetTeamCommand, p presenter.Presenter[domain.Team]) error
	CreateTeam(ctx context.Context, command CreateTeamCommand, p presenter.Presenter[domain.Team]) error
	UpdateTeam(ctx context.Context, command UpdateTeamCommand, p presenter.Presenter[domain.Team]) error
	DeleteTeam(ctx context.Context, command DeleteTeamCommand) error
	GetTeamMembers(ctx context.Context, command GetTeamMembersCommand, p presenter.AsyncPresenter[domain.Member]) error
	// CreateTeamMember adds a member to a team and presents the team.
	CreateTeamMember(ctx context.Context, command CreateTeamMemberCommand, p presenter.Presenter[domain.Team]) error
}
