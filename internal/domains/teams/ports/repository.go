package ports

import (
	"context"
	"fmt"
	"iter"

	"github.com/fbraem/kwai/internal/domains/teams/domain"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var (
	ErrTeamNotFound   = fmt.Errorf("team %w", kernel.ErrNotFound)
	ErrMemberNotFound = fmt.Errorf("member %w", kernel.ErrNotFound)
	// ErrTeamExists is returned when a team name is already used.
	ErrTeamExists = fmt.Errorf("%w: a team with this name already exists", kernel.ErrDuplicate)
)

// TeamQuery selects teams.
type TeamQuery interface {
	FilterByID(id domain.TeamIdentifier) TeamQuery
	FilterByName(name string) TeamQuery
	Count(ctx context.Context) (int, error)
}

// TeamRepository stores teams and their members.
type TeamRepository interface {
	CreateQuery() TeamQuery
	// Get returns the first team of query or ErrTeamNotFound.
	Get(ctx context.Context, query TeamQuery) (domain.Team, error)
	// GetAll pages on teams, each team comes with all its members.
	GetAll(ctx context.Context, query TeamQuery, limit, offset int) iter.Seq2[domain.Team, error]
	Create(ctx context.Context, team domain.Team) (domain.Team, error)
	Update(ctx context.Context, team domain.Team) error
	// Delete removes the team and its memberships.
	Delete(ctx context.Context, team domain.Team) error
	AddMember(ctx context.Context, team domain.Team, member domain.TeamMember) error
}

// MemberQuery selects club members that can join a team.
type MemberQuery interface {
	FilterByID(id domain.MemberIdentifier) MemberQuery
	FilterByUUID(uuid kernel.UniqueID) MemberQuery
	// FilterByTeam keeps the members of team, or the members not in team when inTeam is false.
	FilterByTeam(team domain.TeamIdentifier, inTeam bool) MemberQuery
	// FilterByBirthdate keeps members born on or after start and, unless end is
	// empty, on or before end.
	FilterByBirthdate(start, end kernel.Date) MemberQuery
	Count(ctx context.Context) (int, error)
}

// MemberRepository reads club members for teams.
type MemberRepository interface {
	CreateQuery() MemberQuery
	Get(ctx context.Context, query MemberQuery) (domain.Member, error)
	GetAll(ctx context.Context, query MemberQuery, limit, offset int) iter.Seq2[domain.Member, error]
}
