package sqlstore

import (
	"context"
	"fmt"
	"iter"

	"github.com/fbraem/kwai/internal/domains/teams/domain"
	"github.com/fbraem/kwai/internal/domains/teams/ports"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var (
	_ ports.TeamQuery      = teamQuery{}
	_ ports.TeamRepository = (*TeamRepository)(nil)
)

type teamQuery struct {
	query database.Query
}

// newTeamQuery pages on teams. The detail statement joins the members of the paged
// teams, so a team with many members still counts as one entity.
func newTeamQuery(db *database.Database) teamQuery {
	columns := append(teamsTable.Aliases(), teamMembersTable.Aliases()...)
	columns = append(columns, membersTable.Aliases()...)
	columns = append(columns, personsTable.Aliases()...)
	columns = append(columns, countriesTable.Aliases()...)
	detail := teamsTable.Select().
		LeftJoin(teamMembersTable.Ref(), teamMembersTable.Column("team_id")+" = "+teamsTable.Column("id")).
		LeftJoin(membersTable.Ref(), membersTable.Column("id")+" = "+teamMembersTable.Column("member_id")).
		LeftJoin(personsTable.Ref(), personsTable.Column("id")+" = "+membersTable.Column("person_id")).
		LeftJoin(countriesTable.Ref(), countriesTable.Column("id")+" = "+personsTable.Column("nationality_id")).
		Columns(columns...)
	query := database.NewQuery(db, teamsTable.Select(), teamsTable.Column("id")).
		WithDetail(detail, teamsTable.Column("id")).
		OrderBy(teamsTable.Column("name"))
	return teamQuery{query: query}
}

func (q teamQuery) FilterByID(id domain.TeamIdentifier) ports.TeamQuery {
	return teamQuery{query: q.query.Where(teamsTable.Column("id")+" = ?", id.Value())}
}

func (q teamQuery) FilterByName(name string) ports.TeamQuery {
	return teamQuery{query: q.query.Where(teamsTable.Column("name")+" = ?", name)}
}

func (q teamQuery) Count(ctx context.Context) (int, error) {
	count, err := q.query.Count(ctx)
	return int(count), err
}

// TeamRepository stores teams in the teams and team_members tables.
type TeamRepository struct {
	db *database.Database
}

func NewTeamRepository(db *database.Database) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) CreateQuery() ports.TeamQuery {
	return newTeamQuery(r.db)
}

func (r *TeamRepository) Get(ctx context.Context, query ports.TeamQuery) (domain.Team, error) {
	for team, err := range r.GetAll(ctx, query, 1, 0) {
		return team, err
	}
	return domain.Team{}, ports.ErrTeamNotFound
}

func (r *TeamRepository) GetAll(ctx context.Context, query ports.TeamQuery, limit, offset int) iter.Seq2[domain.Team, error] {
	q, ok := query.(teamQuery)
	if !ok {
		return func(yield func(domain.Team, error) bool) {
			yield(domain.Team{}, fmt.Errorf("unsupported team query %T", query))
		}
	}
	groups := database.Group(database.Fetch[teamQueryRow](ctx, q.query, limit, offset), func(row teamQueryRow) int64 {
		return row.Team.ID
	})
	return database.Map(groups, teamFromRows)
}

func (r *TeamRepository) Create(ctx context.Context, team domain.Team) (domain.Team, error) {
	id, err := r.db.Insert(ctx, teamsTable.Name(), ptr(newTeamRow(team)))
	if err != nil {
		return domain.Team{}, err
	}
	team.Entity = team.WithID(kernel.NewIntIdentifier(id))
	return team, nil
}

func (r *TeamRepository) Update(ctx context.Context, team domain.Team) error {
	return r.db.Update(ctx, teamsTable.Name(), byID(team.ID()), ptr(newTeamRow(team)))
}

func (r *TeamRepository) Delete(ctx context.Context, team domain.Team) error {
	return r.db.Transaction(ctx, func(ctx context.Context) error {
		if err := r.db.Delete(ctx, teamMembersTable.Name(), database.Where("team_id = ?", team.ID().Value())); err != nil {
			return err
		}
		return r.db.Delete(ctx, teamsTable.Name(), byID(team.ID()))
	})
}

func (r *TeamRepository) AddMember(ctx context.Context, team domain.Team, member domain.TeamMember) error {
	_, err := r.db.Insert(ctx, teamMembersTable.Name(), ptr(newTeamMemberRow(team, member)))
	return err
}

func byID(id kernel.IntIdentifier) database.Predicate {
	return database.Where("id = ?", id.Value())
}

func ptr[T any](value T) *T {
	return &value
}
