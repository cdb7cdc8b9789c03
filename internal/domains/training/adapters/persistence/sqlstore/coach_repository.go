package sqlstore

import (
	"context"
	"fmt"
	"iter"

	"github.com/fbraem/kwai/internal/domains/training/domain"
	"github.com/fbraem/kwai/internal/domains/training/ports"
	"github.com/fbraem/kwai/internal/platform/database"
)

var (
	_ ports.CoachQuery      = coachQuery{}
	_ ports.CoachRepository = (*CoachRepository)(nil)
	_ ports.TeamRepository  = (*TeamRepository)(nil)
)

type coachQuery struct {
	query database.Query
}

func newCoachQuery(db *database.Database) coachQuery {
	sel := coachesTable.Select().
		Join(membersTable.Ref(), membersTable.Column("id")+" = "+coachesTable.Column("member_id")).
		Join(personsTable.Ref(), personsTable.Column("id")+" = "+membersTable.Column("person_id")).
		Columns(append(coachesTable.Aliases(), personsTable.Aliases()...)...).
		OrderBy(personsTable.Column("lastname"), personsTable.Column("firstname"), coachesTable.Column("id"))
	return coachQuery{query: database.NewQuery(db, sel, coachesTable.Column("id"))}
}

func (q coachQuery) FilterByID(id domain.CoachIdentifier) ports.CoachQuery {
	return coachQuery{query: q.query.Where(coachesTable.Column("id")+" = ?", id.Value())}
}

func (q coachQuery) FilterByIDs(ids ...domain.CoachIdentifier) ports.CoachQuery {
	values := make([]int64, len(ids))
	for i, id := range ids {
		values[i] = id.Value()
	}
	return coachQuery{query: q.query.Where(coachesTable.Column("id")+" IN ?", values)}
}

func (q coachQuery) FilterByActive() ports.CoachQuery {
	return coachQuery{query: q.query.Where(coachesTable.Column("active")+" = ?", 1)}
}

func (q coachQuery) Count(ctx context.Context) (int, error) {
	count, err := q.query.Count(ctx)
	return int(count), err
}

// CoachRepository reads coaches with the name of the member they are.
type CoachRepository struct {
	db *database.Database
}

func NewCoachRepository(db *database.Database) *CoachRepository {
	return &CoachRepository{db: db}
}

func (r *CoachRepository) CreateQuery() ports.CoachQuery {
	return newCoachQuery(r.db)
}

func (r *CoachRepository) Get(ctx context.Context, query ports.CoachQuery) (domain.Coach, error) {
	for coach, err := range r.GetAll(ctx, query, 1, 0) {
		return coach, err
	}
	return domain.Coach{}, ports.ErrCoachNotFound
}

func (r *CoachRepository) GetAll(ctx context.Context, query ports.CoachQuery, limit, offset int) iter.Seq2[domain.Coach, error] {
	q, ok := query.(coachQuery)
	if !ok {
		return func(yield func(domain.Coach, error) bool) {
			yield(domain.Coach{}, fmt.Errorf("unsupported coach query %T", query))
		}
	}
	return database.Map(database.Fetch[coachQueryRow](ctx, q.query, limit, offset), coachQueryRow.toDomain)
}

// TeamRepository reads the teams trainings can be assigned to.
type TeamRepository struct {
	db *database.Database
}

func NewTeamRepository(db *database.Database) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByIDs(ctx context.Context, ids ...domain.TeamIdentifier) ([]domain.Team, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	values := make([]int64, len(ids))
	for i, id := range ids {
		values[i] = id.Value()
	}
	sel := teamsTable.Select().
		Columns(teamsTable.QualifiedColumns()...).
		Where(teamsTable.Column("id")+" IN ?", values).
		OrderBy(teamsTable.Column("name"))
	rows, err := database.SelectAll[teamColumns](ctx, r.db, sel)
	if err != nil {
		return nil, err
	}
	teams := make([]domain.Team, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, row.toDomain())
	}
	return teams, nil
}
