package sqlstore

import (
	"context"
	"fmt"
	"iter"

	"github.com/fbraem/kwai/internal/domains/training/domain"
	"github.com/fbraem/kwai/internal/domains/training/ports"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var (
	_ ports.TrainingDefinitionQuery      = definitionQuery{}
	_ ports.TrainingDefinitionRepository = (*TrainingDefinitionRepository)(nil)
)

type definitionQuery struct {
	query database.Query
}

func newDefinitionQuery(db *database.Database) definitionQuery {
	columns := append(definitionsTable.Aliases(), teamsTable.Aliases()...)
	columns = append(columns, usersTable.Aliases()...)
	sel := definitionsTable.Select().
		Join(usersTable.Ref(), usersTable.Column("id")+" = "+definitionsTable.Column("user_id")).
		LeftJoin(teamsTable.Ref(), teamsTable.Column("id")+" = "+definitionsTable.Column("team_id")).
		Columns(columns...).
		OrderBy(definitionsTable.Column("name"), definitionsTable.Column("id"))
	return definitionQuery{query: database.NewQuery(db, sel, definitionsTable.Column("id"))}
}

func (q definitionQuery) FilterByID(id domain.TrainingDefinitionIdentifier) ports.TrainingDefinitionQuery {
	return definitionQuery{query: q.query.Where(definitionsTable.Column("id")+" = ?", id.Value())}
}

func (q definitionQuery) FilterByIDs(ids ...domain.TrainingDefinitionIdentifier) ports.TrainingDefinitionQuery {
	values := make([]int64, len(ids))
	for i, id := range ids {
		values[i] = id.Value()
	}
	return definitionQuery{query: q.query.Where(definitionsTable.Column("id")+" IN ?", values)}
}

func (q definitionQuery) Count(ctx context.Context) (int, error) {
	count, err := q.query.Count(ctx)
	return int(count), err
}

// TrainingDefinitionRepository stores definitions in the training_definitions table.
type TrainingDefinitionRepository struct {
	db *database.Database
}

func NewTrainingDefinitionRepository(db *database.Database) *TrainingDefinitionRepository {
	return &TrainingDefinitionRepository{db: db}
}

func (r *TrainingDefinitionRepository) CreateQuery() ports.TrainingDefinitionQuery {
	return newDefinitionQuery(r.db)
}

func (r *TrainingDefinitionRepository) Get(ctx context.Context, query ports.TrainingDefinitionQuery) (domain.TrainingDefinition, error) {
	for definition, err := range r.GetAll(ctx, query, 1, 0) {
		return definition, err
	}
	return domain.TrainingDefinition{}, ports.ErrDefinitionNotFound
}

func (r *TrainingDefinitionRepository) GetAll(ctx context.Context, query ports.TrainingDefinitionQuery, limit, offset int) iter.Seq2[domain.TrainingDefinition, error] {
	q, ok := query.(definitionQuery)
	if !ok {
		return func(yield func(domain.TrainingDefinition, error) bool) {
			yield(domain.TrainingDefinition{}, fmt.Errorf("unsupported training definition query %T", query))
		}
	}
	return database.Map(database.Fetch[definitionQueryRow](ctx, q.query, limit, offset), definitionQueryRow.toDomain)
}

func (r *TrainingDefinitionRepository) Create(ctx context.Context, definition domain.TrainingDefinition) (domain.TrainingDefinition, error) {
	id, err := r.db.Insert(ctx, definitionsTable.Name(), ptr(newDefinitionRow(definition)))
	if err != nil {
		return domain.TrainingDefinition{}, err
	}
	definition.Entity = definition.WithID(kernel.NewIntIdentifier(id))
	return definition, nil
}

func (r *TrainingDefinitionRepository) Update(ctx context.Context, definition domain.TrainingDefinition) error {
	return r.db.Update(ctx, definitionsTable.Name(), byID(definition.ID()), ptr(newDefinitionRow(definition)))
}

func (r *TrainingDefinitionRepository) Delete(ctx context.Context, definition domain.TrainingDefinition) error {
	return r.db.Delete(ctx, definitionsTable.Name(), byID(definition.ID()))
}
