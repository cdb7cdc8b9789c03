package sqlstore

import (
	"context"
	"fmt"
	"iter"

	"github.com/fbraem/kwai/internal/domains/portal/domain"
	"github.com/fbraem/kwai/internal/domains/portal/ports"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var (
	_ ports.ApplicationQuery      = applicationQuery{}
	_ ports.ApplicationRepository = (*ApplicationRepository)(nil)
)

type applicationQuery struct {
	query database.Query
}

func newApplicationQuery(db *database.Database) applicationQuery {
	sel := applicationsTable.Select().
		Columns(applicationsTable.Aliases()...).
		OrderBy(applicationsTable.Column("weight"), applicationsTable.Column("title"))
	return applicationQuery{query: database.NewQuery(db, sel, applicationsTable.Column("id"))}
}

func (q applicationQuery) where(sql string, args ...any) applicationQuery {
	return applicationQuery{query: q.query.Where(sql, args...)}
}

func (q applicationQuery) FilterByID(id domain.ApplicationIdentifier) ports.ApplicationQuery {
	return q.where(applicationsTable.Column("id")+" = ?", id.Value())
}

func (q applicationQuery) FilterByName(name string) ports.ApplicationQuery {
	return q.where(applicationsTable.Column("name")+" = ?", name)
}

func (q applicationQuery) FilterOnlyNews() ports.ApplicationQuery {
	return q.where(applicationsTable.Column("news")+" = ?", 1)
}

func (q applicationQuery) FilterOnlyPages() ports.ApplicationQuery {
	return q.where(applicationsTable.Column("pages")+" = ?", 1)
}

func (q applicationQuery) FilterOnlyEvents() ports.ApplicationQuery {
	return q.where(applicationsTable.Column("events")+" = ?", 1)
}

func (q applicationQuery) Count(ctx context.Context) (int, error) {
	count, err := q.query.Count(ctx)
	return int(count), err
}

// applicationRows prefixes the columns with the table name, as in every joined query.
type applicationRows struct {
	Application applicationRow `gorm:"embedded;embeddedPrefix:applications_"`
}

// ApplicationRepository reads and updates the applications table. Applications are
// created by migrations only.
type ApplicationRepository struct {
	db *database.Database
}

func NewApplicationRepository(db *database.Database) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) CreateQuery() ports.ApplicationQuery {
	return newApplicationQuery(r.db)
}

func (r *ApplicationRepository) Get(ctx context.Context, query ports.ApplicationQuery) (domain.Application, error) {
	for application, err := range r.GetAll(ctx, query, 1, 0) {
		return application, err
	}
	return domain.Application{}, ports.ErrApplicationNotFound
}

func (r *ApplicationRepository) GetAll(ctx context.Context, query ports.ApplicationQuery, limit, offset int) iter.Seq2[domain.Application, error] {
	q, ok := query.(applicationQuery)
	if !ok {
		return func(yield func(domain.Application, error) bool) {
			yield(domain.Application{}, fmt.Errorf("unsupported application query %T", query))
		}
	}
	return database.Map(database.Fetch[applicationRows](ctx, q.query, limit, offset), func(row applicationRows) (domain.Application, error) {
		return row.Application.toDomain()
	})
}

// Create is used to seed applications.
func (r *ApplicationRepository) Create(ctx context.Context, application domain.Application) (domain.Application, error) {
	id, err := r.db.Insert(ctx, applicationsTable.Name(), ptr(newApplicationRow(application)))
	if err != nil {
		return domain.Application{}, err
	}
	application.Entity = application.WithID(kernel.NewIntIdentifier(id))
	return application, nil
}

func (r *ApplicationRepository) Update(ctx context.Context, application domain.Application) error {
	return r.db.Update(ctx, applicationsTable.Name(), byID(application.ID()), ptr(newApplicationRow(application)))
}
