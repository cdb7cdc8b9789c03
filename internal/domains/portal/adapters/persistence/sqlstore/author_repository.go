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
	_ ports.AuthorQuery      = authorQuery{}
	_ ports.AuthorRepository = (*AuthorRepository)(nil)
)

type authorQuery struct {
	query database.Query
}

func newAuthorQuery(db *database.Database) authorQuery {
	sel := authorsTable.Select().
		Join(usersTable.Ref(), usersTable.Column("id")+" = "+authorsTable.Column("user_id")).
		Columns(append(authorsTable.Aliases(), usersTable.Aliases()...)...).
		OrderBy(authorsTable.Column("name"))
	return authorQuery{query: database.NewQuery(db, sel, authorsTable.Column("user_id"))}
}

func (q authorQuery) FilterByID(id domain.AuthorIdentifier) ports.AuthorQuery {
	return authorQuery{query: q.query.Where(authorsTable.Column("user_id")+" = ?", id.Value())}
}

func (q authorQuery) FilterByUUID(uuid kernel.UniqueID) ports.AuthorQuery {
	return authorQuery{query: q.query.Where(usersTable.Column("uuid")+" = ?", uuid.String())}
}

func (q authorQuery) Count(ctx context.Context) (int, error) {
	count, err := q.query.Count(ctx)
	return int(count), err
}

// AuthorRepository reads the authors table joined with the user accounts.
type AuthorRepository struct {
	db *database.Database
}

func NewAuthorRepository(db *database.Database) *AuthorRepository {
	return &AuthorRepository{db: db}
}

func (r *AuthorRepository) CreateQuery() ports.AuthorQuery {
	return newAuthorQuery(r.db)
}

func (r *AuthorRepository) Get(ctx context.Context, query ports.AuthorQuery) (domain.Author, error) {
	for author, err := range r.GetAll(ctx, query, 1, 0) {
		return author, err
	}
	return domain.Author{}, ports.ErrAuthorNotFound
}

func (r *AuthorRepository) GetAll(ctx context.Context, query ports.AuthorQuery, limit, offset int) iter.Seq2[domain.Author, error] {
	q, ok := query.(authorQuery)
	if !ok {
		return func(yield func(domain.Author, error) bool) {
			yield(domain.Author{}, fmt.Errorf("unsupported author query %T", query))
		}
	}
	return database.Map(database.Fetch[authorQueryRow](ctx, q.query, limit, offset), authorQueryRow.toDomain)
}

// Create registers the user of author as author.
func (r *AuthorRepository) Create(ctx context.Context, author domain.Author) error {
	row := authorRow{
		UserID:    author.ID().Value(),
		Name:      author.Name,
		Remark:    database.NullString(author.Remark),
		Active:    database.Flag(author.Active),
		CreatedAt: author.TraceableTime.CreatedAt.Time(),
	}
	_, err := r.db.Insert(ctx, authorsTable.Name(), &row)
	return err
}
