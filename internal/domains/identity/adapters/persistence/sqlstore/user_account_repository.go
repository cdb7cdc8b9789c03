package sqlstore

import (
	"context"
	"fmt"
	"iter"

	"github.com/fbraem/kwai/internal/domains/identity/domain"
	"github.com/fbraem/kwai/internal/domains/identity/ports"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var (
	_ ports.UserAccountQuery      = userAccountQuery{}
	_ ports.UserAccountRepository = (*UserAccountRepository)(nil)
)

type userAccountQuery struct {
	query database.Query
}

type userAccountQueryRow struct {
	User userAccountRow `gorm:"embedded;embeddedPrefix:users_"`
}

func newUserAccountQuery(db *database.Database) userAccountQuery {
	filter := usersTable.Select().Columns(usersTable.Aliases()...)
	query := database.NewQuery(db, filter, usersTable.Column("id")).
		OrderBy(usersTable.Column("last_name"), usersTable.Column("first_name"))
	return userAccountQuery{query: query}
}

func (q userAccountQuery) FilterByID(id domain.UserAccountIdentifier) ports.UserAccountQuery {
	return userAccountQuery{query: q.query.Where(usersTable.Column("id")+" = ?", id.Value())}
}

func (q userAccountQuery) FilterByUUID(uuid kernel.UniqueID) ports.UserAccountQuery {
	return userAccountQuery{query: q.query.Where(usersTable.Column("uuid")+" = ?", uuid.String())}
}

func (q userAccountQuery) FilterByEmail(email kernel.EmailAddress) ports.UserAccountQuery {
	return userAccountQuery{query: q.query.Where(usersTable.Column("email")+" = ?", email.String())}
}

func (q userAccountQuery) Count(ctx context.Context) (int, error) {
	count, err := q.query.Count(ctx)
	return int(count), err
}

// UserAccountRepository stores user accounts in users.
type UserAccountRepository struct {
	db *database.Database
}

func NewUserAccountRepository(db *database.Database) *UserAccountRepository {
	return &UserAccountRepository{db: db}
}

func (r *UserAccountRepository) CreateQuery() ports.UserAccountQuery {
	return newUserAccountQuery(r.db)
}

func (r *UserAccountRepository) Get(ctx context.Context, query ports.UserAccountQuery) (domain.UserAccount, error) {
	for account, err := range r.GetAll(ctx, query, 1, 0) {
		return account, err
	}
	return domain.UserAccount{}, ports.ErrUserAccountNotFound
}

func (r *UserAccountRepository) GetAll(ctx context.Context, query ports.UserAccountQuery, limit, offset int) iter.Seq2[domain.UserAccount, error] {
	q, ok := query.(userAccountQuery)
	if !ok {
		return func(yield func(domain.UserAccount, error) bool) {
			yield(domain.UserAccount{}, fmt.Errorf("unsupported user account query %T", query))
		}
	}
	return database.Map(database.Fetch[userAccountQueryRow](ctx, q.query, limit, offset), func(row userAccountQueryRow) (domain.UserAccount, error) {
		return row.User.toDomain()
	})
}

func (r *UserAccountRepository) Create(ctx context.Context, account domain.UserAccount) (domain.UserAccount, error) {
	id, err := r.db.Insert(ctx, usersTable.Name(), ptr(newUserAccountRow(account)))
	if err != nil {
		return domain.UserAccount{}, err
	}
	account.Entity = account.WithID(kernel.NewIntIdentifier(id))
	return account, nil
}

func (r *UserAccountRepository) Update(ctx context.Context, account domain.UserAccount) error {
	return r.db.Update(ctx, usersTable.Name(), byID(account.ID()), ptr(newUserAccountRow(account)))
}
