package sqlstore

import (
	"context"
	"iter"

	"github.com/fbraem/kwai/internal/domains/identity/domain"
	"github.com/fbraem/kwai/internal/domains/identity/ports"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var _ ports.UserLogRepository = (*UserLogRepository)(nil)

type userLogQueryRow struct {
	Log userLogRow `gorm:"embedded;embeddedPrefix:user_logs_"`
}

// UserLogRepository stores login attempts in user_logs.
type UserLogRepository struct {
	db *database.Database
}

func NewUserLogRepository(db *database.Database) *UserLogRepository {
	return &UserLogRepository{db: db}
}

func (r *UserLogRepository) Create(ctx context.Context, log domain.UserLog) (domain.UserLog, error) {
	id, err := r.db.Insert(ctx, userLogsTable.Name(), ptr(newUserLogRow(log)))
	if err != nil {
		return domain.UserLog{}, err
	}
	log.Entity = log.WithID(kernel.NewIntIdentifier(id))
	return log, nil
}

// GetByEmail returns the attempts made with email, the most recent first.
func (r *UserLogRepository) GetByEmail(ctx context.Context, email string, limit, offset int) iter.Seq2[domain.UserLog, error] {
	filter := userLogsTable.Select().
		Columns(userLogsTable.Aliases()...).
		Where(userLogsTable.Column("email")+" = ?", email)
	query := database.NewQuery(r.db, filter, userLogsTable.Column("id")).
		OrderBy(userLogsTable.Column("id") + " DESC")
	return database.Map(database.Fetch[userLogQueryRow](ctx, query, limit, offset), func(row userLogQueryRow) (domain.UserLog, error) {
		return row.Log.toDomain(), nil
	})
}
