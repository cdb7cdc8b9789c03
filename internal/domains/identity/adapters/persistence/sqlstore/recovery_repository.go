package sqlstore

import (
	"context"

	"github.com/fbraem/kwai/internal/domains/identity/domain"
	"github.com/fbraem/kwai/internal/domains/identity/ports"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var _ ports.UserRecoveryRepository = (*UserRecoveryRepository)(nil)

// UserRecoveryRepository stores password recoveries in user_recoveries.
type UserRecoveryRepository struct {
	db *database.Database
}

func NewUserRecoveryRepository(db *database.Database) *UserRecoveryRepository {
	return &UserRecoveryRepository{db: db}
}

func (r *UserRecoveryRepository) GetByUUID(ctx context.Context, uuid kernel.UniqueID) (domain.UserRecovery, error) {
	columns := append(recoveriesTable.Aliases(), usersTable.Aliases()...)
	filter := recoveriesTable.Select().
		Join(usersTable.Ref(), usersTable.Column("id")+" = "+recoveriesTable.Column("user_id")).
		Columns(columns...).
		Where(recoveriesTable.Column("uuid")+" = ?", uuid.String())
	row, ok, err := database.FetchOne[recoveryQueryRow](ctx, database.NewQuery(r.db, filter, recoveriesTable.Column("id")))
	if err != nil {
		return domain.UserRecovery{}, err
	}
	if !ok {
		return domain.UserRecovery{}, ports.ErrUserRecoveryNotFound
	}
	return row.toDomain()
}

func (r *UserRecoveryRepository) Create(ctx context.Context, recovery domain.UserRecovery) (domain.UserRecovery, error) {
	id, err := r.db.Insert(ctx, recoveriesTable.Name(), ptr(newRecoveryRow(recovery)))
	if err != nil {
		return domain.UserRecovery{}, err
	}
	recovery.Entity = recovery.WithID(kernel.NewIntIdentifier(id))
	return recovery, nil
}

func (r *UserRecoveryRepository) Update(ctx context.Context, recovery domain.UserRecovery) error {
	return r.db.Update(ctx, recoveriesTable.Name(), byID(recovery.ID()), ptr(newRecoveryRow(recovery)))
}
