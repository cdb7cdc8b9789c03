package database

import (
	"context"
	"errors"
)

// ErrNestedUnitOfWork is returned when a unit of work is started inside another one.
var ErrNestedUnitOfWork = errors.New("unit of work already active")

// UnitOfWork brackets repository writes in one transaction.
type UnitOfWork struct {
	db           *Database
	alwaysCommit bool
}

// UnitOfWorkOption configures a UnitOfWork.
type UnitOfWorkOption func(*UnitOfWork)

// AlwaysCommit commits even when the work fails. Used for imports where the rows
// written before a failure must survive.
func AlwaysCommit() UnitOfWorkOption {
	return func(u *UnitOfWork) {
		u.alwaysCommit = true
	}
}

// NewUnitOfWork creates a unit of work on db.
func NewUnitOfWork(db *Database, opts ...UnitOfWorkOption) *UnitOfWork {
	u := &UnitOfWork{db: db}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Do runs fn in a transaction. The transaction is committed when fn succeeds and
// rolled back when fn returns an error or panics. fn must use the context it receives.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if InTransaction(ctx) {
		return ErrNestedUnitOfWork
	}
	txCtx, err := u.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			_ = u.db.Rollback(txCtx)
			panic(r)
		}
	}()

	if err := fn(txCtx); err != nil {
		if u.alwaysCommit {
			return errors.Join(err, u.db.Commit(txCtx))
		}
		return errors.Join(err, u.db.Rollback(txCtx))
	}
	return u.db.Commit(txCtx)
}
