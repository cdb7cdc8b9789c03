// Package database wraps a gorm connection with the statements the repositories need:
// inserts returning the generated key, updates and deletes by predicate, counting and
// lazily streaming rows described by an immutable Select.
//
// A transaction is carried by the context. Every statement executed with a context
// returned by Begin (or received inside Transaction / UnitOfWork.Do) joins it.
package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNoTransaction is returned by Commit and Rollback when the context carries no transaction.
	ErrNoTransaction = errors.New("no transaction in context")
	// ErrNestedTransaction is returned when a transaction is started while one is active.
	ErrNestedTransaction = errors.New("transaction already active")
)

// Keyed is implemented by rows with an auto generated primary key.
type Keyed interface {
	Key() int64
}

// Database executes statements for the repositories.
type Database struct {
	db     *gorm.DB
	name   string
	logger *slog.Logger
}

// Option configures a Database.
type Option func(*Database)

// WithLogger sets the logger used for statement logging.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Database) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithName sets the database name added to every log record.
func WithName(name string) Option {
	return func(d *Database) {
		d.name = name
	}
}

// New wraps db. Statements are logged on debug level through the configured logger.
func New(db *gorm.DB, opts ...Option) *Database {
	d := &Database{db: db, name: "kwai", logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	d.db = db.Session(&gorm.Session{Logger: newGormLogger(d.logger, d.name)})
	return d
}

// Gorm exposes the underlying connection for migrations and health checks.
func (d *Database) Gorm() *gorm.DB {
	return d.db
}

type txKey struct{}

func txFrom(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	return tx, ok
}

// InTransaction reports whether ctx carries an active transaction.
func InTransaction(ctx context.Context) bool {
	_, ok := txFrom(ctx)
	return ok
}

func (d *Database) conn(ctx context.Context) *gorm.DB {
	if tx, ok := txFrom(ctx); ok {
		return tx.WithContext(ctx)
	}
	return d.db.WithContext(ctx)
}

// Begin starts a transaction and returns a context carrying it.
func (d *Database) Begin(ctx context.Context) (context.Context, error) {
	if InTransaction(ctx) {
		return ctx, ErrNestedTransaction
	}
	tx := d.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return ctx, &QueryError{SQL: "BEGIN", Err: tx.Error}
	}
	return context.WithValue(ctx, txKey{}, tx), nil
}

// Commit commits the transaction carried by ctx.
func (d *Database) Commit(ctx context.Context) error {
	tx, ok := txFrom(ctx)
	if !ok {
		return ErrNoTransaction
	}
	if err := tx.Commit().Error; err != nil {
		return &QueryError{SQL: "COMMIT", Err: err}
	}
	return nil
}

// Rollback rolls back the transaction carried by ctx.
func (d *Database) Rollback(ctx context.Context) error {
	tx, ok := txFrom(ctx)
	if !ok {
		return ErrNoTransaction
	}
	if err := tx.Rollback().Error; err != nil {
		return &QueryError{SQL: "ROLLBACK", Err: err}
	}
	return nil
}

// Transaction runs fn in a transaction. When ctx already carries one, fn joins it and
// the outer owner decides about commit or rollback.
func (d *Database) Transaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if InTransaction(ctx) {
		return fn(ctx)
	}
	txCtx, err := d.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			_ = d.Rollback(txCtx)
			panic(r)
		}
	}()
	if err := fn(txCtx); err != nil {
		if rollbackErr := d.Rollback(txCtx); rollbackErr != nil {
			return errors.Join(err, rollbackErr)
		}
		return err
	}
	return d.Commit(txCtx)
}

// Insert stores row (a pointer to a row struct) in table and returns the generated key.
// Rows without a generated key return 0.
func (d *Database) Insert(ctx context.Context, table string, row any) (int64, error) {
	if err := d.conn(ctx).Table(table).Create(row).Error; err != nil {
		return 0, &QueryError{SQL: "INSERT INTO " + table, Err: err}
	}
	if keyed, ok := row.(Keyed); ok {
		return keyed.Key(), nil
	}
	return 0, nil
}

// Update writes all columns of row, except id, to the rows of table matching where.
func (d *Database) Update(ctx context.Context, table string, where Predicate, row any) error {
	result := d.conn(ctx).Table(table).Where(where.SQL, d.args(ctx, where.Args)...).Select("*").Omit("id").Updates(row)
	if result.Error != nil {
		return &QueryError{SQL: "UPDATE " + table + " WHERE " + where.SQL, Err: result.Error}
	}
	return nil
}

// Delete removes the rows of table matching where.
func (d *Database) Delete(ctx context.Context, table string, where Predicate) error {
	return d.Execute(ctx, "DELETE FROM "+table+" WHERE "+where.SQL, where.Args...)
}

// DeleteCount removes the rows of table matching where and returns how many were removed.
func (d *Database) DeleteCount(ctx context.Context, table string, where Predicate) (int64, error) {
	sql := "DELETE FROM " + table + " WHERE " + where.SQL
	result := d.conn(ctx).Exec(sql, d.args(ctx, where.Args)...)
	if result.Error != nil {
		return 0, &QueryError{SQL: sql, Err: result.Error}
	}
	return result.RowsAffected, nil
}

// Execute runs a statement that returns no rows. A Select argument is expanded as a subquery.
func (d *Database) Execute(ctx context.Context, sql string, args ...any) error {
	if err := d.conn(ctx).Exec(sql, d.args(ctx, args)...).Error; err != nil {
		return &QueryError{SQL: sql, Err: err}
	}
	return nil
}

func (d *Database) args(ctx context.Context, args []any) []any {
	if len(args) == 0 {
		return nil
	}
	converted := make([]any, len(args))
	for i, arg := range args {
		if sel, ok := arg.(Select); ok {
			converted[i] = sel.build(ctx, d, d.conn(ctx).Session(&gorm.Session{NewDB: true}))
			continue
		}
		converted[i] = arg
	}
	return converted
}

// statement returns the SQL text of sel, used for diagnostics only.
func (d *Database) statement(ctx context.Context, sel Select) string {
	return d.db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []map[string]any
		return sel.build(ctx, d, tx.WithContext(ctx)).Find(&rows)
	})
}

// QueryError wraps a failing statement. The SQL is kept for diagnostics and must not
// be shown to end users.
type QueryError struct {
	SQL string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("database: %v [sql: %s]", e.Err, strings.TrimSpace(e.SQL))
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
