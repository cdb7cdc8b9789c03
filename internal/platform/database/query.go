package database

import (
	"context"
	"fmt"
	"iter"
)

// Query is the statement a repository query object accumulates filters on.
//
// The filter statement holds FROM, the joins needed by the filters, the conditions and
// the ordering. For aggregates spread over several rows (texts, related rows), a detail
// statement can be attached: the filter statement then selects the paged keys and the
// detail statement fetches all rows of those keys.
type Query struct {
	db          *Database
	filter      Select
	countColumn string
	detail      *Select
	key         string
}

// NewQuery creates a query on filter. countColumn is used by Count to count distinct
// entities, usually the primary key of the main table.
func NewQuery(db *Database, filter Select, countColumn string) Query {
	return Query{db: db, filter: filter, countColumn: countColumn}
}

// WithDetail attaches the statement used to fetch rows of the keys selected by the
// filter statement. key is the qualified key column present in both statements.
func (q Query) WithDetail(detail Select, key string) Query {
	q.detail = &detail
	q.key = key
	return q
}

// Where returns a new query with an extra condition.
func (q Query) Where(sql string, args ...any) Query {
	q.filter = q.filter.Where(sql, args...)
	return q
}

// Join returns a new query with an extra inner join on the filter statement.
func (q Query) Join(table, on string, args ...any) Query {
	q.filter = q.filter.Join(table, on, args...)
	return q
}

// OrderBy returns a new query with the given ordering.
func (q Query) OrderBy(columns ...string) Query {
	q.filter = q.filter.OrderBy(columns...)
	return q
}

// Filter returns the filter statement, for use as subquery.
func (q Query) Filter() Select {
	return q.filter
}

// Count returns the number of distinct entities matching the filters. Limit, offset
// and ordering never influence the count.
func (q Query) Count(ctx context.Context) (int64, error) {
	sel := q.filter.Unpaged().GroupBy().Columns(fmt.Sprintf("COUNT(DISTINCT %s) AS c", q.countColumn))
	var count int64
	if err := sel.build(ctx, q.db, q.db.conn(ctx)).Row().Scan(&count); err != nil {
		return 0, &QueryError{SQL: q.db.statement(ctx, sel), Err: err}
	}
	return count, nil
}

func (q Query) page(limit, offset int) Select {
	paged := q.filter.Limit(limit).Offset(offset)
	if q.detail == nil {
		return paged
	}
	ordering := appendCopy(q.filter.orderBy, q.key)
	return q.detail.Where(q.key+" IN (?)", paged.Columns(q.key)).OrderBy(ordering...)
}

// FetchOne returns the first row of the query. ok is false when no row matches.
func FetchOne[R any](ctx context.Context, q Query) (row R, ok bool, err error) {
	for r, err := range Fetch[R](ctx, q, 0, 0) {
		if err != nil {
			return row, false, err
		}
		return r, true, nil
	}
	return row, false, nil
}

// Fetch streams the rows of the requested page. A limit of 0 means no limit.
// The rows are scanned into R with gorm, so R declares the column names in its tags.
// No other statement may run on the same transaction while the sequence is consumed.
func Fetch[R any](ctx context.Context, q Query, limit, offset int) iter.Seq2[R, error] {
	return func(yield func(R, error) bool) {
		var zero R
		sel := q.page(limit, offset)
		conn := q.db.conn(ctx)
		rows, err := sel.build(ctx, q.db, conn).Rows()
		if err != nil {
			yield(zero, &QueryError{SQL: q.db.statement(ctx, sel), Err: err})
			return
		}
		defer rows.Close()
		for rows.Next() {
			var row R
			if err := conn.ScanRows(rows, &row); err != nil {
				yield(zero, &QueryError{SQL: q.db.statement(ctx, sel), Err: err})
				return
			}
			if !yield(row, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(zero, &QueryError{SQL: q.db.statement(ctx, sel), Err: err})
		}
	}
}

// FetchAll collects all rows of the requested page.
func FetchAll[R any](ctx context.Context, q Query, limit, offset int) ([]R, error) {
	var rows []R
	for row, err := range Fetch[R](ctx, q, limit, offset) {
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SelectAll runs a statement that is not bound to a repository query and collects its rows.
func SelectAll[R any](ctx context.Context, db *Database, sel Select) ([]R, error) {
	return FetchAll[R](ctx, NewQuery(db, sel, ""), 0, 0)
}

// Group folds consecutive rows with the same key into one slice.
func Group[R any, K comparable](rows iter.Seq2[R, error], key func(R) K) iter.Seq2[[]R, error] {
	return func(yield func([]R, error) bool) {
		var (
			group   []R
			current K
		)
		for row, err := range rows {
			if err != nil {
				yield(nil, err)
				return
			}
			k := key(row)
			if len(group) > 0 && k != current {
				if !yield(group, nil) {
					return
				}
				group = nil
			}
			current = k
			group = append(group, row)
		}
		if len(group) > 0 {
			yield(group, nil)
		}
	}
}

// Map converts every value of seq with fn. The first error ends the sequence.
func Map[R, E any](seq iter.Seq2[R, error], fn func(R) (E, error)) iter.Seq2[E, error] {
	return func(yield func(E, error) bool) {
		var zero E
		for value, err := range seq {
			if err != nil {
				yield(zero, err)
				return
			}
			mapped, err := fn(value)
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(mapped, nil) {
				return
			}
		}
	}
}
