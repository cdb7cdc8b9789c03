package database

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// Predicate is a SQL condition with its arguments. Arguments use ? placeholders.
// A Select argument is rendered as a subquery.
type Predicate struct {
	SQL  string
	Args []any
}

// Where creates a predicate.
func Where(sql string, args ...any) Predicate {
	return Predicate{SQL: sql, Args: args}
}

type join struct {
	kind  string
	table string
	on    Predicate
}

// Select describes a SELECT statement. It is a value: every builder method returns
// a new Select and leaves the receiver untouched, so a base statement can be shared.
type Select struct {
	from    string
	joins   []join
	columns []string
	where   []Predicate
	groupBy []string
	orderBy []string
	limit   int
	offset  int
}

// From starts a statement on table. table may contain an alias ("users AS owners").
func From(table string) Select {
	return Select{from: table}
}

// Join adds an inner join.
func (s Select) Join(table, on string, args ...any) Select {
	s.joins = appendCopy(s.joins, join{kind: "JOIN", table: table, on: Where(on, args...)})
	return s
}

// LeftJoin adds a left outer join.
func (s Select) LeftJoin(table, on string, args ...any) Select {
	s.joins = appendCopy(s.joins, join{kind: "LEFT JOIN", table: table, on: Where(on, args...)})
	return s
}

// Columns replaces the column list.
func (s Select) Columns(columns ...string) Select {
	s.columns = append([]string(nil), columns...)
	return s
}

// AddColumns appends to the column list.
func (s Select) AddColumns(columns ...string) Select {
	s.columns = appendCopy(s.columns, columns...)
	return s
}

// Where adds a condition. All conditions are combined with AND.
func (s Select) Where(sql string, args ...any) Select {
	s.where = appendCopy(s.where, Where(sql, args...))
	return s
}

// GroupBy sets the grouping columns.
func (s Select) GroupBy(columns ...string) Select {
	s.groupBy = append([]string(nil), columns...)
	return s
}

// OrderBy replaces the ordering.
func (s Select) OrderBy(columns ...string) Select {
	s.orderBy = append([]string(nil), columns...)
	return s
}

// Limit sets the maximum number of rows. Zero means no limit.
func (s Select) Limit(limit int) Select {
	s.limit = limit
	return s
}

// Offset sets the number of rows to skip.
func (s Select) Offset(offset int) Select {
	s.offset = offset
	return s
}

// Unpaged returns the statement without limit, offset and ordering.
func (s Select) Unpaged() Select {
	s.limit = 0
	s.offset = 0
	s.orderBy = nil
	return s
}

func (s Select) build(ctx context.Context, d *Database, tx *gorm.DB) *gorm.DB {
	q := tx.Table(s.from)
	for _, j := range s.joins {
		q = q.Joins(j.kind+" "+j.table+" ON "+j.on.SQL, d.args(ctx, j.on.Args)...)
	}
	if len(s.columns) > 0 {
		q = q.Select(strings.Join(s.columns, ", "))
	}
	for _, w := range s.where {
		q = q.Where(w.SQL, d.args(ctx, w.Args)...)
	}
	if len(s.groupBy) > 0 {
		q = q.Group(strings.Join(s.groupBy, ", "))
	}
	for _, o := range s.orderBy {
		q = q.Order(o)
	}
	if s.limit > 0 {
		q = q.Limit(s.limit)
	}
	if s.offset > 0 {
		q = q.Offset(s.offset)
	}
	return q
}

func appendCopy[T any](values []T, extra ...T) []T {
	out := make([]T, 0, len(values)+len(extra))
	out = append(out, values...)
	return append(out, extra...)
}
