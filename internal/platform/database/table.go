package database

// Table declares the name and columns of a table. It qualifies column names and
// produces the aliased column lists used by joined selects, so columns with the same
// name in different tables (id, created_at, ...) do not collide.
type Table struct {
	name    string
	alias   string
	columns []string
}

// NewTable declares a table.
func NewTable(name string, columns ...string) Table {
	return Table{name: name, columns: append([]string(nil), columns...)}
}

// As returns the same table referred to by alias, for self joins or readable joins.
func (t Table) As(alias string) Table {
	t.alias = alias
	return t
}

// Name returns the table name.
func (t Table) Name() string {
	return t.name
}

// Ref returns the table reference to use in FROM and JOIN clauses.
func (t Table) Ref() string {
	if t.alias == "" {
		return t.name
	}
	return t.name + " AS " + t.alias
}

func (t Table) qualifier() string {
	if t.alias == "" {
		return t.name
	}
	return t.alias
}

// Column returns the qualified column reference.
func (t Table) Column(name string) string {
	return t.qualifier() + "." + name
}

// Columns returns the declared column names.
func (t Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Aliases returns "table.column AS prefix_column" for all columns. The prefix defaults
// to the alias of the table (or its name) and matches the embeddedPrefix of the row struct.
func (t Table) Aliases(prefix ...string) []string {
	p := t.qualifier()
	if len(prefix) > 0 && prefix[0] != "" {
		p = prefix[0]
	}
	aliases := make([]string, len(t.columns))
	for i, column := range t.columns {
		aliases[i] = t.Column(column) + " AS " + p + "_" + column
	}
	return aliases
}

// QualifiedColumns returns all columns qualified with the table, without aliases.
func (t Table) QualifiedColumns() []string {
	columns := make([]string, len(t.columns))
	for i, column := range t.columns {
		columns[i] = t.Column(column)
	}
	return columns
}

// Select starts a statement on the table.
func (t Table) Select() Select {
	return From(t.Ref())
}
