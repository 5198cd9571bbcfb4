package model

// Row is one source row keyed by canonical column name.
// Columns outside the required set are carried through untouched.
type Row map[string]string

// Get returns the value of col, or "" when the column is absent.
func (r Row) Get(col string) string {
	return r[col]
}

// Table is an in-memory tabular dataset with column order preserved.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given columns.
func NewTable(name string, columns ...string) *Table {
	return &Table{Name: name, Columns: columns}
}

// HasColumn reports whether col is part of the table header.
func (t *Table) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Append adds a row built from values in column order.
// Missing trailing values are treated as empty strings.
func (t *Table) Append(values ...string) {
	row := make(Row, len(t.Columns))
	for i, c := range t.Columns {
		if i < len(values) {
			row[c] = values[i]
		} else {
			row[c] = ""
		}
	}
	t.Rows = append(t.Rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}
