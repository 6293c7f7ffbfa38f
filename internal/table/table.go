package table

import "strings"

// Table is an in-memory tabular dataset: one header row plus data rows.
// Cells are kept as raw trimmed strings; an empty string is a null.
type Table struct {
	Headers []string
	Rows    [][]string
}

// New builds a Table, padding short rows to the header width.
func New(headers []string, rows [][]string) *Table {
	t := &Table{Headers: headers, Rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		t.Rows = append(t.Rows, pad(r, len(headers)))
	}
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Index returns the position of the named column, or -1.
// Exact matches win; otherwise a case-insensitive match is accepted.
func (t *Table) Index(name string) int {
	if t == nil {
		return -1
	}
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	for i, h := range t.Headers {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}

// Has reports whether the column exists.
func (t *Table) Has(name string) bool { return t.Index(name) >= 0 }

// Column returns every value of the named column in row order.
// Unknown columns yield nil.
func (t *Table) Column(name string) []string {
	idx := t.Index(name)
	if idx < 0 {
		return nil
	}
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		if idx < len(r) {
			out[i] = r[idx]
		}
	}
	return out
}

// Value returns the cell at (row, column name), or "" when absent.
func (t *Table) Value(row int, name string) string {
	idx := t.Index(name)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if idx >= len(r) {
		return ""
	}
	return r[idx]
}

// Head returns a table holding at most n rows. The rows are shared.
func (t *Table) Head(n int) *Table {
	if n < 0 || n >= len(t.Rows) {
		return t
	}
	return &Table{Headers: t.Headers, Rows: t.Rows[:n]}
}

// IsNull reports whether a raw cell counts as missing.
func IsNull(v string) bool { return strings.TrimSpace(v) == "" }

func pad(r []string, n int) []string {
	if len(r) >= n {
		return r
	}
	tmp := make([]string, n)
	copy(tmp, r)
	return tmp
}
