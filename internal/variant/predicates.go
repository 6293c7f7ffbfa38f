package variant

import (
	"github.com/KaramelBytes/vizloom-cli/internal/classify"
	"github.com/KaramelBytes/vizloom-cli/internal/table"
)

// Types maps a column name to its ingestion-time type.
type Types map[string]classify.ColumnType

// Predicate decides whether an ordered column selection fits a variant.
// rows may be nil; checks that need data are then skipped or fail
// closed, as each variant documents.
type Predicate func(cols []string, types Types, rows *table.Table) bool

const (
	countMaxDistinct = 20
	multiMaxDistinct = 7
)

func (ts Types) categorical(c string) bool { return ts[c].IsCategorical() }
func (ts Types) date(c string) bool        { return ts[c].IsDate() }
func (ts Types) numeric(c string) bool     { return ts[c].IsNumeric() }
func (ts Types) catOrDate(c string) bool   { return ts.categorical(c) || ts.date(c) }

func (ts Types) allNumeric(cols []string) bool {
	for _, c := range cols {
		if !ts.numeric(c) {
			return false
		}
	}
	return len(cols) > 0
}

func distinct(rows *table.Table, col string) int {
	seen := make(map[string]struct{})
	for _, v := range rows.Column(col) {
		if !table.IsNull(v) {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}

// pair finds the (label, value) roles in a two-column selection in
// either order. label must satisfy isLabel and value must be numeric.
func pair(cols []string, ts Types, isLabel func(string) bool) (label, value string, ok bool) {
	if len(cols) != 2 {
		return "", "", false
	}
	a, b := cols[0], cols[1]
	switch {
	case isLabel(a) && ts.numeric(b):
		return a, b, true
	case ts.numeric(a) && isLabel(b):
		return b, a, true
	}
	return "", "", false
}

func barCount(cols []string, ts Types, rows *table.Table) bool {
	if len(cols) != 1 || !ts.catOrDate(cols[0]) {
		return false
	}
	return rows == nil || distinct(rows, cols[0]) <= countMaxDistinct
}

func barSingle(cols []string, ts Types, _ *table.Table) bool {
	_, _, ok := pair(cols, ts, ts.catOrDate)
	return ok
}

func barMulti(cols []string, ts Types, rows *table.Table) bool {
	label, _, ok := pair(cols, ts, ts.categorical)
	if !ok {
		return false
	}
	return rows == nil || distinct(rows, label) <= multiMaxDistinct
}

// groupedShape accepts [axis, category, value] or [axis, value, value...].
func groupedShape(cols []string, ts Types, _ *table.Table) bool {
	if len(cols) < 3 || !ts.catOrDate(cols[0]) {
		return false
	}
	if len(cols) == 3 && ts.categorical(cols[1]) && ts.numeric(cols[2]) {
		return true
	}
	return ts.allNumeric(cols[1:])
}

// lineAxis accepts a date, or a numeric column that the rows prove to
// be ordinal. Without rows a numeric axis is rejected.
func lineAxis(col string, ts Types, rows *table.Table) bool {
	if ts.date(col) {
		return true
	}
	return ts.numeric(col) && rows != nil && classify.IsNumericOrdinal(rows.Column(col))
}

func lineShape(minCols int) Predicate {
	return func(cols []string, ts Types, rows *table.Table) bool {
		if len(cols) < minCols || !lineAxis(cols[0], ts, rows) {
			return false
		}
		if len(cols) == 3 && ts.categorical(cols[1]) && ts.numeric(cols[2]) {
			return true
		}
		return ts.allNumeric(cols[1:])
	}
}

func pieShare(cols []string, ts Types, _ *table.Table) bool {
	if len(cols) == 1 {
		return ts.categorical(cols[0])
	}
	_, _, ok := pair(cols, ts, ts.categorical)
	return ok
}

func pieCount(cols []string, ts Types, _ *table.Table) bool {
	return len(cols) == 1 && ts.categorical(cols[0])
}

func scatterSimple(cols []string, ts Types, _ *table.Table) bool {
	if len(cols) != 2 {
		return false
	}
	if ts.allNumeric(cols) {
		return true
	}
	_, _, ok := pair(cols, ts, ts.categorical)
	return ok
}

func scatterBubble(cols []string, ts Types, _ *table.Table) bool {
	return len(cols) == 3 && ts.allNumeric(cols)
}

func histogramStandard(cols []string, ts Types, _ *table.Table) bool {
	return len(cols) == 1 && ts.numeric(cols[0])
}
