package aggregate

import (
	"sort"

	"github.com/KaramelBytes/vizloom-cli/internal/classify"
	"github.com/KaramelBytes/vizloom-cli/internal/table"
)

// NamedSeries is one category's values aligned to a pivot axis.
// A nil entry marks an axis position with no source rows.
type NamedSeries struct {
	Name   string     `json:"name"`
	Values []*float64 `json:"values"`
}

// Pivoted is a multi-series table over a shared sorted axis.
type Pivoted struct {
	Axis   []string      `json:"axis"`
	Series []NamedSeries `json:"series"`
}

// Pivot builds one series per distinct catCol value (first-seen order)
// over the sorted distinct values of axisCol. Duplicate (axis, category)
// pairs are averaged. Rows with an empty axis, an empty category or an
// unparseable value are skipped.
func Pivot(t *table.Table, axisCol, catCol, valueCol string) Pivoted {
	axis := t.Column(axisCol)
	cats := t.Column(catCol)
	vals := t.Column(valueCol)

	type acc struct {
		sum float64
		n   int
	}
	cells := make(map[[2]string]*acc)
	axisSeen := make(map[string]struct{})
	var axisKeys, catKeys []string
	catSeen := make(map[string]struct{})

	for r := range axis {
		a := axis[r]
		if table.IsNull(a) {
			continue
		}
		var c string
		if cats != nil {
			if table.IsNull(cats[r]) {
				continue
			}
			c = cats[r]
		}
		if _, ok := catSeen[c]; !ok {
			catSeen[c] = struct{}{}
			catKeys = append(catKeys, c)
		}
		if _, ok := axisSeen[a]; !ok {
			axisSeen[a] = struct{}{}
			axisKeys = append(axisKeys, a)
		}
		if vals == nil {
			continue
		}
		f, ok := classify.ParseNumber(vals[r])
		if !ok {
			continue
		}
		k := [2]string{a, c}
		if cells[k] == nil {
			cells[k] = &acc{}
		}
		cells[k].sum += f
		cells[k].n++
	}

	SortAxis(axisKeys)
	p := Pivoted{Axis: axisKeys}
	for _, c := range catKeys {
		s := NamedSeries{Name: c, Values: make([]*float64, len(axisKeys))}
		for i, a := range axisKeys {
			if cell := cells[[2]string{a, c}]; cell != nil {
				mean := cell.sum / float64(cell.n)
				s.Values[i] = &mean
			}
		}
		p.Series = append(p.Series, s)
	}
	return p
}

// SortAxis orders axis keys chronologically when they are all dates,
// numerically when they are all numbers, and lexically otherwise.
func SortAxis(keys []string) {
	if allParse(keys, func(s string) bool { _, ok := classify.ParseDate(s); return ok }) {
		sort.SliceStable(keys, func(i, j int) bool {
			a, _ := classify.ParseDate(keys[i])
			b, _ := classify.ParseDate(keys[j])
			return a.Before(b)
		})
		return
	}
	if allParse(keys, func(s string) bool { _, ok := classify.ParseNumber(s); return ok }) {
		sort.SliceStable(keys, func(i, j int) bool {
			a, _ := classify.ParseNumber(keys[i])
			b, _ := classify.ParseNumber(keys[j])
			return a < b
		})
		return
	}
	sort.Strings(keys)
}

func allParse(keys []string, ok func(string) bool) bool {
	for _, k := range keys {
		if !ok(k) {
			return false
		}
	}
	return len(keys) > 0
}

// Dense replaces nil gaps with zero, for renderers that need numbers.
func Dense(values []*float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if v != nil {
			out[i] = *v
		}
	}
	return out
}
