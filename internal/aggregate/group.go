// Package aggregate turns table rows into chart-ready series.
package aggregate

import (
	"github.com/KaramelBytes/vizloom-cli/internal/classify"
	"github.com/KaramelBytes/vizloom-cli/internal/table"
)

// Series is one labeled value per category.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// MultiSeries holds one value slice per measure, aligned to Labels.
type MultiSeries struct {
	Labels  []string    `json:"labels"`
	Names   []string    `json:"names"`
	Columns [][]float64 `json:"columns"`
}

// GroupByCategory counts rows per category when valueCol is empty,
// otherwise sums valueCol per category. Categories appear in first-seen
// order. Rows with a blank category are skipped. An unparseable value
// adds 0 to its category.
func GroupByCategory(t *table.Table, catCol, valueCol string) Series {
	if valueCol == "" {
		return groupCount(t, catCol)
	}
	m := SumByCategory(t, catCol, []string{valueCol})
	return Series{Labels: m.Labels, Values: m.Columns[0]}
}

func groupCount(t *table.Table, catCol string) Series {
	var s Series
	index := make(map[string]int)
	for _, key := range t.Column(catCol) {
		if table.IsNull(key) {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(s.Labels)
			index[key] = i
			s.Labels = append(s.Labels, key)
			s.Values = append(s.Values, 0)
		}
		s.Values[i]++
	}
	return s
}

// SumByCategory sums each of valueCols per category in first-seen order.
func SumByCategory(t *table.Table, catCol string, valueCols []string) MultiSeries {
	m := MultiSeries{Names: valueCols, Columns: make([][]float64, len(valueCols))}
	cats := t.Column(catCol)
	vals := make([][]string, len(valueCols))
	for j, c := range valueCols {
		vals[j] = t.Column(c)
	}
	index := make(map[string]int)
	for r, key := range cats {
		if table.IsNull(key) {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(m.Labels)
			index[key] = i
			m.Labels = append(m.Labels, key)
			for j := range m.Columns {
				m.Columns[j] = append(m.Columns[j], 0)
			}
		}
		for j := range valueCols {
			if vals[j] == nil {
				continue
			}
			if f, ok := classify.ParseNumber(vals[j][r]); ok {
				m.Columns[j][i] += f
			}
		}
	}
	return m
}

// Numbers returns the parseable values of a column, skipping the rest.
func Numbers(t *table.Table, col string) []float64 {
	raw := t.Column(col)
	out := make([]float64, 0, len(raw))
	for _, v := range raw {
		if f, ok := classify.ParseNumber(v); ok {
			out = append(out, f)
		}
	}
	return out
}
