// Package variant decides which concrete chart variants can render an
// exact, ordered column selection.
package variant

import "github.com/KaramelBytes/vizloom-cli/internal/table"

// Family keys.
const (
	Bar       = "Bar"
	Line      = "Line"
	Pie       = "Pie"
	Scatter   = "Scatter"
	Histogram = "Histogram"

	// All selects every family in AutoSelect.
	All = "all"
)

// Variant is one rendering of a chart family.
type Variant struct {
	Key        string
	Label      string
	Compatible Predicate
}

// Family groups variants under a family key.
type Family struct {
	Key      string
	Variants []Variant
}

// Match names a compatible family/variant pair.
type Match struct {
	Family  string `json:"family"`
	Variant string `json:"variant"`
	Label   string `json:"label"`
}

var families = []Family{
	{Key: Bar, Variants: []Variant{
		{Key: "count", Label: "Count of rows per category", Compatible: barCount},
		{Key: "single", Label: "Single color", Compatible: barSingle},
		{Key: "multi", Label: "Multi color", Compatible: barMulti},
		{Key: "grouped", Label: "Grouped", Compatible: groupedShape},
		{Key: "stacked", Label: "Stacked", Compatible: groupedShape},
		{Key: "proportional", Label: "Stacked 100%", Compatible: groupedShape},
	}},
	{Key: Line, Variants: []Variant{
		{Key: "simple", Label: "Simple line", Compatible: lineShape(2)},
		{Key: "multi", Label: "Multiple lines", Compatible: lineShape(3)},
		{Key: "area", Label: "Area", Compatible: lineShape(2)},
	}},
	{Key: Pie, Variants: []Variant{
		{Key: "standard", Label: "Pie", Compatible: pieShare},
		{Key: "donut", Label: "Donut", Compatible: pieShare},
		{Key: "count", Label: "Count of rows per category", Compatible: pieCount},
	}},
	{Key: Scatter, Variants: []Variant{
		{Key: "simple", Label: "Scatter", Compatible: scatterSimple},
		{Key: "bubble", Label: "Bubble", Compatible: scatterBubble},
	}},
	{Key: Histogram, Variants: []Variant{
		{Key: "standard", Label: "Histogram", Compatible: histogramStandard},
	}},
}

// Families returns the variant table in evaluation order.
func Families() []Family { return families }

// Lookup finds a variant by family and key.
func Lookup(family, key string) (Variant, bool) {
	for _, f := range families {
		if f.Key != family {
			continue
		}
		for _, v := range f.Variants {
			if v.Key == key {
				return v, true
			}
		}
	}
	return Variant{}, false
}

// Compatible reports whether the named variant can render cols.
// Unknown families and variants are never compatible.
func Compatible(family, key string, cols []string, types Types, rows *table.Table) bool {
	v, ok := Lookup(family, key)
	if !ok {
		return false
	}
	return v.Compatible(cols, types, rows)
}

// CompatibleVariants lists every family/variant pair that fits cols.
func CompatibleVariants(cols []string, types Types, rows *table.Table) []Match {
	var out []Match
	for _, f := range families {
		for _, v := range f.Variants {
			if v.Compatible(cols, types, rows) {
				out = append(out, Match{Family: f.Key, Variant: v.Key, Label: v.Label})
			}
		}
	}
	return out
}

// CanExtend reports whether adding candidate to selection would make
// any variant compatible.
func CanExtend(selection []string, candidate string, types Types, rows *table.Table) bool {
	for _, c := range selection {
		if c == candidate {
			return false
		}
	}
	next := append(append(make([]string, 0, len(selection)+1), selection...), candidate)
	return len(CompatibleVariants(next, types, rows)) > 0
}

// maxAutoColumns bounds the combination size AutoSelect searches.
const maxAutoColumns = 4

// AutoSelect searches column combinations of size 1 to 4, in column
// order, for the first one some variant of family (or All) accepts.
func AutoSelect(family string, columns []string, types Types, rows *table.Table) ([]string, Match, bool) {
	for k := 1; k <= maxAutoColumns && k <= len(columns); k++ {
		for _, idx := range Combinations(len(columns), k) {
			cols := make([]string, k)
			for i, j := range idx {
				cols[i] = columns[j]
			}
			for _, f := range families {
				if family != All && f.Key != family {
					continue
				}
				for _, v := range f.Variants {
					if v.Compatible(cols, types, rows) {
						return cols, Match{Family: f.Key, Variant: v.Key, Label: v.Label}, true
					}
				}
			}
		}
	}
	return nil, Match{}, false
}

// Combinations returns every k-subset of [0, n) in lexicographic order.
func Combinations(n, k int) [][]int {
	if k <= 0 || k > n {
		return nil
	}
	var out [][]int
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		out = append(out, append([]int(nil), idx...))
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
