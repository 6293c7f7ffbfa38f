// Package render turns a chart request into a data bundle and draws it
// as HTML (go-echarts), JSON or a terminal preview.
package render

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/vizloom-cli/internal/aggregate"
	"github.com/KaramelBytes/vizloom-cli/internal/classify"
	"github.com/KaramelBytes/vizloom-cli/internal/table"
	"github.com/KaramelBytes/vizloom-cli/internal/variant"
)

var (
	// ErrIncompatible is returned when a variant cannot render the columns.
	ErrIncompatible = errors.New("incompatible chart request")
	// ErrUnknownVariant is returned for a family/variant pair not in the table.
	ErrUnknownVariant = errors.New("unknown chart variant")
)

// Chart kinds, the shape a renderer draws.
const (
	KindBar       = "bar"
	KindLine      = "line"
	KindArea      = "area"
	KindPie       = "pie"
	KindScatter   = "scatter"
	KindHistogram = "histogram"
)

// horizontalMinLabels flips single-series bars once labels get crowded.
const horizontalMinLabels = 15

// Request asks for one chart variant over an ordered column selection.
type Request struct {
	Family  string
	Variant string
	Columns []string
	Table   *table.Table
	Types   variant.Types
	Palette Palette
}

// Point is a scatter or bubble point.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"r,omitempty"`
	Label string  `json:"label,omitempty"`
}

// Dataset is one series in a bundle. Data is aligned to Bundle.Labels;
// nil entries are gaps.
type Dataset struct {
	Label  string     `json:"label"`
	Data   []*float64 `json:"data,omitempty"`
	Points []Point    `json:"points,omitempty"`
	Color  string     `json:"color,omitempty"`
	Colors []string   `json:"colors,omitempty"`
}

// Options carries rendering hints.
type Options struct {
	Kind       string         `json:"kind"`
	Stacked    bool           `json:"stacked"`
	Percent    bool           `json:"percent"`
	ShowLegend bool           `json:"showLegend"`
	Horizontal bool           `json:"horizontal"`
	Donut      bool           `json:"donut,omitempty"`
	AxisUnit   aggregate.Unit `json:"axisUnit"`
}

// Bundle is everything a renderer needs to draw one chart.
type Bundle struct {
	Family   string    `json:"family"`
	Variant  string    `json:"variant"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
	Options  Options   `json:"options"`
}

// Build computes the bundle for req.
func Build(req Request) (*Bundle, error) {
	if _, ok := variant.Lookup(req.Family, req.Variant); !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnknownVariant, req.Family, req.Variant)
	}
	if !variant.Compatible(req.Family, req.Variant, req.Columns, req.Types, req.Table) {
		return nil, fmt.Errorf("%w: %s/%s cannot render [%s]", ErrIncompatible,
			req.Family, req.Variant, strings.Join(req.Columns, ", "))
	}
	pal := req.Palette
	if len(pal) == 0 {
		pal = DefaultPalette
	}
	b := &Bundle{Family: req.Family, Variant: req.Variant}
	t, cols, ts := req.Table, req.Columns, req.Types

	switch req.Family {
	case variant.Bar:
		b.Options.Kind = KindBar
		switch req.Variant {
		case "count":
			s := aggregate.GroupByCategory(t, cols[0], "")
			b.single("Count", s, pal.Color(0))
		case "single", "multi":
			label, value := roles(cols, ts)
			s := aggregate.GroupByCategory(t, label, value)
			b.single(value, s, pal.Color(0))
			if req.Variant == "multi" {
				b.Datasets[0].Color = ""
				b.Datasets[0].Colors = pal.Take(len(s.Labels))
			}
		default:
			b.grouped(t, cols, ts, pal)
			b.Options.Stacked = req.Variant != "grouped"
			if req.Variant == "proportional" {
				b.normalize()
			}
		}
		b.Options.Horizontal = len(b.Datasets) == 1 && len(b.Labels) >= horizontalMinLabels
	case variant.Line:
		b.Options.Kind = KindLine
		if req.Variant == "area" {
			b.Options.Kind = KindArea
		}
		b.lines(t, cols, ts, pal)
		b.Options.Stacked = req.Variant == "area" && len(b.Datasets) > 1
	case variant.Pie:
		b.Options.Kind = KindPie
		b.Options.Donut = req.Variant == "donut"
		var s aggregate.Series
		name := "Count"
		if len(cols) == 1 {
			s = aggregate.GroupByCategory(t, cols[0], "")
		} else {
			label, value := roles(cols, ts)
			s = aggregate.GroupByCategory(t, label, value)
			name = value
		}
		b.single(name, s, "")
		b.Datasets[0].Colors = pal.Take(len(s.Labels))
	case variant.Scatter:
		b.Options.Kind = KindScatter
		b.scatter(t, cols, ts, req.Variant == "bubble", pal)
	case variant.Histogram:
		b.Options.Kind = KindHistogram
		bins := aggregate.Histogram(aggregate.Numbers(t, cols[0]))
		counts := make([]float64, len(bins.Counts))
		for i, c := range bins.Counts {
			counts[i] = float64(c)
		}
		b.single(cols[0], aggregate.Series{Labels: bins.Labels(), Values: counts}, pal.Color(0))
	}

	b.Options.ShowLegend = len(b.Datasets) > 1 || b.Options.Kind == KindPie
	b.Options.AxisUnit = aggregate.UnitFor(b.maxValue())
	return b, nil
}

// roles picks the label and value columns of a two-column selection.
func roles(cols []string, ts variant.Types) (label, value string) {
	if ts[cols[0]].IsNumeric() {
		return cols[1], cols[0]
	}
	return cols[0], cols[1]
}

func (b *Bundle) single(name string, s aggregate.Series, color string) {
	b.Labels = s.Labels
	b.Datasets = []Dataset{{Label: name, Data: ptrs(s.Values), Color: color}}
}

// grouped handles [axis, category, value] by pivoting and
// [axis, value...] by summing each measure per axis value.
func (b *Bundle) grouped(t *table.Table, cols []string, ts variant.Types, pal Palette) {
	if len(cols) == 3 && ts[cols[1]].IsCategorical() {
		b.pivot(aggregate.Pivot(t, cols[0], cols[1], cols[2]), pal)
		return
	}
	m := aggregate.SumByCategory(t, cols[0], cols[1:])
	b.Labels = m.Labels
	for i, name := range m.Names {
		b.Datasets = append(b.Datasets, Dataset{Label: name, Data: ptrs(m.Columns[i]), Color: pal.Color(i)})
	}
}

// lines plots over a sorted axis. A middle categorical column splits
// the value into one series per category.
func (b *Bundle) lines(t *table.Table, cols []string, ts variant.Types, pal Palette) {
	if len(cols) == 3 && ts[cols[1]].IsCategorical() {
		b.pivot(aggregate.Pivot(t, cols[0], cols[1], cols[2]), pal)
		return
	}
	for i, m := range cols[1:] {
		p := aggregate.Pivot(t, cols[0], "", m)
		b.Labels = p.Axis
		var data []*float64
		if len(p.Series) > 0 {
			data = p.Series[0].Values
		}
		b.Datasets = append(b.Datasets, Dataset{Label: m, Data: data, Color: pal.Color(i)})
	}
}

func (b *Bundle) pivot(p aggregate.Pivoted, pal Palette) {
	b.Labels = p.Axis
	for i, s := range p.Series {
		b.Datasets = append(b.Datasets, Dataset{Label: s.Name, Data: s.Values, Color: pal.Color(i)})
	}
}

func (b *Bundle) normalize() {
	series := make([][]float64, len(b.Datasets))
	for i, d := range b.Datasets {
		series[i] = aggregate.Dense(d.Data)
	}
	for i, s := range aggregate.Normalize(series) {
		b.Datasets[i].Data = ptrs(s)
	}
	b.Options.Percent = true
}

func (b *Bundle) scatter(t *table.Table, cols []string, ts variant.Types, bubble bool, pal Palette) {
	if !bubble && !(ts[cols[0]].IsNumeric() && ts[cols[1]].IsNumeric()) {
		b.dotPlot(t, cols, ts, pal)
		return
	}
	d := Dataset{Label: cols[1] + " vs " + cols[0], Color: pal.Color(0)}
	for r := 0; r < t.Len(); r++ {
		x, okx := num(t.Value(r, cols[0]))
		y, oky := num(t.Value(r, cols[1]))
		if !okx || !oky {
			continue
		}
		p := Point{X: x, Y: y}
		if bubble {
			size, ok := num(t.Value(r, cols[2]))
			if !ok {
				continue
			}
			p.Size = size
		}
		d.Points = append(d.Points, p)
	}
	b.Datasets = []Dataset{d}
}

// dotPlot places one point per row at its category's position.
func (b *Bundle) dotPlot(t *table.Table, cols []string, ts variant.Types, pal Palette) {
	label, value := roles(cols, ts)
	index := make(map[string]int)
	d := Dataset{Label: value, Color: pal.Color(0)}
	for r := 0; r < t.Len(); r++ {
		cat := t.Value(r, label)
		y, ok := num(t.Value(r, value))
		if table.IsNull(cat) || !ok {
			continue
		}
		i, seen := index[cat]
		if !seen {
			i = len(b.Labels)
			index[cat] = i
			b.Labels = append(b.Labels, cat)
		}
		d.Points = append(d.Points, Point{X: float64(i), Y: y, Label: cat})
	}
	b.Datasets = []Dataset{d}
}

func (b *Bundle) maxValue() float64 {
	var m float64
	for _, d := range b.Datasets {
		for _, v := range d.Data {
			if v != nil {
				m = math.Max(m, math.Abs(*v))
			}
		}
		for _, p := range d.Points {
			m = math.Max(m, math.Abs(p.Y))
		}
	}
	return m
}

// Dense returns dataset i's values with gaps as zero.
func (b *Bundle) Dense(i int) []float64 { return aggregate.Dense(b.Datasets[i].Data) }

func num(s string) (float64, bool) { return classify.ParseNumber(s) }

func ptrs(vals []float64) []*float64 {
	out := make([]*float64, len(vals))
	for i := range vals {
		v := vals[i]
		out[i] = &v
	}
	return out
}
