// Package suggest maps a set of classified fields to a ranked list of
// chart types using an ordered rule table.
package suggest

import (
	"fmt"
	"sort"

	"github.com/KaramelBytes/vizloom-cli/internal/field"
)

// Chart types emitted by the rule table.
const (
	Histogram           = "histogram"
	Bar                 = "bar"
	Pie                 = "pie"
	Line                = "line"
	Scatter             = "scatter"
	GroupedBar          = "grouped_bar"
	StackedBar          = "stacked_bar"
	StackedArea         = "stacked_area"
	Heatmap             = "heatmap"
	Radar               = "radar"
	ParallelCoordinates = "parallel_coordinates"
	Treemap             = "treemap"
	Density             = "density"
	Map                 = "map"
	Table               = "table"
)

// ReasonNoFields is returned for an empty field set.
const ReasonNoFields = "No fields selected"

const (
	pieMaxCardinality = 7
	densityMinRecords = 10000
)

// Suggestion is one recommended chart type.
type Suggestion struct {
	Type     string `json:"type"`
	Priority int    `json:"priority"`
	Reason   string `json:"reason"`
}

// Result is the outcome of Suggest.
type Result struct {
	Suggestions   []Suggestion `json:"suggestions"`
	Reason        string       `json:"reason,omitempty"`
	FieldAnalysis Analysis     `json:"fieldAnalysis"`
}

// Rule is one entry of the rule table. Every rule whose Match returns
// true contributes its Emit output.
type Rule struct {
	Name  string
	Match func(Analysis) bool
	Emit  func(Analysis) []Suggestion
}

func emit(s ...Suggestion) func(Analysis) []Suggestion {
	return func(Analysis) []Suggestion { return s }
}

func s(typ string, prio int, reason string) Suggestion {
	return Suggestion{Type: typ, Priority: prio, Reason: reason}
}

// Rules returns the rule table in evaluation order.
func Rules() []Rule {
	return []Rule{
		{
			Name:  "single-measure",
			Match: func(a Analysis) bool { return a.D() == 0 && a.T() == 0 && a.M() == 1 },
			Emit:  emit(s(Histogram, 1, "Shows the distribution of a single measure")),
		},
		{
			Name:  "single-dimension",
			Match: func(a Analysis) bool { return a.D() == 1 && a.lowDims() && a.M() == 0 && a.T() == 0 },
			Emit:  emit(s(Bar, 1, "Shows how often each category occurs")),
		},
		{
			Name:  "dimension-measure",
			Match: func(a Analysis) bool { return a.D() == 1 && a.lowDims() && a.M() == 1 && a.T() == 0 },
			Emit: func(a Analysis) []Suggestion {
				out := []Suggestion{s(Bar, 1, fmt.Sprintf("Compares %s across %s", a.Measures[0].Name, a.Dimensions[0].Name))}
				if a.Dimensions[0].Cardinality <= pieMaxCardinality {
					out = append(out, s(Pie, 2, fmt.Sprintf("Shows each %s's share of the total", a.Dimensions[0].Name)))
				}
				return out
			},
		},
		{
			Name:  "date-measure",
			Match: func(a Analysis) bool { return a.T() == 1 && a.M() == 1 && a.D() == 0 },
			Emit: emit(
				s(Line, 1, "Shows the trend over time"),
				s(Bar, 2, "Compares values between periods"),
			),
		},
		{
			Name:  "two-measures",
			Match: func(a Analysis) bool { return a.M() == 2 && a.D() == 0 && a.T() == 0 },
			Emit:  emit(s(Scatter, 1, "Shows the relationship between two measures")),
		},
		{
			Name:  "dimension-measures",
			Match: func(a Analysis) bool { return a.M() >= 2 && a.D() == 1 && a.lowDims() && a.T() == 0 },
			Emit: emit(
				s(GroupedBar, 1, "Compares several measures per category"),
				s(Line, 2, "Shows several measures side by side across categories"),
			),
		},
		{
			Name:  "date-measures",
			Match: func(a Analysis) bool { return a.M() >= 2 && a.T() == 1 && a.D() == 0 },
			Emit: emit(
				s(Line, 1, "Shows several measures over time"),
				s(StackedArea, 2, "Shows how measures add up over time"),
			),
		},
		{
			Name:  "two-dimensions-measure",
			Match: func(a Analysis) bool { return a.D() == 2 && a.lowDims() && a.M() == 1 && a.T() == 0 },
			Emit: emit(
				s(GroupedBar, 1, "Compares the measure across two groupings"),
				s(StackedBar, 2, "Shows composition within each group"),
				s(Heatmap, 3, "Shows the measure for each pair of categories"),
			),
		},
		{
			Name:  "date-dimension-measure",
			Match: func(a Analysis) bool { return a.T() == 1 && a.D() == 1 && a.lowDims() && a.M() == 1 },
			Emit: emit(
				s(Line, 1, "Shows one trend line per category over time"),
				s(StackedArea, 2, "Shows how categories contribute over time"),
				s(GroupedBar, 3, "Compares categories within each period"),
			),
		},
		{
			Name:  "date-dimension-measures",
			Match: func(a Analysis) bool { return a.T() == 1 && a.D() == 1 && a.lowDims() && a.M() >= 2 },
			Emit: emit(
				s(Line, 1, "Shows several measures per category over time"),
				s(StackedArea, 2, "Shows how measures accumulate over time"),
			),
		},
		{
			Name:  "two-dimensions-measures",
			Match: func(a Analysis) bool { return a.D() == 2 && a.lowDims() && a.M() >= 2 && a.T() == 0 },
			Emit: emit(
				s(GroupedBar, 1, "Compares several measures across two groupings"),
				s(Heatmap, 2, "Shows measures for each pair of categories"),
			),
		},
		{
			Name:  "many-measures",
			Match: func(a Analysis) bool { return a.M() >= 3 && a.D() <= 1 && a.T() <= 1 },
			Emit: func(a Analysis) []Suggestion {
				switch {
				case a.T() == 1:
					return []Suggestion{
						s(Line, 1, "Shows many measures over time"),
						s(StackedArea, 2, "Shows how many measures add up over time"),
					}
				case a.D() == 1 && a.lowDims():
					return []Suggestion{
						s(Radar, 1, "Compares the profile of each category across measures"),
						s(GroupedBar, 2, "Compares many measures per category"),
					}
				case a.D() == 0:
					return []Suggestion{s(ParallelCoordinates, 1, "Shows patterns across many measures")}
				}
				return nil
			},
		},
		{
			Name:  "two-measures-dimension",
			Match: func(a Analysis) bool { return a.M() == 2 && a.D() == 1 && a.lowDims() && a.T() == 0 },
			Emit: emit(
				s(Scatter, 1, "Shows the relationship between two measures, colored by category"),
				s(GroupedBar, 2, "Compares both measures per category"),
			),
		},
		{
			Name:  "high-cardinality",
			Match: func(a Analysis) bool { return a.anyHighDim() && a.M() >= 1 },
			Emit:  emit(s(Treemap, 3, "Handles many categories by nesting them by size")),
		},
		{
			Name:  "large-dataset",
			Match: func(a Analysis) bool { return a.RecordCount > densityMinRecords && a.M() >= 2 },
			Emit:  emit(s(Density, 2, "Avoids overplotting for large datasets")),
		},
		{
			Name: "geographic",
			Match: func(a Analysis) bool {
				_, ok := a.geoDimension()
				return ok && a.M() >= 1
			},
			Emit: func(a Analysis) []Suggestion {
				d, _ := a.geoDimension()
				return []Suggestion{s(Map, 1, fmt.Sprintf("%s looks geographic", d.Name))}
			},
		},
		{
			Name: "parts-of-whole",
			Match: func(a Analysis) bool {
				_, ok := a.shareMeasure()
				return ok
			},
			Emit: func(a Analysis) []Suggestion {
				m, _ := a.shareMeasure()
				return []Suggestion{s(StackedBar, 2, fmt.Sprintf("%s looks like a part of a whole", m.Name))}
			},
		},
	}
}

var rules = Rules()

// Suggest applies the rule table to a field set. An empty set yields no
// suggestions and ReasonNoFields. When no rule fires the result is a
// single table suggestion.
func Suggest(set field.Set, recordCount int) Result {
	a := NewAnalysis(set, recordCount)
	if a.empty() {
		return Result{Suggestions: []Suggestion{}, Reason: ReasonNoFields, FieldAnalysis: a}
	}
	var out []Suggestion
	for _, r := range rules {
		if r.Match(a) {
			out = append(out, r.Emit(a)...)
		}
	}
	if len(out) == 0 {
		return Result{
			Suggestions:   []Suggestion{s(Table, 1, "No chart pattern fits these fields; showing the raw rows")},
			Reason:        "No chart pattern matched the selected fields",
			FieldAnalysis: a,
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return Result{Suggestions: out, FieldAnalysis: a}
}

// Unique keeps the first (highest-priority) suggestion of each type.
// Suggestions itself holds every rule's contribution.
func (r Result) Unique() []Suggestion {
	seen := make(map[string]bool, len(r.Suggestions))
	out := make([]Suggestion, 0, len(r.Suggestions))
	for _, sg := range r.Suggestions {
		if seen[sg.Type] {
			continue
		}
		seen[sg.Type] = true
		out = append(out, sg)
	}
	return out
}

// Types returns the suggestion types in order.
func (r Result) Types() []string {
	out := make([]string, len(r.Suggestions))
	for i, sg := range r.Suggestions {
		out[i] = sg.Type
	}
	return out
}
