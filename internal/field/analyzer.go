// Package field builds per-column descriptors on top of the classifier.
package field

import (
	"github.com/KaramelBytes/vizloom-cli/internal/classify"
	"github.com/KaramelBytes/vizloom-cli/internal/table"
)

// previewLimit caps SampleValues and UniqueValuesSample.
const previewLimit = 10

// Descriptor summarizes one column for chart selection.
type Descriptor struct {
	Name               string                `json:"name"`
	Type               classify.SemanticType `json:"type"`
	Cardinality        int                   `json:"cardinality"`
	Tier               classify.Tier         `json:"cardinalityTier"`
	HasNulls           bool                  `json:"hasNulls"`
	SampleValues       []string              `json:"sampleValues,omitempty"`
	UniqueValuesSample []string              `json:"uniqueValuesSample,omitempty"`
}

// Analyze classifies one column of t. An unknown column produces a
// descriptor for an empty column rather than an error.
func Analyze(t *table.Table, column string) Descriptor {
	values := t.Column(column)
	res := classify.Classify(values)
	d := Descriptor{
		Name:        column,
		Type:        res.Type,
		Cardinality: res.Cardinality,
		Tier:        res.Tier,
	}
	seen := make(map[string]struct{})
	for _, v := range values {
		if table.IsNull(v) {
			d.HasNulls = true
			continue
		}
		if len(d.SampleValues) < previewLimit {
			d.SampleValues = append(d.SampleValues, v)
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		if len(d.UniqueValuesSample) < previewLimit {
			d.UniqueValuesSample = append(d.UniqueValuesSample, v)
		}
	}
	return d
}

// AnalyzeColumns analyzes the named columns in the given order.
func AnalyzeColumns(t *table.Table, columns []string) []Descriptor {
	out := make([]Descriptor, 0, len(columns))
	for _, c := range columns {
		out = append(out, Analyze(t, c))
	}
	return out
}

// AnalyzeAll analyzes every column of t in header order.
func AnalyzeAll(t *table.Table) []Descriptor {
	if t == nil {
		return nil
	}
	return AnalyzeColumns(t, t.Headers)
}
