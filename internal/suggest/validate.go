package suggest

import "github.com/KaramelBytes/vizloom-cli/internal/classify"

const scatterMinRecords = 10

// Validate checks a specific chart type against a field analysis.
// It is stricter than Suggest. Types without an explicit rule here,
// known or not, are valid.
func Validate(chartType string, a Analysis, recordCount int) bool {
	switch chartType {
	case Pie:
		return a.M() == 1 && a.D() == 1 && a.Dimensions[0].Cardinality <= pieMaxCardinality
	case Scatter:
		return a.M() >= 2 && recordCount >= scatterMinRecords
	case Heatmap:
		if a.D() != 2 || a.M() != 1 {
			return false
		}
		for _, d := range a.Dimensions {
			if d.Tier == classify.TierHigh {
				return false
			}
		}
		return true
	case Histogram:
		return a.M() >= 1
	case Line:
		return a.M() >= 1 && (a.T() >= 1 || a.D() >= 1)
	case Bar:
		return a.D() >= 1 || a.T() >= 1
	case GroupedBar, StackedBar:
		return a.M() >= 1 && a.D()+a.T() >= 1
	case Radar:
		return a.M() >= 3
	case Treemap:
		return a.D() >= 1 && a.M() >= 1
	}
	return true
}
