// Package classify infers column types from raw cell values.
//
// Two schemes live here and are kept apart on purpose:
//   - Classify returns the visualization-time SemanticType
//     (DIMENSION, MEASURE, DATE) plus cardinality, used by chart suggestion.
//   - DetectColumnType returns the ingestion-time ColumnType
//     (numeric, categorical, date, text), used by the variant table.
package classify

import "github.com/KaramelBytes/vizloom-cli/internal/table"

// SemanticType is the visualization role of a column.
type SemanticType string

const (
	Dimension SemanticType = "DIMENSION"
	Measure   SemanticType = "MEASURE"
	Date      SemanticType = "DATE"
)

// Tier is a coarse cardinality bucket.
type Tier string

const (
	TierLow    Tier = "LOW"
	TierMedium Tier = "MEDIUM"
	TierHigh   Tier = "HIGH"
)

const (
	// LowCardinalityMax is the largest cardinality still in TierLow.
	LowCardinalityMax = 20
	// MediumCardinalityMax is the largest cardinality still in TierMedium.
	MediumCardinalityMax = 100

	// typeShareThreshold is the share of values that must parse as a
	// date (or number) before the column is typed that way.
	typeShareThreshold = 0.8
	// codedDimensionMax bounds distinct integer values treated as codes.
	codedDimensionMax = 20
)

// Result is the outcome of classifying one column.
type Result struct {
	Type        SemanticType
	Cardinality int
	Tier        Tier
}

// TierOf maps a cardinality onto its tier.
func TierOf(cardinality int) Tier {
	switch {
	case cardinality <= LowCardinalityMax:
		return TierLow
	case cardinality <= MediumCardinalityMax:
		return TierMedium
	default:
		return TierHigh
	}
}

// Classify determines the semantic type and cardinality of a column.
// It never fails: an empty or all-null column is a DIMENSION with
// cardinality 0.
func Classify(values []string) Result {
	nonNull := make([]string, 0, len(values))
	distinct := make(map[string]struct{})
	for _, v := range values {
		if table.IsNull(v) {
			continue
		}
		nonNull = append(nonNull, v)
		distinct[v] = struct{}{}
	}
	res := Result{Type: Dimension, Cardinality: len(distinct)}
	res.Tier = TierOf(res.Cardinality)
	if len(nonNull) == 0 {
		return res
	}

	var dates int
	nums := make([]float64, 0, len(nonNull))
	for _, v := range nonNull {
		if _, ok := ParseDate(v); ok {
			dates++
		}
		if f, ok := ParseNumber(v); ok {
			nums = append(nums, f)
		}
	}
	n := float64(len(nonNull))
	if float64(dates)/n > typeShareThreshold {
		res.Type = Date
		return res
	}
	if float64(len(nums))/n > typeShareThreshold {
		res.Type = Measure
		if isCoded(nums) {
			res.Type = Dimension
		}
	}
	return res
}

// isCoded reports whether numbers look like small integer codes
// (ratings, star counts) rather than a continuous measure.
func isCoded(nums []float64) bool {
	distinct := make(map[float64]struct{})
	for _, f := range nums {
		if !IsInteger(f) {
			return false
		}
		distinct[f] = struct{}{}
	}
	return len(distinct) <= codedDimensionMax
}

// IsNumericOrdinal reports whether every non-null value is an integer
// and the column holds between 2 and 10 distinct values. The variant
// table uses it to accept a numeric first column as a line-chart axis.
func IsNumericOrdinal(values []string) bool {
	distinct := make(map[float64]struct{})
	seen := 0
	for _, v := range values {
		if table.IsNull(v) {
			continue
		}
		f, ok := ParseNumber(v)
		if !ok || !IsInteger(f) {
			return false
		}
		seen++
		distinct[f] = struct{}{}
	}
	return seen > 0 && len(distinct) >= 2 && len(distinct) <= 10
}
