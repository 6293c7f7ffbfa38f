package classify

import "github.com/KaramelBytes/vizloom-cli/internal/table"

// ColumnType is the ingestion-time column type.
type ColumnType string

const (
	Numeric     ColumnType = "numeric"
	Categorical ColumnType = "categorical"
	DateType    ColumnType = "date"
	Text        ColumnType = "text"
)

const (
	detectSampleSize = 100
	dateProbeSize    = 10
	categoricalMax   = 20
)

// DetectColumnType performs the rough triage done when a file is loaded.
// It looks at a sample of the first 100 values:
//   - date when the first 10 non-empty values all start with YYYY-MM-DD;
//   - numeric when more than 80% of non-empty values parse as numbers;
//   - categorical when distinct values <= min(20, half the sample);
//   - text otherwise.
func DetectColumnType(values []string) ColumnType {
	sample := values
	if len(sample) > detectSampleSize {
		sample = sample[:detectSampleSize]
	}
	nonEmpty := make([]string, 0, len(sample))
	for _, v := range sample {
		if !table.IsNull(v) {
			nonEmpty = append(nonEmpty, v)
		}
	}
	if len(nonEmpty) == 0 {
		return Text
	}

	probe := nonEmpty
	if len(probe) > dateProbeSize {
		probe = probe[:dateProbeSize]
	}
	allDates := true
	for _, v := range probe {
		if !IsISODate(v) {
			allDates = false
			break
		}
	}
	if allDates {
		return DateType
	}

	var nums int
	distinct := make(map[string]struct{})
	for _, v := range nonEmpty {
		if _, ok := ParseNumber(v); ok {
			nums++
		}
		distinct[v] = struct{}{}
	}
	if float64(nums)/float64(len(nonEmpty)) > typeShareThreshold {
		return Numeric
	}
	limit := float64(len(nonEmpty)) * 0.5
	if limit > categoricalMax {
		limit = categoricalMax
	}
	if float64(len(distinct)) <= limit {
		return Categorical
	}
	return Text
}

// DetectAll types every column of t.
func DetectAll(t *table.Table) map[string]ColumnType {
	out := make(map[string]ColumnType, len(t.Headers))
	for _, h := range t.Headers {
		out[h] = DetectColumnType(t.Column(h))
	}
	return out
}

// IsCategorical reports whether ct can act as a grouping column.
// Free text is accepted: it is simply a high-cardinality category.
func (ct ColumnType) IsCategorical() bool { return ct == Categorical || ct == Text }

// IsDate reports whether ct is a date column.
func (ct ColumnType) IsDate() bool { return ct == DateType }

// IsNumeric reports whether ct is a numeric column.
func (ct ColumnType) IsNumeric() bool { return ct == Numeric }
