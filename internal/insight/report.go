// Package insight computes descriptive statistics for a dataset and
// phrases them as short sentences or a markdown report.
package insight

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/KaramelBytes/vizloom-cli/internal/aggregate"
	"github.com/KaramelBytes/vizloom-cli/internal/classify"
	"github.com/KaramelBytes/vizloom-cli/internal/table"
)

// Options controls analysis behavior.
type Options struct {
	// SampleRows is how many leading rows the report shows.
	SampleRows int
	// Correlations computes Pearson correlations among numeric columns.
	Correlations bool
	// Outliers counts values whose robust z-score (MAD) exceeds OutlierThreshold.
	Outliers         bool
	OutlierThreshold float64
	// RankMaxCategories skips top/bottom ranking for wider category columns.
	RankMaxCategories int
}

// DefaultOptions returns reasonable defaults.
func DefaultOptions() Options {
	return Options{
		SampleRows:        5,
		Correlations:      true,
		Outliers:          true,
		OutlierThreshold:  3.5,
		RankMaxCategories: 20,
	}
}

// minOutlierSample is the fewest values worth an outlier scan.
const minOutlierSample = 8

// Report is a markdown-friendly analysis of a dataset.
type Report struct {
	Name     string
	Rows     int
	Cols     []ColumnSummary
	Samples  [][]string
	Warnings []string
	Ranks    []Ranking
	Corr     *CorrMatrix
}

// ColumnSummary captures the type and statistics of one column.
type ColumnSummary struct {
	Name    string
	Kind    classify.ColumnType
	Unit    string
	NonNull int
	Missing int
	Unique  int
	// Numeric stats
	Min, Max, Mean, Median, Std float64
	// Outliers (robust z via MAD)
	OutliersCount    int
	OutliersMaxAbsZ  float64
	OutlierThreshold float64
	// Date range
	First, Last time.Time
	// Categorical top values
	TopValues []CategoryCount
}

// CategoryCount is a value and its frequency.
type CategoryCount struct {
	Value string
	Count int
}

// Ranking is the best and worst category of Dimension by summed Measure.
type Ranking struct {
	Dimension string
	Measure   string
	Top       CategoryTotal
	Bottom    CategoryTotal
}

// CategoryTotal is a category and its summed measure.
type CategoryTotal struct {
	Category string
	Total    float64
}

// CorrMatrix holds a symmetric Pearson correlation matrix.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64
}

// PairCorr is one correlation pair.
type PairCorr struct {
	A, B string
	R    float64
}

// Analyze profiles t. types come from ingestion; columns missing from
// types are detected on the fly.
func Analyze(name string, t *table.Table, types map[string]classify.ColumnType, opt Options) *Report {
	rep := &Report{Name: name, Rows: t.Len()}
	numeric := map[string][]*float64{}
	var numCols []string

	for _, h := range t.Headers {
		values := t.Column(h)
		kind, ok := types[h]
		if !ok {
			kind = classify.DetectColumnType(values)
		}
		clean, unit := splitUnits(h)
		s := ColumnSummary{Name: clean, Kind: kind, Unit: unit}
		counts := map[string]int{}
		for _, v := range values {
			if table.IsNull(v) {
				s.Missing++
				continue
			}
			s.NonNull++
			counts[v]++
		}
		s.Unique = len(counts)

		switch kind {
		case classify.Numeric:
			col := make([]*float64, len(values))
			var nums []float64
			for i, v := range values {
				if f, ok := classify.ParseNumber(v); ok {
					col[i] = &f
					nums = append(nums, f)
				}
			}
			numericStats(&s, nums, opt)
			numeric[h] = col
			numCols = append(numCols, h)
		case classify.DateType:
			for _, v := range values {
				d, ok := classify.ParseDate(v)
				if !ok {
					continue
				}
				if s.First.IsZero() || d.Before(s.First) {
					s.First = d
				}
				if d.After(s.Last) {
					s.Last = d
				}
			}
		default:
			s.TopValues = topValues(counts, 8)
		}
		rep.Cols = append(rep.Cols, s)
	}

	rep.Ranks = rankings(t, rep, numCols, opt)
	if opt.Correlations && len(numCols) >= 2 {
		rep.Corr = correlations(numCols, numeric)
	}
	for _, row := range t.Head(opt.SampleRows).Rows {
		rep.Samples = append(rep.Samples, append([]string(nil), row...))
	}
	if len(numCols) == 0 {
		rep.Warnings = append(rep.Warnings, "no numeric columns; statistics limited to counts")
	}
	return rep
}

// numericStats fills min/max/mean/std with Welford's method, then the
// median and MAD-based outliers.
func numericStats(s *ColumnSummary, nums []float64, opt Options) {
	if len(nums) == 0 {
		return
	}
	s.Min, s.Max = math.Inf(1), math.Inf(-1)
	var mean, m2 float64
	for i, x := range nums {
		s.Min = math.Min(s.Min, x)
		s.Max = math.Max(s.Max, x)
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)
	}
	s.Mean = mean
	if len(nums) > 1 {
		s.Std = math.Sqrt(m2 / float64(len(nums)-1))
	}
	median, mad := medianMAD(nums)
	s.Median = median
	if !opt.Outliers || len(nums) < minOutlierSample {
		return
	}
	thr := opt.OutlierThreshold
	if thr <= 0 {
		thr = 3.5
	}
	s.OutlierThreshold = thr
	if mad == 0 {
		return
	}
	for _, v := range nums {
		az := math.Abs(0.6745 * (v - median) / mad)
		if az > thr {
			s.OutliersCount++
		}
		s.OutliersMaxAbsZ = math.Max(s.OutliersMaxAbsZ, az)
	}
}

func topValues(counts map[string]int, n int) []CategoryCount {
	out := make([]CategoryCount, 0, len(counts))
	for k, v := range counts {
		out = append(out, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// rankings sums each numeric column per narrow categorical column and
// keeps the extremes.
func rankings(t *table.Table, rep *Report, numCols []string, opt Options) []Ranking {
	var out []Ranking
	for i, c := range rep.Cols {
		if c.Kind != classify.Categorical || c.Unique < 2 {
			continue
		}
		if opt.RankMaxCategories > 0 && c.Unique > opt.RankMaxCategories {
			continue
		}
		dim := t.Headers[i]
		m := aggregate.SumByCategory(t, dim, numCols)
		for j, measure := range numCols {
			var r Ranking
			r.Dimension, r.Measure = dim, measure
			first := true
			for k, label := range m.Labels {
				v := m.Columns[j][k]
				if first || v > r.Top.Total {
					r.Top = CategoryTotal{label, v}
				}
				if first || v < r.Bottom.Total {
					r.Bottom = CategoryTotal{label, v}
				}
				first = false
			}
			if !first {
				out = append(out, r)
			}
		}
	}
	return out
}

// correlations computes pairwise Pearson r using only rows where both
// values are present.
func correlations(cols []string, numeric map[string][]*float64) *CorrMatrix {
	n := len(cols)
	mat := make([][]float64, n)
	for i := range mat {
		mat[i] = make([]float64, n)
		mat[i][i] = 1
	}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			r := pearson(numeric[cols[a]], numeric[cols[b]])
			mat[a][b], mat[b][a] = r, r
		}
	}
	names := make([]string, n)
	for i, c := range cols {
		names[i], _ = splitUnits(c)
	}
	return &CorrMatrix{Columns: names, Values: mat}
}

func pearson(xs, ys []*float64) float64 {
	var n, sx, sy, sxx, syy, sxy float64
	for i := range xs {
		if i >= len(ys) || xs[i] == nil || ys[i] == nil {
			continue
		}
		x, y := *xs[i], *ys[i]
		n++
		sx += x
		sy += y
		sxx += x * x
		syy += y * y
		sxy += x * y
	}
	if n < 2 {
		return 0
	}
	denom := math.Sqrt((n*sxx - sx*sx) * (n*syy - sy*sy))
	if denom == 0 || math.IsNaN(denom) {
		return 0
	}
	r := (n*sxy - sx*sy) / denom
	return math.Max(-1, math.Min(1, r))
}

// TopPairs lists correlation pairs by descending |r|.
func (c *CorrMatrix) TopPairs(limit int) []PairCorr {
	if c == nil {
		return nil
	}
	var pairs []PairCorr
	for i := range c.Columns {
		for j := i + 1; j < len(c.Columns); j++ {
			pairs = append(pairs, PairCorr{A: c.Columns[i], B: c.Columns[j], R: c.Values[i][j]})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return math.Abs(pairs[i].R) > math.Abs(pairs[j].R) })
	if limit > 0 && len(pairs) > limit {
		pairs = pairs[:limit]
	}
	return pairs
}

var unitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(.*)\s*\(([^)]+)\)\s*$`),
	regexp.MustCompile(`^(.*)\s*\[([^\]]+)\]\s*$`),
	regexp.MustCompile(`^(.*?)[_\s-]+(mm|cm|km|kg|mg/L|g/L|°[CF]|C|F|%|ppm|USD|EUR)$`),
}

// splitUnits separates a trailing unit from a column name:
// "Temp (°C)", "Mass [kg]" and "Rainfall mm" all carry one.
func splitUnits(name string) (clean, unit string) {
	s := strings.TrimSpace(name)
	for _, re := range unitPatterns {
		if m := re.FindStringSubmatch(s); len(m) == 3 {
			base, u := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
			if base != "" && u != "" {
				return base, u
			}
		}
	}
	return s, ""
}

func medianMAD(vals []float64) (median, mad float64) {
	cp := append([]float64(nil), vals...)
	sort.Float64s(cp)
	median = quantile(cp, 0.5)
	dev := make([]float64, len(cp))
	for i, v := range cp {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	return median, quantile(dev, 0.5)
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := q * float64(len(sorted)-1)
	lo, hi := int(math.Floor(pos)), int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
