package aggregate

import "math"

const (
	minBins = 5
	maxBins = 30
)

// Bins is a histogram over a numeric column. Edges has len(Counts)+1
// entries; the last bin includes the maximum.
type Bins struct {
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
	Width  float64   `json:"width"`
}

// BinCount applies Sturges' rule, ceil(log2(n)+1), clamped to [5, 30].
func BinCount(n int) int {
	if n <= 0 {
		return minBins
	}
	k := int(math.Ceil(math.Log2(float64(n)) + 1))
	if k < minBins {
		return minBins
	}
	if k > maxBins {
		return maxBins
	}
	return k
}

// Histogram bins values. When every value is equal the width is zero
// and all values land in the first bin.
func Histogram(values []float64) Bins {
	k := BinCount(len(values))
	b := Bins{Counts: make([]int, k), Edges: make([]float64, k+1)}
	if len(values) == 0 {
		return b
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	b.Width = (hi - lo) / float64(k)
	for i := range b.Edges {
		b.Edges[i] = lo + float64(i)*b.Width
	}
	b.Edges[k] = hi
	for _, v := range values {
		idx := 0
		if b.Width > 0 {
			idx = int(math.Floor((v - lo) / b.Width))
		}
		if idx >= k {
			idx = k - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.Counts[idx]++
	}
	return b
}

// Labels renders "lo-hi" bin labels using unit scaling.
func (b Bins) Labels() []string {
	if len(b.Edges) == 0 {
		return nil
	}
	u := UnitFor(math.Max(math.Abs(b.Edges[0]), math.Abs(b.Edges[len(b.Edges)-1])))
	out := make([]string, len(b.Counts))
	for i := range b.Counts {
		out[i] = FormatTick(b.Edges[i], u) + "-" + FormatTick(b.Edges[i+1], u)
	}
	return out
}
