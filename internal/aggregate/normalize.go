package aggregate

import (
	"math"
	"strconv"
	"strings"
)

// Normalize rescales series sharing an axis so each axis position sums
// to 100. Positions whose total is 0 stay at 0. Series may differ in
// length; missing positions count as 0.
func Normalize(series [][]float64) [][]float64 {
	width := 0
	for _, s := range series {
		if len(s) > width {
			width = len(s)
		}
	}
	totals := make([]float64, width)
	for _, s := range series {
		for i, v := range s {
			totals[i] += v
		}
	}
	out := make([][]float64, len(series))
	for j, s := range series {
		out[j] = make([]float64, len(s))
		for i, v := range s {
			if totals[i] != 0 {
				out[j][i] = v / totals[i] * 100
			}
		}
	}
	return out
}

// Unit is an axis label scale.
type Unit struct {
	Divisor float64 `json:"divisor"`
	Suffix  string  `json:"suffix"`
}

// UnitFor picks the scale for an axis whose largest value is max.
func UnitFor(max float64) Unit {
	m := math.Abs(max)
	switch {
	case m >= 1e9:
		return Unit{1e9, "b"}
	case m >= 1e6:
		return Unit{1e6, "m"}
	case m >= 1e3:
		return Unit{1e3, "k"}
	}
	return Unit{1, ""}
}

// FormatTick formats v in unit u with one decimal, dropping a trailing ".0".
func FormatTick(v float64, u Unit) string {
	d := u.Divisor
	if d == 0 {
		d = 1
	}
	s := strconv.FormatFloat(v/d, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	if s == "-0" {
		s = "0"
	}
	return s + u.Suffix
}
