package field

import "github.com/KaramelBytes/vizloom-cli/internal/classify"

// Set partitions descriptors by semantic type. A Set is built fresh for
// every analysis and never mutated afterwards.
type Set struct {
	Dimensions []Descriptor `json:"dimensions"`
	Measures   []Descriptor `json:"measures"`
	Dates      []Descriptor `json:"dates"`
}

// NewSet partitions descs, keeping their relative order.
func NewSet(descs []Descriptor) Set {
	var s Set
	for _, d := range descs {
		switch d.Type {
		case classify.Measure:
			s.Measures = append(s.Measures, d)
		case classify.Date:
			s.Dates = append(s.Dates, d)
		default:
			s.Dimensions = append(s.Dimensions, d)
		}
	}
	return s
}

// Len returns the total number of fields.
func (s Set) Len() int { return len(s.Dimensions) + len(s.Measures) + len(s.Dates) }

// Empty reports whether the set holds no fields.
func (s Set) Empty() bool { return s.Len() == 0 }
