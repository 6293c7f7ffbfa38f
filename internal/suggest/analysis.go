package suggest

import (
	"strings"
	"unicode"

	"github.com/KaramelBytes/vizloom-cli/internal/classify"
	"github.com/KaramelBytes/vizloom-cli/internal/field"
)

// Analysis is the field summary the rule table matches against.
type Analysis struct {
	Dimensions  []field.Descriptor `json:"dimensions"`
	Measures    []field.Descriptor `json:"measures"`
	Dates       []field.Descriptor `json:"dates"`
	RecordCount int                `json:"recordCount"`
}

// NewAnalysis summarizes a field set.
func NewAnalysis(set field.Set, recordCount int) Analysis {
	return Analysis{
		Dimensions:  set.Dimensions,
		Measures:    set.Measures,
		Dates:       set.Dates,
		RecordCount: recordCount,
	}
}

// D, M and T are the dimension, measure and date counts.
func (a Analysis) D() int { return len(a.Dimensions) }
func (a Analysis) M() int { return len(a.Measures) }
func (a Analysis) T() int { return len(a.Dates) }

func (a Analysis) empty() bool { return a.D()+a.M()+a.T() == 0 }

// lowDims reports whether every dimension is at tier LOW.
func (a Analysis) lowDims() bool {
	for _, d := range a.Dimensions {
		if d.Tier != classify.TierLow {
			return false
		}
	}
	return true
}

func (a Analysis) anyHighDim() bool {
	for _, d := range a.Dimensions {
		if d.Tier == classify.TierHigh {
			return true
		}
	}
	return false
}

var geoNames = map[string]bool{
	"country": true, "countries": true, "state": true, "states": true,
	"city": true, "cities": true, "region": true, "regions": true,
	"province": true, "county": true, "territory": true, "continent": true,
	"location": true, "zip": true, "zipcode": true, "postal": true,
	"postcode": true, "lat": true, "lng": true, "lon": true, "long": true,
	"latitude": true, "longitude": true, "geo": true,
}

var geoValues = map[string]bool{
	"usa": true, "us": true, "united states": true, "uk": true,
	"united kingdom": true, "canada": true, "mexico": true, "brazil": true,
	"germany": true, "france": true, "spain": true, "italy": true,
	"china": true, "japan": true, "india": true, "australia": true,
	"california": true, "texas": true, "new york": true, "london": true,
	"paris": true, "tokyo": true, "north america": true, "europe": true,
	"asia": true, "africa": true,
}

var shareKeywords = []string{"percentage", "percent", "share", "proportion", "ratio"}

// geoDimension returns the first dimension that looks geographic, by a
// name token or by one of its sampled values.
func (a Analysis) geoDimension() (field.Descriptor, bool) {
	for _, d := range a.Dimensions {
		for _, tok := range nameTokens(d.Name) {
			if geoNames[tok] {
				return d, true
			}
		}
		for _, v := range d.UniqueValuesSample {
			if geoValues[strings.ToLower(strings.TrimSpace(v))] {
				return d, true
			}
		}
	}
	return field.Descriptor{}, false
}

func (a Analysis) shareMeasure() (field.Descriptor, bool) {
	for _, m := range a.Measures {
		name := strings.ToLower(m.Name)
		for _, kw := range shareKeywords {
			if strings.Contains(name, kw) {
				return m, true
			}
		}
	}
	return field.Descriptor{}, false
}

// nameTokens splits "shipCountry", "ship_country" and "Ship Country"
// into lower-case words.
func nameTokens(name string) []string {
	var (
		out []string
		cur []rune
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}
	for i, r := range name {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r) && i > 0 && len(cur) > 0 && unicode.IsLower(cur[len(cur)-1]):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return out
}
