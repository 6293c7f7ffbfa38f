package classify

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var thousandsPattern = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)

// ParseNumber parses a cell as a finite float. It tolerates surrounding
// whitespace, a trailing percent sign, a leading currency symbol, comma
// thousands separators ("1,234.5") and a lone decimal comma ("0,5").
func ParseNumber(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.ReplaceAll(raw, " ", "")
	if raw == "" {
		return 0, false
	}
	raw = strings.TrimSuffix(raw, "%")
	for _, sym := range []string{"$", "€", "£"} {
		raw = strings.TrimPrefix(raw, sym)
	}
	raw = strings.TrimSpace(raw)
	switch {
	case thousandsPattern.MatchString(raw):
		raw = strings.ReplaceAll(raw, ",", "")
	case strings.Count(raw, ",") == 1 && !strings.Contains(raw, "."):
		raw = strings.Replace(raw, ",", ".", 1)
	}
	// strconv accepts "NaN", "Inf" and hex floats; none of them are data.
	lower := strings.ToLower(raw)
	if strings.Contains(lower, "n") || strings.Contains(lower, "x") {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// IsInteger reports whether f has no fractional part.
func IsInteger(f float64) bool { return f == math.Trunc(f) }

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"January 2006",
	"Jan-2006",
	"Jan 2006",
	"2006-01",
}

// ParseDate parses an unambiguously date-shaped cell. Bare years are
// deliberately rejected so integer columns are never read as dates.
func ParseDate(s string) (time.Time, bool) {
	v := strings.TrimSpace(s)
	if len(v) < 6 {
		return time.Time{}, false
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// IsISODate reports whether s starts with a YYYY-MM-DD date.
func IsISODate(s string) bool { return isoDatePattern.MatchString(strings.TrimSpace(s)) }
