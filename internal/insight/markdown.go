package insight

import (
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/vizloom-cli/internal/aggregate"
	"github.com/KaramelBytes/vizloom-cli/internal/classify"
)

// strongCorrelation is the |r| above which a pair is worth a sentence.
const strongCorrelation = 0.7

// Sentences phrases the most useful findings as plain-language lines.
func (r *Report) Sentences() []string {
	var out []string
	for _, c := range r.Cols {
		switch c.Kind {
		case classify.Numeric:
			if c.NonNull == 0 {
				continue
			}
			out = append(out, fmt.Sprintf("%s averages %s (median %s, range %s to %s).",
				label(c), format(c.Mean), format(c.Median), format(c.Min), format(c.Max)))
			if c.OutliersCount > 0 {
				noun := "values lie"
				if c.OutliersCount == 1 {
					noun = "value lies"
				}
				out = append(out, fmt.Sprintf("%d %s %s far from the median (robust |z| > %.1f).",
					c.OutliersCount, label(c), noun, c.OutlierThreshold))
			}
		case classify.DateType:
			if !c.First.IsZero() {
				out = append(out, fmt.Sprintf("%s spans %s to %s.",
					c.Name, c.First.Format("2006-01-02"), c.Last.Format("2006-01-02")))
			}
		}
	}
	for _, rk := range r.Ranks {
		if rk.Top.Category == rk.Bottom.Category {
			continue
		}
		out = append(out, fmt.Sprintf("%s has the highest total %s (%s); %s the lowest (%s).",
			rk.Top.Category, rk.Measure, format(rk.Top.Total), rk.Bottom.Category, format(rk.Bottom.Total)))
	}
	for _, p := range r.Corr.TopPairs(0) {
		if math.Abs(p.R) < strongCorrelation {
			break
		}
		dir := "positively"
		if p.R < 0 {
			dir = "negatively"
		}
		out = append(out, fmt.Sprintf("%s and %s are strongly %s correlated (r=%.2f).", p.A, p.B, dir, p.R))
	}
	return out
}

// Markdown renders the report in bracketed sections.
func (r *Report) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Dataset: %s\n\n", r.Name)

	b.WriteString("[DATASET SUMMARY]\n")
	fmt.Fprintf(&b, "Rows: %d\nColumns: %d\n\n", r.Rows, len(r.Cols))

	b.WriteString("[SCHEMA]\n")
	b.WriteString("| Column | Type | Unit | Non-Null | Missing | Unique | Stats |\n")
	b.WriteString("|---|---|---|---:|---:|---:|---|\n")
	for _, c := range r.Cols {
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %d | %d | %s |\n",
			safeName(c.Name), c.Kind, safeVal(c.Unit), c.NonNull, c.Missing, c.Unique, stats(c))
	}
	b.WriteString("\n")

	if len(r.Ranks) > 0 {
		b.WriteString("[TOP AND BOTTOM]\n")
		b.WriteString("| Dimension | Measure | Top | Bottom |\n|---|---|---|---|\n")
		for _, rk := range r.Ranks {
			fmt.Fprintf(&b, "| %s | %s | %s (%s) | %s (%s) |\n",
				safeName(rk.Dimension), safeName(rk.Measure),
				safeVal(rk.Top.Category), format(rk.Top.Total),
				safeVal(rk.Bottom.Category), format(rk.Bottom.Total))
		}
		b.WriteString("\n")
	}

	if pairs := r.Corr.TopPairs(10); len(pairs) > 0 {
		b.WriteString("[CORRELATIONS]\n")
		for _, p := range pairs {
			fmt.Fprintf(&b, "- %s ~ %s: r=%.2f\n", safeName(p.A), safeName(p.B), p.R)
		}
		b.WriteString("\n")
	}

	if len(r.Samples) > 0 {
		b.WriteString("[HEAD ROWS]\n")
		for _, row := range r.Samples {
			vals := make([]string, len(row))
			for i, v := range row {
				vals[i] = safeVal(v)
			}
			b.WriteString("- " + strings.Join(vals, " | ") + "\n")
		}
		b.WriteString("\n")
	}

	if s := r.Sentences(); len(s) > 0 {
		b.WriteString("[INSIGHTS]\n")
		for _, line := range s {
			b.WriteString("- " + line + "\n")
		}
		b.WriteString("\n")
	}

	if len(r.Warnings) > 0 {
		b.WriteString("[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- " + w + "\n")
		}
	}
	return b.String()
}

func stats(c ColumnSummary) string {
	switch c.Kind {
	case classify.Numeric:
		if c.NonNull == 0 {
			return ""
		}
		s := fmt.Sprintf("min=%s max=%s mean=%s median=%s std=%s",
			format(c.Min), format(c.Max), format(c.Mean), format(c.Median), format(c.Std))
		if c.OutliersCount > 0 {
			s += fmt.Sprintf(" outliers=%d", c.OutliersCount)
		}
		return s
	case classify.DateType:
		if c.First.IsZero() {
			return ""
		}
		return c.First.Format("2006-01-02") + " .. " + c.Last.Format("2006-01-02")
	}
	parts := make([]string, 0, len(c.TopValues))
	for _, tv := range c.TopValues {
		parts = append(parts, fmt.Sprintf("%s(%d)", safeVal(tv.Value), tv.Count))
	}
	return "top: " + strings.Join(parts, ", ")
}

func label(c ColumnSummary) string {
	if c.Unit != "" {
		return c.Name + " (" + c.Unit + ")"
	}
	return c.Name
}

// format scales large magnitudes with a k/m/b suffix and keeps two
// decimals for small ones.
func format(v float64) string {
	if math.Abs(v) >= 1000 {
		return aggregate.FormatTick(v, aggregate.UnitFor(v))
	}
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		s = "0"
	}
	return s
}

func safeName(s string) string { return strings.ReplaceAll(s, "|", "/") }

func safeVal(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", "/")
	if len(s) > 60 {
		s = s[:57] + "..."
	}
	return s
}
