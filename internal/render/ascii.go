package render

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/pterm/pterm"

	"github.com/KaramelBytes/vizloom-cli/internal/aggregate"
)

const maxLabelWidth = 24

// ASCII renders a terminal preview of b. Line-like kinds are plotted
// with asciigraph; bar-like kinds become horizontal pterm bar charts.
func ASCII(b *Bundle, width, height int) (string, error) {
	if width <= 0 {
		width = 60
	}
	if height <= 0 {
		height = 12
	}
	if len(b.Datasets) == 0 || (len(b.Labels) == 0 && len(b.Datasets[0].Points) == 0) {
		return "(no data)\n", nil
	}
	switch b.Options.Kind {
	case KindLine, KindArea, KindHistogram:
		return plotSeries(b, width, height), nil
	case KindScatter:
		return plotPoints(b, width, height), nil
	}
	return barRows(b, width)
}

func plotSeries(b *Bundle, width, height int) string {
	series := make([][]float64, 0, len(b.Datasets))
	names := make([]string, 0, len(b.Datasets))
	for i, d := range b.Datasets {
		if len(d.Data) == 0 {
			continue
		}
		series = append(series, atLeastTwo(b.Dense(i)))
		names = append(names, d.Label)
	}
	if len(series) == 0 {
		return "(no data)\n"
	}
	caption := fmt.Sprintf("%s: %s .. %s", strings.Join(names, ", "), b.Labels[0], b.Labels[len(b.Labels)-1])
	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	) + "\n"
}

// plotPoints draws y ordered by x.
func plotPoints(b *Bundle, width, height int) string {
	pts := append([]Point(nil), b.Datasets[0].Points...)
	if len(pts) == 0 {
		return "(no data)\n"
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].X < pts[j].X })
	ys := make([]float64, len(pts))
	for i, p := range pts {
		ys[i] = p.Y
	}
	return asciigraph.Plot(atLeastTwo(ys),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(b.Datasets[0].Label+" (sorted by x)"),
	) + "\n"
}

func barRows(b *Bundle, width int) (string, error) {
	var sb strings.Builder
	for i, d := range b.Datasets {
		vals := b.Dense(i)
		total, peak := 0.0, 0.0
		for _, v := range vals {
			total += v
			peak = math.Max(peak, math.Abs(v))
		}
		bars := make(pterm.Bars, 0, len(vals))
		for j, v := range vals {
			label := truncate(b.Labels[j], maxLabelWidth)
			switch {
			case b.Options.Kind == KindPie && total != 0:
				label = fmt.Sprintf("%s %.1f%%", label, v/total*100)
			case b.Options.Percent:
				label = fmt.Sprintf("%s %.1f%%", label, v)
			default:
				label = fmt.Sprintf("%s %s", label, aggregate.FormatTick(v, b.Options.AxisUnit))
			}
			bars = append(bars, pterm.Bar{Label: label, Value: barScale(v, peak)})
		}
		if len(b.Datasets) > 1 {
			sb.WriteString(d.Label + "\n")
		}
		if peak == 0 {
			for _, bar := range bars {
				sb.WriteString(bar.Label + "\n")
			}
			continue
		}
		out, err := pterm.DefaultBarChart.
			WithBars(bars).
			WithHorizontal(true).
			WithWidth(width).
			Srender()
		if err != nil {
			return "", err
		}
		sb.WriteString(out)
	}
	return sb.String(), nil
}

// barScale maps v onto an integer range so fractional values still
// draw; the printed label carries the real value.
func barScale(v, peak float64) int {
	if peak == 0 {
		return 0
	}
	return int(math.Round(v / peak * 1000))
}

// atLeastTwo repeats a lone value; asciigraph interpolates between points.
func atLeastTwo(xs []float64) []float64 {
	if len(xs) == 1 {
		return []float64{xs[0], xs[0]}
	}
	return xs
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
