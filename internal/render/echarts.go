package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// gap is the ECharts placeholder for a missing value.
const gap = "-"

// HTMLOptions sizes the generated page.
type HTMLOptions struct {
	Width  int
	Height int
}

func (o HTMLOptions) init(title string) opts.Initialization {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 900
	}
	if h <= 0 {
		h = 500
	}
	return opts.Initialization{PageTitle: title, Width: fmt.Sprintf("%dpx", w), Height: fmt.Sprintf("%dpx", h)}
}

// WriteHTML renders b as a standalone ECharts page.
func WriteHTML(w io.Writer, b *Bundle, title string, o HTMLOptions) error {
	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(o.init(title)),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(b.Options.ShowLegend), Top: "bottom"}),
	}
	switch b.Options.Kind {
	case KindBar, KindHistogram:
		return barChart(b, global).Render(w)
	case KindLine, KindArea:
		return lineChart(b, global).Render(w)
	case KindPie:
		return pieChart(b, global).Render(w)
	case KindScatter:
		return scatterChart(b, global).Render(w)
	}
	return fmt.Errorf("%w: no HTML renderer for kind %q", ErrIncompatible, b.Options.Kind)
}

func yAxis(b *Bundle) opts.YAxis {
	y := opts.YAxis{Type: "value"}
	if b.Options.Percent {
		y.Max = 100
		y.AxisLabel = &opts.AxisLabel{Formatter: "{value}%"}
	}
	return y
}

func barChart(b *Bundle, global []charts.GlobalOpts) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(global,
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(yAxis(b)),
	)...)
	bar.SetXAxis(b.Labels)
	for _, d := range b.Datasets {
		data := make([]opts.BarData, len(d.Data))
		for i, v := range d.Data {
			data[i] = opts.BarData{Value: gap}
			if v != nil {
				data[i].Value = *v
			}
			if i < len(d.Colors) {
				data[i].ItemStyle = &opts.ItemStyle{Color: d.Colors[i]}
			}
		}
		var series []charts.SeriesOpts
		if d.Color != "" {
			series = append(series, charts.WithItemStyleOpts(opts.ItemStyle{Color: d.Color}))
		}
		switch {
		case b.Options.Kind == KindHistogram:
			series = append(series, charts.WithBarChartOpts(opts.BarChart{BarCategoryGap: "1%"}))
		case b.Options.Stacked:
			series = append(series, charts.WithBarChartOpts(opts.BarChart{Stack: "total"}))
		}
		bar.AddSeries(d.Label, data, series...)
	}
	if b.Options.Horizontal {
		bar.XYReversal()
	}
	return bar
}

func lineChart(b *Bundle, global []charts.GlobalOpts) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(append(global,
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(yAxis(b)),
	)...)
	line.SetXAxis(b.Labels)
	for _, d := range b.Datasets {
		data := make([]opts.LineData, len(d.Data))
		for i, v := range d.Data {
			data[i] = opts.LineData{Value: gap}
			if v != nil {
				data[i].Value = *v
			}
		}
		series := []charts.SeriesOpts{
			charts.WithItemStyleOpts(opts.ItemStyle{Color: d.Color}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: d.Color}),
		}
		if b.Options.Stacked {
			series = append(series, charts.WithLineChartOpts(opts.LineChart{Stack: "total"}))
		}
		if b.Options.Kind == KindArea {
			series = append(series, charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.35}))
		}
		line.AddSeries(d.Label, data, series...)
	}
	return line
}

func pieChart(b *Bundle, global []charts.GlobalOpts) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(append(global,
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
	)...)
	d := b.Datasets[0]
	data := make([]opts.PieData, 0, len(b.Labels))
	for i, label := range b.Labels {
		item := opts.PieData{Name: label}
		if i < len(d.Data) && d.Data[i] != nil {
			item.Value = *d.Data[i]
		}
		if i < len(d.Colors) {
			item.ItemStyle = &opts.ItemStyle{Color: d.Colors[i]}
		}
		data = append(data, item)
	}
	radius := "70%"
	pc := opts.PieChart{Radius: radius}
	if b.Options.Donut {
		pc.Radius = []string{"40%", radius}
	}
	pie.AddSeries(d.Label, data, charts.WithPieChartOpts(pc))
	return pie
}

func scatterChart(b *Bundle, global []charts.GlobalOpts) *charts.Scatter {
	sc := charts.NewScatter()
	xAxis := opts.XAxis{Type: "value"}
	if len(b.Labels) > 0 {
		xAxis = opts.XAxis{Type: "category", Data: b.Labels}
	}
	sc.SetGlobalOptions(append(global,
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithXAxisOpts(xAxis),
		charts.WithYAxisOpts(yAxis(b)),
	)...)
	maxSize := 0.0
	for _, d := range b.Datasets {
		for _, p := range d.Points {
			if p.Size > maxSize {
				maxSize = p.Size
			}
		}
	}
	for _, d := range b.Datasets {
		data := make([]opts.ScatterData, len(d.Points))
		for i, p := range d.Points {
			data[i] = opts.ScatterData{Value: []interface{}{p.X, p.Y}, SymbolSize: 8}
			if maxSize > 0 {
				data[i].SymbolSize = 6 + int(34*p.Size/maxSize)
			}
		}
		sc.AddSeries(d.Label, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: d.Color}))
	}
	return sc
}
