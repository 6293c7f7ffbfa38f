package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/vizloom-cli/internal/classify"
	"github.com/KaramelBytes/vizloom-cli/internal/table"
	"github.com/KaramelBytes/vizloom-cli/internal/variant"
)

func socialTable() (*table.Table, variant.Types) {
	tb := table.New([]string{"Date", "Platform", "Followers", "Posts"}, [][]string{
		{"2024-01-01", "Instagram", "100", "3"},
		{"2024-01-01", "TikTok", "300", "5"},
		{"2024-01-02", "Instagram", "120", "2"},
		{"2024-01-02", "YouTube", "50", "1"},
		{"2024-01-03", "TikTok", "900", "4"},
	})
	return tb, variant.Types{
		"Date":      classify.DateType,
		"Platform":  classify.Categorical,
		"Followers": classify.Numeric,
		"Posts":     classify.Numeric,
	}
}

func build(t *testing.T, family, key string, cols ...string) *Bundle {
	t.Helper()
	tb, ts := socialTable()
	b, err := Build(Request{Family: family, Variant: key, Columns: cols, Table: tb, Types: ts})
	require.NoError(t, err)
	return b
}

func values(d Dataset) []float64 {
	out := make([]float64, len(d.Data))
	for i, v := range d.Data {
		if v != nil {
			out[i] = *v
		}
	}
	return out
}

func TestBuildBarSingleEitherOrder(t *testing.T) {
	a := build(t, variant.Bar, "single", "Platform", "Followers")
	b := build(t, variant.Bar, "single", "Followers", "Platform")
	assert.Equal(t, a.Labels, b.Labels)
	assert.Equal(t, []string{"Instagram", "TikTok", "YouTube"}, a.Labels)
	assert.Equal(t, []float64{220, 1200, 50}, values(a.Datasets[0]))
	assert.Equal(t, DefaultPalette[0], a.Datasets[0].Color)
	assert.False(t, a.Options.ShowLegend)
}

func TestBuildBarMultiColors(t *testing.T) {
	b := build(t, variant.Bar, "multi", "Platform", "Followers")
	require.Len(t, b.Datasets, 1)
	assert.Equal(t, DefaultPalette[:3], Palette(b.Datasets[0].Colors))
}

func TestBuildLinePivotKeepsGaps(t *testing.T) {
	b := build(t, variant.Line, "multi", "Date", "Platform", "Followers")
	assert.Equal(t, KindLine, b.Options.Kind)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03"}, b.Labels)
	require.Len(t, b.Datasets, 3)
	assert.Nil(t, b.Datasets[0].Data[2], "Instagram has no row on the third day")
	assert.True(t, b.Options.ShowLegend)
}

func TestBuildProportional(t *testing.T) {
	b := build(t, variant.Bar, "proportional", "Date", "Followers", "Posts")
	assert.True(t, b.Options.Stacked)
	assert.True(t, b.Options.Percent)
	for i := range b.Labels {
		sum := 0.0
		for _, d := range b.Datasets {
			sum += *d.Data[i]
		}
		assert.InDelta(t, 100, sum, 1e-9)
	}
}

func TestBuildHistogram(t *testing.T) {
	b := build(t, variant.Histogram, "standard", "Followers")
	assert.Equal(t, KindHistogram, b.Options.Kind)
	assert.Len(t, b.Labels, 5)
	total := 0.0
	for _, v := range values(b.Datasets[0]) {
		total += v
	}
	assert.Equal(t, 5.0, total)
}

func TestBuildScatterAndBubble(t *testing.T) {
	s := build(t, variant.Scatter, "simple", "Followers", "Posts")
	require.Len(t, s.Datasets[0].Points, 5)
	assert.Equal(t, Point{X: 100, Y: 3}, s.Datasets[0].Points[0])

	dot := build(t, variant.Scatter, "simple", "Platform", "Posts")
	assert.Equal(t, []string{"Instagram", "TikTok", "YouTube"}, dot.Labels)
	assert.Equal(t, 1.0, dot.Datasets[0].Points[1].X)
}

func TestBuildPieDonut(t *testing.T) {
	b := build(t, variant.Pie, "donut", "Platform")
	assert.True(t, b.Options.Donut)
	assert.True(t, b.Options.ShowLegend)
	assert.Equal(t, []float64{2, 2, 1}, values(b.Datasets[0]))
}

func TestBuildErrors(t *testing.T) {
	tb, ts := socialTable()
	_, err := Build(Request{Family: variant.Pie, Variant: "count", Columns: []string{"Followers"}, Table: tb, Types: ts})
	assert.True(t, errors.Is(err, ErrIncompatible))

	_, err = Build(Request{Family: "Sankey", Variant: "flow", Columns: []string{"Followers"}, Table: tb, Types: ts})
	assert.True(t, errors.Is(err, ErrUnknownVariant))
}

func TestBundleJSONShape(t *testing.T) {
	b := build(t, variant.Bar, "single", "Platform", "Followers")
	raw, err := json.Marshal(b)
	require.NoError(t, err)
	var shape map[string]any
	require.NoError(t, json.Unmarshal(raw, &shape))
	assert.Contains(t, shape, "labels")
	assert.Contains(t, shape, "datasets")
	assert.Contains(t, shape, "options")
	ds := shape["datasets"].([]any)[0].(map[string]any)
	assert.Equal(t, "Followers", ds["label"])
	assert.Contains(t, ds, "color")
}

func TestWriteHTML(t *testing.T) {
	for _, c := range []struct {
		family, key string
		cols        []string
	}{
		{variant.Bar, "stacked", []string{"Date", "Platform", "Followers"}},
		{variant.Line, "area", []string{"Date", "Followers", "Posts"}},
		{variant.Pie, "standard", []string{"Platform", "Followers"}},
		{variant.Scatter, "bubble", []string{"Followers", "Posts", "Followers"}},
		{variant.Histogram, "standard", []string{"Posts"}},
	} {
		t.Run(c.family+"/"+c.key, func(t *testing.T) {
			b := build(t, c.family, c.key, c.cols...)
			var buf bytes.Buffer
			require.NoError(t, WriteHTML(&buf, b, "Followers report", HTMLOptions{}))
			assert.Contains(t, buf.String(), "echarts")
			assert.Contains(t, buf.String(), "Followers report")
		})
	}
}

func TestASCII(t *testing.T) {
	line := build(t, variant.Line, "simple", "Date", "Followers")
	out, err := ASCII(line, 40, 8)
	require.NoError(t, err)
	assert.Contains(t, out, "Followers")

	bar := build(t, variant.Bar, "single", "Platform", "Followers")
	out, err = ASCII(bar, 40, 8)
	require.NoError(t, err)
	assert.Contains(t, out, "TikTok")
	assert.Contains(t, out, "1.2k")

	empty := &Bundle{Options: Options{Kind: KindBar}}
	out, err = ASCII(empty, 40, 8)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "(no data)"))
}

func TestPalette(t *testing.T) {
	assert.Len(t, DefaultPalette, 8)
	p := NewPalette([]string{"#000", "", "#fff"})
	assert.Equal(t, Palette{"#000", "#fff"}, p)
	assert.Equal(t, "#000", p.Color(2))
	assert.Equal(t, DefaultPalette, NewPalette(nil))
}
