package suggest

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/vizloom-cli/internal/classify"
	"github.com/KaramelBytes/vizloom-cli/internal/field"
	"github.com/KaramelBytes/vizloom-cli/internal/table"
)

func dim(name string, card int) field.Descriptor {
	return field.Descriptor{Name: name, Type: classify.Dimension, Cardinality: card, Tier: classify.TierOf(card)}
}

func meas(name string) field.Descriptor {
	return field.Descriptor{Name: name, Type: classify.Measure, Cardinality: 500, Tier: classify.TierHigh}
}

func date(name string) field.Descriptor {
	return field.Descriptor{Name: name, Type: classify.Date, Cardinality: 30, Tier: classify.TierMedium}
}

type pick struct {
	typ  string
	prio int
}

func picks(r Result) []pick {
	out := make([]pick, len(r.Suggestions))
	for i, sg := range r.Suggestions {
		out[i] = pick{sg.Type, sg.Priority}
	}
	return out
}

func TestSuggestEmptySelection(t *testing.T) {
	r := Suggest(field.Set{}, 1234)
	assert.Empty(t, r.Suggestions)
	assert.NotNil(t, r.Suggestions)
	assert.Equal(t, ReasonNoFields, r.Reason)
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		name    string
		descs   []field.Descriptor
		records int
		want    []pick
	}{
		{"single measure", []field.Descriptor{meas("price")}, 100, []pick{{Histogram, 1}}},
		{"single dimension", []field.Descriptor{dim("color", 4)}, 100, []pick{{Bar, 1}}},
		{"dimension and measure, few categories", []field.Descriptor{dim("color", 4), meas("sales")}, 100,
			[]pick{{Bar, 1}, {Pie, 2}}},
		{"dimension and measure, many categories", []field.Descriptor{dim("product", 15), meas("sales")}, 100,
			[]pick{{Bar, 1}}},
		{"date and measure", []field.Descriptor{date("day"), meas("sales")}, 100,
			[]pick{{Line, 1}, {Bar, 2}}},
		{"two measures", []field.Descriptor{meas("x"), meas("y")}, 100, []pick{{Scatter, 1}}},
		{"two measures and a dimension", []field.Descriptor{dim("team", 5), meas("x"), meas("y")}, 100,
			[]pick{{GroupedBar, 1}, {Scatter, 1}, {Line, 2}, {GroupedBar, 2}}},
		{"two dimensions and a measure", []field.Descriptor{dim("team", 5), dim("quarter", 4), meas("sales")}, 100,
			[]pick{{GroupedBar, 1}, {StackedBar, 2}, {Heatmap, 3}}},
		{"three measures", []field.Descriptor{meas("a"), meas("b"), meas("c")}, 100,
			[]pick{{ParallelCoordinates, 1}}},
		{"three measures and a dimension", []field.Descriptor{dim("team", 5), meas("a"), meas("b"), meas("c")}, 100,
			[]pick{{GroupedBar, 1}, {Radar, 1}, {Line, 2}, {GroupedBar, 2}}},
		{"high cardinality dimension", []field.Descriptor{dim("sku", 400), meas("sales")}, 100,
			[]pick{{Treemap, 3}}},
		{"large dataset", []field.Descriptor{meas("x"), meas("y")}, 20000,
			[]pick{{Scatter, 1}, {Density, 2}}},
		{"geographic dimension", []field.Descriptor{dim("shipCountry", 12), meas("revenue")}, 100,
			[]pick{{Bar, 1}, {Map, 1}}},
		{"share measure", []field.Descriptor{dim("segment", 3), dim("year", 4), meas("market_share")}, 100,
			[]pick{{GroupedBar, 1}, {StackedBar, 2}, {StackedBar, 2}, {Heatmap, 3}}},
		{"share measure by one dimension", []field.Descriptor{dim("segment", 3), meas("market_share")}, 100,
			[]pick{{Bar, 1}, {Pie, 2}, {StackedBar, 2}}},
		{"medium dimension only", []field.Descriptor{dim("customer", 60)}, 100, []pick{{Table, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Suggest(field.NewSet(tt.descs), tt.records)
			assert.Equal(t, tt.want, picks(r))
		})
	}
}

func TestResultUnique(t *testing.T) {
	r := Suggest(field.NewSet([]field.Descriptor{dim("segment", 3), dim("year", 4), meas("market_share")}), 100)
	require.Len(t, r.Suggestions, 4)

	u := r.Unique()
	require.Len(t, u, 3)
	assert.Equal(t, []string{GroupedBar, StackedBar, Heatmap}, []string{u[0].Type, u[1].Type, u[2].Type})
	assert.Equal(t, "Shows composition within each group", u[1].Reason)
	assert.Len(t, r.Suggestions, 4)

	r = Suggest(field.NewSet([]field.Descriptor{dim("team", 5), meas("x"), meas("y")}), 100)
	u = r.Unique()
	require.Len(t, u, 3)
	assert.Equal(t, pick{GroupedBar, 1}, pick{u[0].Type, u[0].Priority})
	assert.Equal(t, pick{Scatter, 1}, pick{u[1].Type, u[1].Priority})
	assert.Equal(t, pick{Line, 2}, pick{u[2].Type, u[2].Priority})

	assert.Empty(t, Result{}.Unique())
}

func TestSuggestGeographicByValue(t *testing.T) {
	d := dim("market", 3)
	d.UniqueValuesSample = []string{"USA", "Canada", "Mexico"}
	r := Suggest(field.NewSet([]field.Descriptor{d, meas("units")}), 50)
	assert.Contains(t, r.Types(), Map)
}

func TestSuggestPlatformIsNotGeographic(t *testing.T) {
	r := Suggest(field.NewSet([]field.Descriptor{dim("Platform", 3), meas("Followers")}), 50)
	assert.NotContains(t, r.Types(), Map)
}

func TestSuggestDatePlatformFollowers(t *testing.T) {
	tb := table.New([]string{"Date", "Platform", "Followers"}, [][]string{
		{"2024-01-01", "Instagram", "1200.5"},
		{"2024-01-01", "TikTok", "800.25"},
		{"2024-01-02", "Instagram", "1250.75"},
		{"2024-01-02", "YouTube", "400.5"},
		{"2024-01-03", "TikTok", "950.1"},
	})
	set := field.NewSet(field.AnalyzeAll(tb))
	r := Suggest(set, tb.Len())
	require.GreaterOrEqual(t, len(r.Suggestions), 2)
	assert.Equal(t, pick{Line, 1}, picks(r)[0])
	assert.Equal(t, pick{StackedArea, 2}, picks(r)[1])
}

func TestSuggestIsIdempotent(t *testing.T) {
	kinds := []func(int) field.Descriptor{
		func(i int) field.Descriptor { return dim("d", i) },
		func(int) field.Descriptor { return meas("m") },
		func(int) field.Descriptor { return date("t") },
	}
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)
	properties.Property("suggest returns identical lists for identical input", prop.ForAll(
		func(shape []int, card int, records int) bool {
			descs := make([]field.Descriptor, 0, len(shape))
			for _, k := range shape {
				descs = append(descs, kinds[k](card))
			}
			set := field.NewSet(descs)
			a := Suggest(set, records)
			b := Suggest(set, records)
			if len(a.Suggestions) != len(b.Suggestions) || a.Reason != b.Reason {
				return false
			}
			for i := range a.Suggestions {
				if a.Suggestions[i] != b.Suggestions[i] {
					return false
				}
			}
			for i := 1; i < len(a.Suggestions); i++ {
				if a.Suggestions[i-1].Priority > a.Suggestions[i].Priority {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(4, gen.IntRange(0, 2)),
		gen.IntRange(0, 300),
		gen.IntRange(0, 50000),
	))
	properties.TestingRun(t)
}

func TestValidate(t *testing.T) {
	pieOK := NewAnalysis(field.NewSet([]field.Descriptor{dim("c", 5), meas("v")}), 50)
	pieWide := NewAnalysis(field.NewSet([]field.Descriptor{dim("c", 9), meas("v")}), 50)
	scatter := NewAnalysis(field.NewSet([]field.Descriptor{meas("x"), meas("y")}), 0)
	heat := NewAnalysis(field.NewSet([]field.Descriptor{dim("a", 5), dim("b", 40), meas("v")}), 50)
	heatHigh := NewAnalysis(field.NewSet([]field.Descriptor{dim("a", 5), dim("b", 400), meas("v")}), 50)

	assert.True(t, Validate(Pie, pieOK, 50))
	assert.False(t, Validate(Pie, pieWide, 50))
	assert.False(t, Validate(Pie, scatter, 50))
	assert.True(t, Validate(Scatter, scatter, 10))
	assert.False(t, Validate(Scatter, scatter, 9))
	assert.True(t, Validate(Heatmap, heat, 50))
	assert.False(t, Validate(Heatmap, heatHigh, 50))
	assert.False(t, Validate(Radar, scatter, 50))
	assert.True(t, Validate("sankey", scatter, 50))
	for _, typ := range []string{StackedArea, Density, Map, ParallelCoordinates} {
		assert.True(t, Validate(typ, scatter, 0), typ)
	}
}

func TestNameTokens(t *testing.T) {
	assert.Equal(t, []string{"ship", "country"}, nameTokens("shipCountry"))
	assert.Equal(t, []string{"ship", "country"}, nameTokens("ship_country"))
	assert.Equal(t, []string{"platform"}, nameTokens("Platform"))
	assert.Equal(t, []string{"lat"}, nameTokens("LAT"))
}
