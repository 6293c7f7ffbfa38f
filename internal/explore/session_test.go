package explore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/vizloom-cli/internal/dataset"
	"github.com/KaramelBytes/vizloom-cli/internal/render"
	"github.com/KaramelBytes/vizloom-cli/internal/suggest"
	"github.com/KaramelBytes/vizloom-cli/internal/variant"
)

func socialSession(t *testing.T) *Session {
	t.Helper()
	ds, err := dataset.LoadSample("social_media", dataset.Options{})
	require.NoError(t, err)
	s := New(nil, nil)
	s.Load(ds)
	return s
}

func TestNoDataset(t *testing.T) {
	s := New(dataset.NewRegistry(), nil)
	_, err := s.Fields()
	assert.ErrorIs(t, err, ErrNoDataset)
	assert.ErrorIs(t, s.Select([]string{"a"}), ErrNoDataset)
	_, _, err = s.AutoSelect(variant.All)
	assert.ErrorIs(t, err, ErrNoDataset)
}

func TestSelectNormalizesNames(t *testing.T) {
	s := socialSession(t)
	require.NoError(t, s.Select([]string{"date", " PLATFORM ", "Followers", "date", ""}))
	assert.Equal(t, []string{"Date", "Platform", "Followers"}, s.Selection())

	err := s.Select([]string{"Date", "Likes"})
	var uc *UnknownColumnError
	require.True(t, errors.As(err, &uc))
	assert.Equal(t, "Likes", uc.Column)
	assert.Equal(t, []string{"Date", "Platform", "Followers"}, s.Selection())
}

func TestSuggestionsForTimeSeriesSelection(t *testing.T) {
	s := socialSession(t)
	require.NoError(t, s.Select([]string{"Date", "Platform", "Followers"}))
	res, err := s.Suggestions()
	require.NoError(t, err)
	require.NotEmpty(t, res.Suggestions)
	assert.Equal(t, suggest.Line, res.Suggestions[0].Type)
	assert.Equal(t, 1, res.Suggestions[0].Priority)
	assert.Contains(t, res.Types(), suggest.StackedArea)
}

func TestEmptySelection(t *testing.T) {
	s := socialSession(t)
	res, err := s.Suggestions()
	require.NoError(t, err)
	assert.Empty(t, res.Suggestions)
	assert.Equal(t, suggest.ReasonNoFields, res.Reason)

	fields, err := s.Fields()
	require.NoError(t, err)
	assert.Len(t, fields, 4)

	vs, err := s.Variants()
	require.NoError(t, err)
	assert.Empty(t, vs)
}

func TestMemoizesAndResetsOnLoad(t *testing.T) {
	s := socialSession(t)
	require.NoError(t, s.Select([]string{"Platform", "Followers"}))
	_, err := s.Fields()
	require.NoError(t, err)
	_, err = s.Suggestions()
	require.NoError(t, err)
	assert.Len(t, s.cache, 1)

	require.NoError(t, s.Select([]string{"Followers", "Platform"}))
	_, err = s.Suggestions()
	require.NoError(t, err)
	assert.Len(t, s.cache, 2)

	other, err := dataset.LoadSample("regional_sales", dataset.Options{})
	require.NoError(t, err)
	s.Load(other)
	assert.Empty(t, s.cache)
	assert.Empty(t, s.Selection())
}

func TestCacheDroppedWhenRegistryChangesUnderneath(t *testing.T) {
	reg := dataset.NewRegistry()
	first, err := dataset.LoadSample("social_media", dataset.Options{})
	require.NoError(t, err)
	s := New(reg, nil)
	s.Load(first)
	_, err = s.Fields()
	require.NoError(t, err)
	require.Len(t, s.cache, 1)

	second, err := dataset.LoadSample("city_weather", dataset.Options{})
	require.NoError(t, err)
	reg.Set(second)
	fields, err := s.Fields()
	require.NoError(t, err)
	assert.Equal(t, "Month", fields[0].Name)
	assert.Equal(t, second.ID, s.cacheFor)
	assert.Len(t, s.cache, 1)
}

func TestVariantsAndExtendable(t *testing.T) {
	s := socialSession(t)
	require.NoError(t, s.Select([]string{"Date", "Platform", "Followers"}))
	vs, err := s.Variants()
	require.NoError(t, err)
	assert.Contains(t, vs, variant.Match{Family: variant.Line, Variant: "multi", Label: "Multiple lines"})

	require.NoError(t, s.Select([]string{"Platform"}))
	ext, err := s.Extendable()
	require.NoError(t, err)
	assert.Equal(t, []string{"Followers", "Engagement Rate %"}, ext)
}

func TestAutoSelect(t *testing.T) {
	s := socialSession(t)
	m, ok, err := s.AutoSelect(variant.Histogram)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, variant.Match{Family: variant.Histogram, Variant: "standard", Label: "Histogram"}, m)
	assert.Equal(t, []string{"Followers"}, s.Selection())

	_, ok, err = s.AutoSelect("Sankey")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{"Followers"}, s.Selection())
}

func TestRender(t *testing.T) {
	s := socialSession(t)
	require.NoError(t, s.Select([]string{"Date", "Platform", "Followers"}))
	b, err := s.Render(variant.Line, "multi")
	require.NoError(t, err)
	assert.Len(t, b.Datasets, 3)
	assert.Equal(t, "2024-01-01", b.Labels[0])
	for _, d := range b.Datasets {
		assert.Len(t, d.Data, len(b.Labels))
	}

	_, err = s.Render(variant.Pie, "standard")
	assert.ErrorIs(t, err, render.ErrIncompatible)
}

func TestMemoKey(t *testing.T) {
	assert.Equal(t, memoKey("id", []string{"a", "b"}), memoKey("id", []string{"a", "b"}))
	assert.NotEqual(t, memoKey("id", []string{"a", "b"}), memoKey("id", []string{"b", "a"}))
	assert.NotEqual(t, memoKey("ida", []string{"b"}), memoKey("id", []string{"ab"}))
	assert.NotEqual(t, memoKey("x", nil), memoKey("y", nil))
}
