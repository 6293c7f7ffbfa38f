// Package explore ties the dataset registry to field analysis,
// suggestions, variants and rendering for one interactive selection.
package explore

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spaolacci/murmur3"

	"github.com/KaramelBytes/vizloom-cli/internal/dataset"
	"github.com/KaramelBytes/vizloom-cli/internal/field"
	"github.com/KaramelBytes/vizloom-cli/internal/render"
	"github.com/KaramelBytes/vizloom-cli/internal/suggest"
	"github.com/KaramelBytes/vizloom-cli/internal/variant"
)

// ErrNoDataset is returned by queries made before any dataset is loaded.
var ErrNoDataset = errors.New("no active dataset")

// UnknownColumnError reports a selected column the dataset lacks.
type UnknownColumnError struct {
	Column    string
	Available []string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q (available: %s)", e.Column, strings.Join(e.Available, ", "))
}

// Analysis is the memoized result for one (dataset, selection) pair.
type Analysis struct {
	Fields  []field.Descriptor
	Set     field.Set
	Suggest suggest.Result
}

// Session holds the current selection over the registry's active
// dataset. It is safe for concurrent use.
type Session struct {
	registry *dataset.Registry
	palette  render.Palette

	mu        sync.Mutex
	selection []string
	cacheFor  string
	cache     map[uint64]*Analysis
}

// New returns a session over reg. A nil reg gets a fresh registry.
func New(reg *dataset.Registry, pal render.Palette) *Session {
	if reg == nil {
		reg = dataset.NewRegistry()
	}
	return &Session{registry: reg, palette: pal, cache: map[uint64]*Analysis{}}
}

// Load makes ds the active dataset and clears the selection.
func (s *Session) Load(ds *dataset.Dataset) {
	s.registry.Set(ds)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = nil
	s.resetLocked(ds)
}

// Dataset returns the active dataset, or nil.
func (s *Session) Dataset() *dataset.Dataset { return s.registry.Active() }

// Select replaces the selection. Names match headers case-insensitively
// and are stored with the header's spelling; duplicates are dropped.
func (s *Session) Select(cols []string) error {
	ds := s.registry.Active()
	if ds == nil {
		return ErrNoDataset
	}
	out := make([]string, 0, len(cols))
	seen := map[string]bool{}
	for _, c := range cols {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		i := ds.Table.Index(c)
		if i < 0 {
			return &UnknownColumnError{Column: c, Available: ds.Columns()}
		}
		name := ds.Table.Headers[i]
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	s.mu.Lock()
	s.selection = out
	s.mu.Unlock()
	return nil
}

// Selection returns a copy of the selected columns.
func (s *Session) Selection() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.selection...)
}

// Fields describes the selected columns, or every column when nothing
// is selected.
func (s *Session) Fields() ([]field.Descriptor, error) {
	ds, cols, err := s.current()
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		cols = ds.Columns()
	}
	return s.analyze(ds, cols).Fields, nil
}

// Suggestions runs the suggestion engine over the selection.
func (s *Session) Suggestions() (suggest.Result, error) {
	ds, cols, err := s.current()
	if err != nil {
		return suggest.Result{}, err
	}
	return s.analyze(ds, cols).Suggest, nil
}

// Variants lists every variant compatible with the selection.
func (s *Session) Variants() ([]variant.Match, error) {
	ds, cols, err := s.current()
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, nil
	}
	return variant.CompatibleVariants(cols, variant.Types(ds.Types), ds.Table), nil
}

// Extendable lists unselected columns that would make some variant
// compatible if appended to the selection.
func (s *Session) Extendable() ([]string, error) {
	ds, cols, err := s.current()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, c := range ds.Columns() {
		if variant.CanExtend(cols, c, variant.Types(ds.Types), ds.Table) {
			out = append(out, c)
		}
	}
	return out, nil
}

// AutoSelect picks the first column combination the family accepts and
// makes it the selection. ok is false when nothing fits; the selection
// is then unchanged.
func (s *Session) AutoSelect(family string) (variant.Match, bool, error) {
	ds := s.registry.Active()
	if ds == nil {
		return variant.Match{}, false, ErrNoDataset
	}
	cols, m, ok := variant.AutoSelect(family, ds.Columns(), variant.Types(ds.Types), ds.Table)
	if !ok {
		return variant.Match{}, false, nil
	}
	s.mu.Lock()
	s.selection = cols
	s.mu.Unlock()
	return m, true, nil
}

// Render builds the bundle for one variant over the selection.
func (s *Session) Render(family, key string) (*render.Bundle, error) {
	ds, cols, err := s.current()
	if err != nil {
		return nil, err
	}
	return render.Build(render.Request{
		Family:  family,
		Variant: key,
		Columns: cols,
		Table:   ds.Table,
		Types:   variant.Types(ds.Types),
		Palette: s.palette,
	})
}

func (s *Session) current() (*dataset.Dataset, []string, error) {
	ds := s.registry.Active()
	if ds == nil {
		return nil, nil, ErrNoDataset
	}
	return ds, s.Selection(), nil
}

// analyze returns the memoized analysis for cols, computing it on miss.
func (s *Session) analyze(ds *dataset.Dataset, cols []string) *Analysis {
	key := memoKey(ds.ID, cols)
	s.mu.Lock()
	if s.cacheFor != ds.ID {
		s.resetLocked(ds)
	}
	if a, ok := s.cache[key]; ok {
		s.mu.Unlock()
		slog.Debug("analysis memo hit", "dataset", ds.ID, "columns", cols)
		return a
	}
	s.mu.Unlock()

	descs := field.AnalyzeColumns(ds.Table, cols)
	set := field.NewSet(descs)
	a := &Analysis{Fields: descs, Set: set, Suggest: suggest.Suggest(set, ds.Rows())}

	s.mu.Lock()
	if s.cacheFor == ds.ID {
		s.cache[key] = a
	}
	s.mu.Unlock()
	return a
}

func (s *Session) resetLocked(ds *dataset.Dataset) {
	s.cache = map[uint64]*Analysis{}
	s.cacheFor = ""
	if ds != nil {
		s.cacheFor = ds.ID
	}
}

// memoKey hashes the dataset ID and ordered selection. Column order
// matters because descriptors are returned in selection order.
func memoKey(id string, cols []string) uint64 {
	h := murmur3.New64()
	h.Write([]byte(id))
	for _, c := range cols {
		h.Write([]byte{0x1f})
		h.Write([]byte(c))
	}
	return h.Sum64()
}
