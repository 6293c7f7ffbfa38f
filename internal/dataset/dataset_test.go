package dataset

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/vizloom-cli/internal/classify"
)

func TestParseCSV(t *testing.T) {
	src := "\xef\xbb\xbfregion , sales,note\n\n  West , 10 ,a\nEast,5\n\n,,\nNorth,7,c,extra\n"
	ds, err := Parse("sales.csv", "sales.csv", []byte(src), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"region", "sales", "note"}, ds.Columns())
	assert.Equal(t, 3, ds.Rows())
	assert.Equal(t, "West", ds.Table.Value(0, "region"))
	assert.Equal(t, "10", ds.Table.Value(0, "sales"))
	assert.Equal(t, "", ds.Table.Value(1, "note"))
	assert.Equal(t, classify.Numeric, ds.Types["sales"])
	assert.NotEmpty(t, ds.ID)
}

func TestParseDelimiters(t *testing.T) {
	semi, err := Parse("eu.csv", "eu.csv", []byte("a;b\n1,5;2\n3;4\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, semi.Columns())
	assert.Equal(t, "1,5", semi.Table.Value(0, "a"))

	tsv, err := Parse("t.tsv", "t.tsv", []byte("a\tb\n1\t2\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, "2", tsv.Table.Value(0, "b"))

	forced, err := Parse("p.txt", "p.txt", []byte("a|b\n1|2\n"), Options{Delimiter: '|'})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, forced.Columns())
}

func TestParseDuplicateAndBlankHeaders(t *testing.T) {
	ds, err := Parse("d.csv", "d.csv", []byte("x,,x\n1,2,3\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "column_2", "x_2"}, ds.Columns())

	ds, err = Parse("d.csv", "d.csv", []byte("a,a,a_2\n1,2,3\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a_2", "a_2_2"}, ds.Columns())

	ds, err = Parse("d.csv", "d.csv", []byte("column_2,,a,a,a\n1,2,3,4,5\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"column_2", "column_2_2", "a", "a_2", "a_3"}, ds.Columns())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    error
	}{
		{"empty", "e.csv", "", ErrEmptyFile},
		{"whitespace", "e.csv", " \n\n", ErrEmptyFile},
		{"header only", "h.csv", "a,b\n", ErrNoRows},
		{"blank header", "h.csv", ",,\n1,2,3\n", ErrNoHeader},
		{"unsupported", "notes.docx", "x", ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Parse(tt.file, tt.file, []byte(tt.content), Options{})
			assert.Nil(t, ds)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			var ie *IngestError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, tt.file, ie.Source)
		})
	}
}

func TestParseMaxRows(t *testing.T) {
	ds, err := Parse("m.csv", "m.csv", []byte("a\n1\n2\n3\n"), Options{MaxRows: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Rows())
}

func TestLoadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(p, []byte("k,v\na,1\n"), 0o644))
	ds, err := LoadFile(p, Options{})
	require.NoError(t, err)
	assert.Equal(t, "data.csv", ds.Name)
	assert.Equal(t, p, ds.Source)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.csv"), Options{})
	var ie *IngestError
	assert.True(t, errors.As(err, &ie))
}

// buildXLSX writes a minimal two-sheet workbook.
func buildXLSX(t *testing.T) []byte {
	t.Helper()
	files := map[string]string{
		"xl/workbook.xml": `<?xml version="1.0"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets><sheet name="Notes" sheetId="1" r:id="rId1"/><sheet name="Data" sheetId="2" r:id="rId2"/></sheets></workbook>`,
		"xl/_rels/workbook.xml.rels": `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Target="worksheets/sheet1.xml"/><Relationship Id="rId2" Target="/xl/worksheets/sheet2.xml"/></Relationships>`,
		"xl/sharedStrings.xml": `<?xml version="1.0"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<si><t>Region</t></si><si><t>Sales</t></si><si><r><t>We</t></r><r><t>st</t></r></si><si><t>East</t></si><si><t>memo</t></si></sst>`,
		"xl/worksheets/sheet1.xml": `<?xml version="1.0"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>
<row r="1"><c r="A1" t="s"><v>4</v></c></row><row r="2"><c r="A2"><v>1</v></c></row></sheetData></worksheet>`,
		"xl/worksheets/sheet2.xml": `<?xml version="1.0"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>
<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c></row>
<row r="2"><c r="A2" t="s"><v>2</v></c><c r="B2"><v>10.5</v></c></row>
<row r="3"><c r="B3"><v>4</v></c></row>
<row r="4"><c r="A4" t="inlineStr"><is><t>North</t></is></c><c r="B4"><v>7</v></c></row>
</sheetData></worksheet>`,
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestParseXLSX(t *testing.T) {
	raw := buildXLSX(t)

	ds, err := Parse("book.xlsx", "book.xlsx", raw, Options{Sheet: "data"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Region", "Sales"}, ds.Columns())
	assert.Equal(t, 3, ds.Rows())
	assert.Equal(t, "West", ds.Table.Value(0, "Region"))
	assert.Equal(t, "", ds.Table.Value(1, "Region"))
	assert.Equal(t, "4", ds.Table.Value(1, "Sales"))
	assert.Equal(t, "North", ds.Table.Value(2, "Region"))

	first, err := Parse("book.xlsx", "book.xlsx", raw, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"memo"}, first.Columns())

	_, err = Parse("book.xlsx", "book.xlsx", raw, Options{Sheet: "Missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Notes, Data")
}

func TestRelPath(t *testing.T) {
	assert.Equal(t, "xl/worksheets/sheet1.xml", relPath("/xl/worksheets/sheet1.xml"))
	assert.Equal(t, "xl/worksheets/sheet1.xml", relPath("worksheets/sheet1.xml"))
	assert.Equal(t, "xl/styles.xml", relPath("/styles.xml"))
	assert.Equal(t, 2, columnIndex("C12"))
	assert.Equal(t, 27, columnIndex("AB3"))
}

func TestSamples(t *testing.T) {
	all, err := Samples()
	require.NoError(t, err)
	require.Len(t, all, 4)
	for _, s := range all {
		ds, err := LoadSample(s.Name, Options{})
		require.NoError(t, err, s.Name)
		assert.Greater(t, ds.Rows(), 10, s.Name)
		assert.Equal(t, s.Title, ds.Name)
		assert.Equal(t, "sample:"+s.Name, ds.Source)
	}

	social, err := LoadSample("social_media", Options{})
	require.NoError(t, err)
	assert.Equal(t, classify.DateType, social.Types["Date"])
	assert.Equal(t, classify.Categorical, social.Types["Platform"])
	assert.Equal(t, classify.Numeric, social.Types["Followers"])

	_, err = LoadSample("nope", Options{})
	assert.True(t, errors.Is(err, ErrUnknownSample))
}

func TestRegistryLastWriterWins(t *testing.T) {
	r := NewRegistry()
	first := r.Begin()
	second := r.Begin()

	newer := &Dataset{Name: "newer"}
	older := &Dataset{Name: "older"}
	require.NoError(t, r.Complete(second, newer))
	assert.ErrorIs(t, r.Complete(first, older), ErrSuperseded)
	assert.Equal(t, "newer", r.Active().Name)
}

func TestRegistryConcurrentLoads(t *testing.T) {
	r := NewRegistry()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []string
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tk := r.Begin()
			name := strings.Repeat("x", i+1)
			if r.Complete(tk, &Dataset{Name: name}) == nil {
				mu.Lock()
				winners = append(winners, name)
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	require.NotEmpty(t, winners)
	assert.Contains(t, winners, r.Active().Name)
}
