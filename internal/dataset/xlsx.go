package dataset

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/KaramelBytes/vizloom-cli/internal/table"
)

type xlsxReader struct{}

func (xlsxReader) CanRead(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

// Read extracts the selected sheet (opt.Sheet, or the first sheet) as a
// table. Only cell values are read: formulas yield their cached result
// and styles are ignored.
func (xlsxReader) Read(content []byte, opt Options) (*table.Table, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	sheets := workbookSheets(zipEntry(zr, "xl/workbook.xml"))
	rels := workbookRels(zipEntry(zr, "xl/_rels/workbook.xml.rels"))
	target, err := sheetTarget(sheets, rels, opt.Sheet)
	if err != nil {
		return nil, err
	}
	data := zipEntry(zr, target)
	if data == nil {
		return nil, fmt.Errorf("worksheet %s missing from workbook", target)
	}
	shared := sharedStrings(zipEntry(zr, "xl/sharedStrings.xml"))

	rr := &sheetRows{dec: xml.NewDecoder(bytes.NewReader(data)), shared: shared}
	var (
		headers []string
		rows    [][]string
	)
	for {
		row, ok := rr.next()
		if !ok {
			break
		}
		if blank(row) {
			continue
		}
		for i := range row {
			row[i] = trimCell(row[i])
		}
		if headers == nil {
			headers = row
			continue
		}
		rows = append(rows, row)
	}
	if headers == nil {
		return nil, ErrEmptyFile
	}
	if err := validate(headers, rows); err != nil {
		return nil, err
	}
	return table.New(uniqueHeaders(headers), rows), nil
}

type workbookSheet struct {
	Name string
	RID  string
}

func sheetTarget(sheets []workbookSheet, rels map[string]string, name string) (string, error) {
	if name == "" {
		if len(sheets) > 0 {
			if rel, ok := rels[sheets[0].RID]; ok {
				return relPath(rel), nil
			}
		}
		return "xl/worksheets/sheet1.xml", nil
	}
	names := make([]string, 0, len(sheets))
	for _, s := range sheets {
		if strings.EqualFold(s.Name, name) {
			if rel, ok := rels[s.RID]; ok {
				return relPath(rel), nil
			}
		}
		names = append(names, s.Name)
	}
	return "", fmt.Errorf("sheet %q not found (available: %s)", name, strings.Join(names, ", "))
}

// workbookSheets lists sheets in workbook order.
func workbookSheets(data []byte) []workbookSheet {
	var out []workbookSheet
	eachStart(data, "sheet", func(se xml.StartElement) {
		var s workbookSheet
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "name":
				s.Name = a.Value
			case "id":
				s.RID = a.Value
			}
		}
		out = append(out, s)
	})
	return out
}

// workbookRels maps relationship ids to their targets.
func workbookRels(data []byte) map[string]string {
	out := map[string]string{}
	eachStart(data, "Relationship", func(se xml.StartElement) {
		var id, target string
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "Id":
				id = a.Value
			case "Target":
				target = a.Value
			}
		}
		if id != "" && target != "" {
			out[id] = target
		}
	})
	return out
}

func eachStart(data []byte, local string, fn func(xml.StartElement)) {
	if len(data) == 0 {
		return
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == local {
			fn(se)
		}
	}
}

// relPath turns a relationship target into a zip entry name. Targets
// may be absolute ("/xl/worksheets/sheet1.xml") or relative to xl/.
func relPath(rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	if strings.HasPrefix(rel, "xl/") {
		return rel
	}
	return path.Join("xl", rel)
}

func zipEntry(zr *zip.Reader, name string) []byte {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			return nil
		}
		return b
	}
	return nil
}

// sharedStrings concatenates every <t> run inside each <si>.
func sharedStrings(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	var (
		out []string
		buf strings.Builder
		inT bool
	)
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "si":
				buf.Reset()
			case "t":
				inT = true
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "t":
				inT = false
			case "si":
				out = append(out, buf.String())
			}
		case xml.CharData:
			if inT {
				buf.Write(se)
			}
		}
	}
}

// sheetRows streams rows of a worksheet, placing each cell by its
// reference so sparse rows keep their column positions.
type sheetRows struct {
	dec    *xml.Decoder
	shared []string
}

func (r *sheetRows) next() ([]string, bool) {
	var row []string
	inRow := false
	for {
		tok, err := r.dec.Token()
		if err != nil {
			if inRow {
				return row, true
			}
			return nil, false
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch {
			case se.Name.Local == "row":
				inRow, row = true, nil
			case inRow && se.Name.Local == "c":
				var ref, typ string
				for _, a := range se.Attr {
					switch a.Name.Local {
					case "r":
						ref = a.Value
					case "t":
						typ = a.Value
					}
				}
				col := columnIndex(ref)
				if col < 0 {
					col = len(row)
				}
				val := r.cellValue(typ)
				for len(row) <= col {
					row = append(row, "")
				}
				row[col] = val
			}
		case xml.EndElement:
			if se.Name.Local == "row" && inRow {
				return row, true
			}
		}
	}
}

// cellValue reads up to the closing </c>, resolving shared strings.
func (r *sheetRows) cellValue(typ string) string {
	var (
		val     strings.Builder
		capture bool
	)
	for {
		tok, err := r.dec.Token()
		if err != nil {
			break
		}
		if se, ok := tok.(xml.StartElement); ok && (se.Name.Local == "v" || se.Name.Local == "t") {
			capture = true
			continue
		}
		if ee, ok := tok.(xml.EndElement); ok {
			if ee.Name.Local == "v" || ee.Name.Local == "t" {
				capture = false
				continue
			}
			if ee.Name.Local == "c" {
				break
			}
		}
		if cd, ok := tok.(xml.CharData); ok && capture {
			val.Write(cd)
		}
	}
	s := val.String()
	switch typ {
	case "s":
		idx, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || idx < 0 || idx >= len(r.shared) {
			return ""
		}
		return r.shared[idx]
	case "b":
		if s == "1" {
			return "TRUE"
		}
		return "FALSE"
	}
	return s
}

// columnIndex converts a cell reference like "C12" to a 0-based column.
func columnIndex(ref string) int {
	idx := 0
	for _, c := range strings.ToUpper(ref) {
		if c < 'A' || c > 'Z' {
			break
		}
		idx = idx*26 + int(c-'A'+1)
	}
	return idx - 1
}
