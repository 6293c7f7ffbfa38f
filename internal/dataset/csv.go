package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/KaramelBytes/vizloom-cli/internal/table"
)

type delimitedReader struct{}

func (delimitedReader) CanRead(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv") || strings.HasSuffix(name, ".txt")
}

// Read parses delimited text: header row present, blank lines skipped,
// every cell trimmed, ragged rows allowed.
func (delimitedReader) Read(content []byte, opt Options) (*table.Table, error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(content)
	}
	cr := csv.NewReader(bytes.NewReader(content))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var (
		headers []string
		rows    [][]string
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		// A header made only of delimiters is reported as missing.
		if blank(rec) && headers != nil {
			continue
		}
		for i := range rec {
			rec[i] = trimCell(rec[i])
		}
		if headers == nil {
			headers = rec
			continue
		}
		rows = append(rows, rec)
	}
	if headers == nil {
		return nil, ErrEmptyFile
	}
	if err := validate(headers, rows); err != nil {
		return nil, err
	}
	return table.New(uniqueHeaders(headers), rows), nil
}

// sniffDelimiter picks the most frequent of tab, semicolon and comma in
// the first line. Comma wins ties.
func sniffDelimiter(content []byte) rune {
	line := content
	if i := bytes.IndexByte(content, '\n'); i >= 0 {
		line = content[:i]
	}
	best, bestN := ',', bytes.Count(line, []byte{','})
	for _, d := range []rune{'\t', ';'} {
		if n := bytes.Count(line, []byte(string(d))); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func trimCell(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\u00A0", " "))
}
