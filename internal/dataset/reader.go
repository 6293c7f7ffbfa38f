package dataset

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/vizloom-cli/internal/table"
)

// Options control how a source is read.
type Options struct {
	// Delimiter overrides delimiter sniffing for text files when non-zero.
	Delimiter rune
	// Sheet selects an XLSX sheet by name; empty means the first sheet.
	Sheet string
	// MaxRows truncates the table after reading; 0 means unlimited.
	MaxRows int
}

// Reader turns raw file content into a table.
type Reader interface {
	CanRead(filename string) bool
	Read(content []byte, opt Options) (*table.Table, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

// ReaderFor returns the first registered reader accepting filename.
func ReaderFor(filename string) (Reader, bool) {
	for _, r := range registry {
		if r.CanRead(filename) {
			return r, true
		}
	}
	return nil, false
}

func init() {
	Register(delimitedReader{})
	Register(xlsxReader{})
}

// LoadFile reads and types a dataset from disk.
func LoadFile(path string, opt Options) (*Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, ingestErr(path, "read file", err)
	}
	return Parse(filepath.Base(path), path, b, opt)
}

// LoadReader reads a dataset from r; name selects the reader by extension.
func LoadReader(name string, r io.Reader, opt Options) (*Dataset, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, ingestErr(name, "read input", err)
	}
	return Parse(name, name, b, opt)
}

// Parse builds a dataset from in-memory content. No dataset is returned
// on error.
func Parse(name, source string, content []byte, opt Options) (*Dataset, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, ingestErr(source, "", ErrEmptyFile)
	}
	rd, ok := ReaderFor(name)
	if !ok {
		return nil, ingestErr(source, fmt.Sprintf("no reader for %q", filepath.Ext(name)), ErrUnsupported)
	}
	t, err := rd.Read(content, opt)
	if err != nil {
		return nil, ingestErr(source, "parse", err)
	}
	if opt.MaxRows > 0 {
		t = t.Head(opt.MaxRows)
	}
	return New(name, source, t), nil
}

// validate checks a freshly read header and rows.
func validate(headers []string, rows [][]string) error {
	if len(headers) == 0 {
		return ErrNoHeader
	}
	named := false
	for _, h := range headers {
		if !table.IsNull(h) {
			named = true
			break
		}
	}
	if !named {
		return ErrNoHeader
	}
	if len(rows) == 0 {
		return ErrNoRows
	}
	return nil
}

// uniqueHeaders trims names, fills blanks and suffixes duplicates so
// every column stays addressable.
func uniqueHeaders(headers []string) []string {
	out := make([]string, len(headers))
	seen := make(map[string]bool, len(headers))
	for i, h := range headers {
		name := trimCell(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		base := name
		for n := 2; seen[name]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		seen[name] = true
		out[i] = name
	}
	return out
}
