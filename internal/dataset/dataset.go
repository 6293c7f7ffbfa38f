// Package dataset loads tabular files and built-in samples into typed
// in-memory datasets and tracks which one is active.
package dataset

import (
	"strings"

	"github.com/google/uuid"

	"github.com/KaramelBytes/vizloom-cli/internal/classify"
	"github.com/KaramelBytes/vizloom-cli/internal/table"
)

// Dataset is a fully loaded table plus its ingestion-time column types.
type Dataset struct {
	ID          string                         `json:"id"`
	Name        string                         `json:"name"`
	Description string                         `json:"description,omitempty"`
	Category    string                         `json:"category,omitempty"`
	Source      string                         `json:"source"`
	Table       *table.Table                   `json:"-"`
	Types       map[string]classify.ColumnType `json:"types"`
}

// New types every column of t and assigns a fresh ID.
func New(name, source string, t *table.Table) *Dataset {
	return &Dataset{
		ID:     uuid.NewString(),
		Name:   strings.TrimSpace(name),
		Source: source,
		Table:  t,
		Types:  classify.DetectAll(t),
	}
}

// Columns returns the header names in order.
func (d *Dataset) Columns() []string { return d.Table.Headers }

// Rows returns the number of data rows.
func (d *Dataset) Rows() int { return d.Table.Len() }
