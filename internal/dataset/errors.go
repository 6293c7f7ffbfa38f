package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyFile indicates the input held no bytes or only blank lines.
	ErrEmptyFile = errors.New("file is empty")
	// ErrNoHeader indicates the first record had no usable column names.
	ErrNoHeader = errors.New("missing header row")
	// ErrNoRows indicates a header with no data rows after it.
	ErrNoRows = errors.New("no data rows")
	// ErrUnsupported indicates no reader handles the file.
	ErrUnsupported = errors.New("unsupported file format")
	// ErrSuperseded is returned when a newer ingestion began before this one completed.
	ErrSuperseded = errors.New("ingestion superseded by a newer load")
	// ErrUnknownSample indicates a sample name missing from the catalog.
	ErrUnknownSample = errors.New("unknown sample dataset")
)

// IngestError describes why a source could not be loaded.
type IngestError struct {
	Source string
	Reason string
	Err    error
}

func (e *IngestError) Error() string {
	if e == nil {
		return "ingest failed"
	}
	if e.Reason != "" {
		return fmt.Sprintf("load %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *IngestError) Unwrap() error { return e.Err }

func ingestErr(source, reason string, err error) error {
	return &IngestError{Source: source, Reason: reason, Err: err}
}
