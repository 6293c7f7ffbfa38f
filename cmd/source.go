package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/vizloom-cli/internal/config"
	"github.com/KaramelBytes/vizloom-cli/internal/dataset"
	"github.com/KaramelBytes/vizloom-cli/internal/explore"
	"github.com/KaramelBytes/vizloom-cli/internal/render"
)

var (
	srcSample    string
	srcSheet     string
	srcDelimiter string
	srcMaxRows   int
)

var errNoSource = errors.New("provide a data file or --sample <name> (see 'vizloom samples')")

// addSourceFlags registers the data-source flags shared by every
// command that reads a dataset.
func addSourceFlags(c *cobra.Command) {
	f := c.PersistentFlags()
	f.StringVar(&srcSample, "sample", "", "use a built-in sample dataset instead of a file")
	f.StringVar(&srcSheet, "sheet", "", "XLSX: sheet name (default first sheet)")
	f.StringVar(&srcDelimiter, "delimiter", "", "delimiter: one character or 'tab' (default sniffed)")
	f.IntVar(&srcMaxRows, "max-rows", 0, "maximum rows to load (0 = config or unlimited)")
}

func sourceOptions() (dataset.Options, error) {
	opt := dataset.Options{Sheet: srcSheet, MaxRows: srcMaxRows}
	delim := srcDelimiter
	if cfg != nil {
		if opt.MaxRows == 0 {
			opt.MaxRows = cfg.MaxRows
		}
		if delim == "" {
			delim = cfg.Delimiter
		}
	}
	r, err := cfgpkg.ParseDelimiter(delim)
	if err != nil {
		return opt, err
	}
	opt.Delimiter = r
	return opt, nil
}

// loadDataset reads the file named by args[0] or the --sample dataset.
func loadDataset(args []string) (*dataset.Dataset, error) {
	opt, err := sourceOptions()
	if err != nil {
		return nil, err
	}
	switch {
	case len(args) > 0 && srcSample != "":
		return nil, fmt.Errorf("use either a file or --sample, not both")
	case srcSample != "":
		slog.Debug("loading sample", "name", srcSample)
		return dataset.LoadSample(srcSample, opt)
	case len(args) > 0:
		slog.Debug("loading file", "path", args[0], "sheet", opt.Sheet, "max_rows", opt.MaxRows)
		return dataset.LoadFile(args[0], opt)
	}
	return nil, errNoSource
}

// openSession loads the dataset and applies a column selection.
func openSession(args []string, columns []string) (*explore.Session, error) {
	ds, err := loadDataset(args)
	if err != nil {
		return nil, err
	}
	s := explore.New(nil, palette())
	s.Load(ds)
	slog.Info("dataset loaded", "name", ds.Name, "rows", ds.Rows(), "columns", len(ds.Columns()))
	if err := s.Select(columns); err != nil {
		return nil, err
	}
	return s, nil
}

func palette() render.Palette {
	if cfg == nil {
		return render.DefaultPalette
	}
	return render.NewPalette(cfg.Palette)
}

func joinCols(cols []string) string {
	if len(cols) == 0 {
		return "(none)"
	}
	return strings.Join(cols, ", ")
}
