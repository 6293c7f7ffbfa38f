package cmd

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/vizloom-cli/internal/render"
	"github.com/KaramelBytes/vizloom-cli/internal/utils"
	"github.com/KaramelBytes/vizloom-cli/internal/variant"
)

var (
	rndFamily  string
	rndVariant string
	rndColumns []string
	rndFormat  string
	rndOutput  string
	rndTitle   string
	rndWidth   int
	rndHeight  int
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render one chart variant as HTML, a JSON bundle or a terminal preview",
	Long: `Render builds the chart data for a family/variant over the selected columns.
Without --columns the first fitting column combination is chosen; without
--variant the first variant of the family that fits is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(rndFormat)
		switch format {
		case "html", "json", "ascii":
		default:
			return fmt.Errorf("unsupported --format: %s (use html|json|ascii)", rndFormat)
		}
		if rndFamily == "" || strings.EqualFold(rndFamily, variant.All) {
			return fmt.Errorf("--family is required (Bar, Line, Pie, Scatter or Histogram)")
		}
		family, err := familyKey(rndFamily)
		if err != nil {
			return err
		}
		s, err := openSession(args, rndColumns)
		if err != nil {
			return err
		}

		key := rndVariant
		if len(s.Selection()) == 0 {
			m, ok, err := s.AutoSelect(family)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no column combination fits %s; pass --columns", family)
			}
			if key == "" {
				key = m.Variant
			}
			slog.Info("auto-selected columns", "columns", s.Selection(), "family", family)
		}
		if key == "" {
			matches, err := s.Variants()
			if err != nil {
				return err
			}
			for _, m := range matches {
				if m.Family == family {
					key = m.Variant
					break
				}
			}
			if key == "" {
				return fmt.Errorf("no %s variant fits [%s]; try 'vizloom variants --auto %s'", family, joinCols(s.Selection()), family)
			}
		}

		b, err := s.Render(family, key)
		if err != nil {
			return err
		}
		ds := s.Dataset()
		title := rndTitle
		if title == "" {
			v, _ := variant.Lookup(family, key)
			title = fmt.Sprintf("%s: %s", ds.Name, v.Label)
		}

		out := cmd.OutOrStdout()
		var payload []byte
		switch format {
		case "html":
			var buf bytes.Buffer
			o := render.HTMLOptions{}
			if cfg != nil {
				o.Width, o.Height = cfg.ChartWidth, cfg.ChartHeight
			}
			if err := render.WriteHTML(&buf, b, title, o); err != nil {
				return err
			}
			path := rndOutput
			if path == "" {
				dir := "."
				if cfg != nil && cfg.OutputDir != "" {
					dir = cfg.OutputDir
				}
				path = utils.OutputPath(dir, "html", ds.Name, family, key)
			}
			if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Wrote %s/%s chart of [%s] to %s\n", family, key, joinCols(s.Selection()), path)
			return nil
		case "json":
			payload, err = utils.PrettyJSON(b)
			if err != nil {
				return err
			}
			payload = append(payload, '\n')
		case "ascii":
			text, err := render.ASCII(b, rndWidth, rndHeight)
			if err != nil {
				return err
			}
			payload = []byte(title + "\n" + text)
		}
		if rndOutput != "" {
			if err := utils.SafeWriteFile(rndOutput, payload); err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Wrote %s output to %s\n", format, rndOutput)
			return nil
		}
		_, err = out.Write(payload)
		return err
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	f := renderCmd.Flags()
	f.StringVarP(&rndFamily, "family", "f", "", "chart family: Bar|Line|Pie|Scatter|Histogram")
	f.StringVarP(&rndVariant, "variant", "v", "", "variant key within the family (default first that fits)")
	f.StringSliceVarP(&rndColumns, "columns", "c", nil, "columns in order (default auto-select)")
	f.StringVar(&rndFormat, "format", "html", "output format: html|json|ascii")
	f.StringVarP(&rndOutput, "output", "o", "", "output path (html defaults to output_dir)")
	f.StringVar(&rndTitle, "title", "", "chart title")
	f.IntVar(&rndWidth, "width", 60, "ascii: plot width in columns")
	f.IntVar(&rndHeight, "height", 12, "ascii: plot height in rows")
}
