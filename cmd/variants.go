package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/vizloom-cli/internal/utils"
	"github.com/KaramelBytes/vizloom-cli/internal/variant"
)

var (
	varColumns []string
	varExtend  bool
	varAuto    string
	varJSON    bool
)

var variantsCmd = &cobra.Command{
	Use:   "variants [file]",
	Short: "List chart variants that can render a column selection",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(args, varColumns)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if varAuto != "" {
			family, err := familyKey(varAuto)
			if err != nil {
				return err
			}
			m, ok, err := s.AutoSelect(family)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no column combination of up to 4 columns fits %s", varAuto)
			}
			fmt.Fprintf(out, "✓ Auto-selected [%s] for %s/%s (%s)\n", joinCols(s.Selection()), m.Family, m.Variant, m.Label)
			return nil
		}

		matches, err := s.Variants()
		if err != nil {
			return err
		}
		var ext []string
		if varExtend {
			if ext, err = s.Extendable(); err != nil {
				return err
			}
		}
		if varJSON {
			b, err := utils.PrettyJSON(struct {
				Columns    []string        `json:"columns"`
				Variants   []variant.Match `json:"variants"`
				Extendable []string        `json:"extendable,omitempty"`
			}{s.Selection(), matches, ext})
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}

		fmt.Fprintf(out, "Selection: %s\n", joinCols(s.Selection()))
		if len(matches) == 0 {
			fmt.Fprintln(out, "⚠ No chart variant fits this selection; try --auto <Family|all> or --extend")
		}
		for _, m := range matches {
			fmt.Fprintf(out, "  %-10s %-13s %s\n", m.Family, m.Variant, m.Label)
		}
		if varExtend {
			if len(ext) == 0 {
				fmt.Fprintln(out, "No single column extends this selection")
			} else {
				fmt.Fprintf(out, "Columns that extend the selection: %s\n", joinCols(ext))
			}
		}
		return nil
	},
}

// familyKey resolves a family name case-insensitively; "all" selects every family.
func familyKey(name string) (string, error) {
	if strings.EqualFold(name, variant.All) {
		return variant.All, nil
	}
	for _, f := range variant.Families() {
		if strings.EqualFold(f.Key, name) {
			return f.Key, nil
		}
	}
	return "", fmt.Errorf("unknown chart family %q (use Bar, Line, Pie, Scatter, Histogram or all)", name)
}

func init() {
	rootCmd.AddCommand(variantsCmd)
	variantsCmd.Flags().StringSliceVarP(&varColumns, "columns", "c", nil, "selected columns in order (comma-separated)")
	variantsCmd.Flags().BoolVar(&varExtend, "extend", false, "also list columns that could extend the selection")
	variantsCmd.Flags().StringVar(&varAuto, "auto", "", "pick the first column combination for a family (or 'all')")
	variantsCmd.Flags().BoolVar(&varJSON, "json", false, "print the result as JSON")
}
