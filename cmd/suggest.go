package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/vizloom-cli/internal/suggest"
	"github.com/KaramelBytes/vizloom-cli/internal/utils"
)

var (
	sugColumns  []string
	sugValidate string
	sugJSON     bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [file]",
	Short: "Recommend chart types for a column selection",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(args, sugColumns)
		if err != nil {
			return err
		}
		res, err := s.Suggestions()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if sugValidate != "" {
			ok := suggest.Validate(sugValidate, res.FieldAnalysis, s.Dataset().Rows())
			if ok {
				fmt.Fprintf(out, "✓ %s fits [%s]\n", sugValidate, joinCols(s.Selection()))
				return nil
			}
			return fmt.Errorf("%s does not fit [%s]", sugValidate, joinCols(s.Selection()))
		}

		if sugJSON {
			b, err := utils.PrettyJSON(res)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}
		a := res.FieldAnalysis
		fmt.Fprintf(out, "Selection: %s (%d dimensions, %d measures, %d dates)\n",
			joinCols(s.Selection()), a.D(), a.M(), a.T())
		if len(res.Suggestions) == 0 {
			fmt.Fprintf(out, "⚠ %s\n", res.Reason)
			return nil
		}
		for i, sg := range res.Unique() {
			fmt.Fprintf(out, "%2d. %-22s p%d  %s\n", i+1, sg.Type, sg.Priority, sg.Reason)
		}
		if res.Reason != "" {
			fmt.Fprintf(out, "⚠ %s\n", res.Reason)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().StringSliceVarP(&sugColumns, "columns", "c", nil, "selected columns (comma-separated, repeatable)")
	suggestCmd.Flags().StringVar(&sugValidate, "validate", "", "check whether one chart type fits the selection")
	suggestCmd.Flags().BoolVar(&sugJSON, "json", false, "print the full result as JSON")
}
