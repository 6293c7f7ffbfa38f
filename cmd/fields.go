package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/vizloom-cli/internal/utils"
)

var (
	fieldsJSON    bool
	fieldsColumns []string
)

var fieldsCmd = &cobra.Command{
	Use:   "fields [file]",
	Short: "Classify columns as dimensions, measures or dates",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(args, fieldsColumns)
		if err != nil {
			return err
		}
		descs, err := s.Fields()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if fieldsJSON {
			b, err := utils.PrettyJSON(descs)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}
		ds := s.Dataset()
		fmt.Fprintf(out, "%s (%d rows)\n", ds.Name, ds.Rows())
		data := pterm.TableData{{"Column", "Type", "Loaded as", "Distinct", "Tier", "Nulls", "Examples"}}
		for _, d := range descs {
			nulls := ""
			if d.HasNulls {
				nulls = "yes"
			}
			examples := d.UniqueValuesSample
			if len(examples) > 3 {
				examples = examples[:3]
			}
			data = append(data, []string{
				d.Name, string(d.Type), string(ds.Types[d.Name]),
				strconv.Itoa(d.Cardinality), string(d.Tier), nulls, strings.Join(examples, ", "),
			})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, table)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
	fieldsCmd.Flags().BoolVar(&fieldsJSON, "json", false, "print descriptors as JSON")
	fieldsCmd.Flags().StringSliceVarP(&fieldsColumns, "columns", "c", nil, "columns to describe (default all)")
}
