package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/vizloom-cli/internal/dataset"
	"github.com/KaramelBytes/vizloom-cli/internal/utils"
)

var samplesJSON bool

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "List the built-in sample datasets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := dataset.Samples()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if samplesJSON {
			b, err := utils.PrettyJSON(all)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}
		category := ""
		for _, s := range all {
			if s.Category != category {
				category = s.Category
				fmt.Fprintf(out, "%s\n", category)
			}
			fmt.Fprintf(out, "  - %s: %s\n    %s\n", s.Name, s.Title, s.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(samplesCmd)
	samplesCmd.Flags().BoolVar(&samplesJSON, "json", false, "print the catalog as JSON")
}
