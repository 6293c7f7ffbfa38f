package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/vizloom-cli/internal/insight"
	"github.com/KaramelBytes/vizloom-cli/internal/utils"
)

var (
	insMarkdown   bool
	insOutput     string
	insNoCorr     bool
	insNoOutliers bool
	insOutlierThr float64
	insSampleRows int
)

var insightsCmd = &cobra.Command{
	Use:   "insights [file]",
	Short: "Describe a dataset with summary statistics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args)
		if err != nil {
			return err
		}
		opt := insight.DefaultOptions()
		if cfg != nil {
			opt.SampleRows = cfg.SampleRows
		}
		if cmd.Flags().Changed("sample-rows") {
			opt.SampleRows = insSampleRows
		}
		opt.Correlations = !insNoCorr
		opt.Outliers = !insNoOutliers
		if insOutlierThr > 0 {
			opt.OutlierThreshold = insOutlierThr
		}
		rep := insight.Analyze(ds.Name, ds.Table, ds.Types, opt)

		var text string
		if insMarkdown {
			text = rep.Markdown()
		} else {
			text = fmt.Sprintf("%s (%d rows, %d columns)\n", ds.Name, rep.Rows, len(rep.Cols))
			for _, line := range rep.Sentences() {
				text += "- " + line + "\n"
			}
		}
		out := cmd.OutOrStdout()
		if insOutput != "" {
			if err := utils.SafeWriteFile(insOutput, []byte(text)); err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Wrote insights to %s\n", insOutput)
			return nil
		}
		fmt.Fprint(out, text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insightsCmd)
	f := insightsCmd.Flags()
	f.BoolVar(&insMarkdown, "markdown", false, "print the full markdown report")
	f.StringVarP(&insOutput, "output", "o", "", "write to a file instead of stdout")
	f.BoolVar(&insNoCorr, "no-correlations", false, "skip Pearson correlations")
	f.BoolVar(&insNoOutliers, "no-outliers", false, "skip robust outlier counts (MAD)")
	f.Float64Var(&insOutlierThr, "outlier-threshold", 3.5, "robust |z| threshold for outliers")
	f.IntVar(&insSampleRows, "sample-rows", 5, "rows shown in the markdown head section")
}
