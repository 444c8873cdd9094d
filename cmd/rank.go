package cmd

import (
	"fmt"

	"github.com/KaramelBytes/pcareport/internal/analysis"
	"github.com/KaramelBytes/pcareport/internal/dataset"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var rankTop int

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Print features ranked by sample variance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := dataset.Load(cfg.DatasetPath, dataset.Options{LabelColumn: cfg.LabelColumn, SheetName: cfg.SheetName, SheetIndex: 1})
		if err != nil {
			return err
		}
		top := cfg.TopVariance
		if cmd.Flags().Changed("top") && rankTop > 0 {
			top = rankTop
		}
		r, err := analysis.RankVariance(tbl, top)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s features, showing %d\n", humanize.Comma(int64(len(r.All))), len(r.Top))
		for i, fv := range r.Top {
			fmt.Fprintf(w, "%3d. %s: %.6g\n", i+1, fv.Feature, fv.Variance)
		}
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print a Markdown summary of the variance and PCA results",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := analyze()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), res.Markdown())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(summaryCmd)
	rankCmd.Flags().IntVar(&rankTop, "top", 0, "number of features to list (default from config)")
}
