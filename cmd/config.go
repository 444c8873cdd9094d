package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/pcareport/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set pcareport configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "dataset_path: %s\n", cfg.DatasetPath)
		fmt.Fprintf(w, "label_column: %s\n", cfg.LabelColumn)
		if cfg.SheetName != "" {
			fmt.Fprintf(w, "sheet_name: %s\n", cfg.SheetName)
		}
		fmt.Fprintf(w, "output_path: %s\n", cfg.OutputPath)
		if cfg.StaticChartsDir != "" {
			fmt.Fprintf(w, "static_charts_dir: %s\n", cfg.StaticChartsDir)
		}
		fmt.Fprintf(w, "top_variance: %d\n", cfg.TopVariance)
		fmt.Fprintf(w, "top_loadings: %d\n", cfg.TopLoadings)
		fmt.Fprintf(w, "loading_components: %d\n", cfg.LoadingComponents)
		fmt.Fprintf(w, "variance_threshold: %.3f\n", cfg.VarianceThreshold)
		fmt.Fprintf(w, "report_title: %s\n", cfg.ReportTitle)
		fmt.Fprintf(w, "dataset_title: %s\n", cfg.DatasetTitle)
		fmt.Fprintf(w, "log_format: %s\n", cfg.LogFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		switch key {
		case "dataset_path":
			cfg.DatasetPath = val
		case "label_column":
			cfg.LabelColumn = val
		case "sheet_name":
			cfg.SheetName = val
		case "output_path":
			cfg.OutputPath = val
		case "static_charts_dir":
			cfg.StaticChartsDir = val
		case "top_variance", "top_loadings", "loading_components":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid positive int for %s: %v", key, val)
			}
			switch key {
			case "top_variance":
				cfg.TopVariance = i
			case "top_loadings":
				cfg.TopLoadings = i
			default:
				cfg.LoadingComponents = i
			}
		case "variance_threshold":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("invalid float for variance_threshold: %w", err)
			}
			cfg.VarianceThreshold = f
		case "report_title":
			cfg.ReportTitle = val
		case "dataset_title":
			cfg.DatasetTitle = val
		case "log_format":
			cfg.LogFormat = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
