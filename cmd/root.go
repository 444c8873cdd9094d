package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/pcareport/internal/config"
	"github.com/KaramelBytes/pcareport/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Input/output overrides (take precedence over config and env)
	flagDataPath   string
	flagLabel      string
	flagOutputPath string

	// Loaded configuration
	cfg    *cfgpkg.Global
	logger *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pcareport",
	Short: "Variance and PCA report for a labeled sensor dataset",
	Long: `pcareport loads a labeled feature table, ranks features by variance, runs a
principal component analysis on the standardized features and writes a static HTML
report with interactive charts. Run without a subcommand to generate the report.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return loadConfig(cmd.Root()) },
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := generateReport()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Report generated: %s\n", path)
		return nil
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.pcareport/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagDataPath, "data", "", "dataset path, CSV/TSV/XLSX (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLabel, "label", "", "label column name (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&flagOutputPath, "output", "o", "", "HTML report path (overrides config)")
}

func loadConfig(root *cobra.Command) error {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return err
	}
	// Apply CLI overrides if provided
	f := root.PersistentFlags()
	if f.Changed("data") && flagDataPath != "" {
		c.DatasetPath = flagDataPath
	}
	if f.Changed("label") && flagLabel != "" {
		c.LabelColumn = flagLabel
	}
	if f.Changed("output") && flagOutputPath != "" {
		c.OutputPath = flagOutputPath
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	logger = logging.New(logging.Options{Format: c.LogFormat, Debug: debug, Quiet: true})
	return nil
}
