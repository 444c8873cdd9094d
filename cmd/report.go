package cmd

import (
	"time"

	"github.com/KaramelBytes/pcareport/internal/analysis"
	"github.com/KaramelBytes/pcareport/internal/dataset"
	"github.com/KaramelBytes/pcareport/internal/report"
)

// analyze loads the configured dataset and runs every analysis stage.
func analyze() (*analysis.Result, error) {
	started := time.Now()
	logger.FileOperation("read", cfg.DatasetPath)
	tbl, err := dataset.Load(cfg.DatasetPath, dataset.Options{
		LabelColumn: cfg.LabelColumn,
		SheetName:   cfg.SheetName,
		SheetIndex:  1,
	})
	if err != nil {
		return nil, err
	}
	logger.Stage("load", started, "rows", tbl.NumRows(), "features", tbl.NumFeatures())

	return analysis.Run(tbl, analysis.Options{
		TopVariance:       cfg.TopVariance,
		TopLoadings:       cfg.TopLoadings,
		LoadingComponents: cfg.LoadingComponents,
		Threshold:         cfg.VarianceThreshold,
		Logger:            logger,
	})
}

// generateReport runs the pipeline and writes the HTML report, returning its path.
func generateReport() (string, error) {
	res, err := analyze()
	if err != nil {
		return "", err
	}
	if cfg.StaticChartsDir != "" {
		paths, err := report.ExportStaticCharts(res, cfg.StaticChartsDir)
		if err != nil {
			return "", err
		}
		logger.Info("Static charts exported", "dir", cfg.StaticChartsDir, "files", len(paths))
	}
	r := report.NewHTMLReporter(cfg.ReportTitle, cfg.DatasetTitle, logger)
	if err := r.Generate(res, cfg.OutputPath); err != nil {
		return "", err
	}
	return cfg.OutputPath, nil
}
