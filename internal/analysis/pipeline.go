package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/KaramelBytes/pcareport/internal/dataset"
	"github.com/KaramelBytes/pcareport/internal/logging"
	"github.com/google/uuid"
)

// Options controls the analysis stages.
type Options struct {
	TopVariance       int
	TopLoadings       int
	LoadingComponents int
	Threshold         float64
	Logger            *logging.Logger
}

// DefaultOptions returns the constants used by the report.
func DefaultOptions() Options {
	return Options{
		TopVariance:       50,
		TopLoadings:       10,
		LoadingComponents: 3,
		Threshold:         0.95,
	}
}

// Result bundles every derived table the report needs.
type Result struct {
	Dataset     *dataset.Table
	Variance    VarianceRanking
	PCA         *PCAResult
	Loadings    []ComponentLoadings
	RunID       string
	GeneratedAt time.Time
}

// Run executes ranking, PCA and loadings extraction in order.
func Run(t *dataset.Table, opt Options) (*Result, error) {
	log := opt.Logger
	if log == nil {
		log = logging.Discard()
	}
	log = log.WithComponent("analysis")

	started := time.Now()
	ranking, err := RankVariance(t, opt.TopVariance)
	if err != nil {
		return nil, err
	}
	log.Stage("variance", started, "features", len(ranking.All))

	started = time.Now()
	p, err := FitPCA(t, PCAOptions{Threshold: opt.Threshold, ProjectDims: 3})
	if err != nil {
		return nil, err
	}
	log.Stage("pca", started, "components", len(p.Components), "threshold_count", p.ThresholdCount)

	started = time.Now()
	loadings := ExtractLoadings(p, t.Features, opt.LoadingComponents, opt.TopLoadings)
	log.Stage("loadings", started, "components", len(loadings))

	return &Result{
		Dataset:     t,
		Variance:    ranking,
		PCA:         p,
		Loadings:    loadings,
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now(),
	}, nil
}

// Conclusion renders the threshold finding as Markdown.
func (r *Result) Conclusion() string {
	return fmt.Sprintf("Components for %.0f%% variance: **%d**  \nOriginal: **%d**  \nReduction: **%.2f%%**\n",
		r.PCA.Threshold*100, r.PCA.ThresholdCount, r.PCA.OriginalDims, r.PCA.ReductionPct)
}

// Markdown renders a compact summary of the run.
func (r *Result) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	b.WriteString(fmt.Sprintf("File: %s\n", r.Dataset.Name))
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Dataset.NumRows()))
	b.WriteString(fmt.Sprintf("Features: %d\n", r.Dataset.NumFeatures()))
	b.WriteString(fmt.Sprintf("Label: %s (%d classes)\n", r.Dataset.Label, len(r.Dataset.Classes())))

	b.WriteString("\n[VARIANCE]\n")
	for i, fv := range r.Variance.Top {
		if i == 10 {
			b.WriteString(fmt.Sprintf("- ... %d more\n", len(r.Variance.Top)-i))
			break
		}
		b.WriteString(fmt.Sprintf("- %s: %.4g\n", fv.Feature, fv.Variance))
	}

	b.WriteString("\n[PCA]\n")
	b.WriteString("| PC | Variance | Cumulative |\n| --- | --- | --- |\n")
	for i, c := range r.PCA.Components {
		if i == 10 {
			break
		}
		b.WriteString(fmt.Sprintf("| %s | %.4g | %.2f%% |\n", c.Name, c.Variance, c.Cumulative*100))
	}

	b.WriteString("\n[CONCLUSIONS]\n")
	b.WriteString(r.Conclusion())

	if len(r.Loadings) > 0 {
		b.WriteString("\n[LOADINGS]\n")
		for _, cl := range r.Loadings {
			names := make([]string, len(cl.Top))
			for i, l := range cl.Top {
				names[i] = fmt.Sprintf("%s(%.3f)", l.Feature, l.Value)
			}
			b.WriteString(fmt.Sprintf("- %s: %s\n", cl.Component, strings.Join(names, ", ")))
		}
	}
	return b.String()
}
