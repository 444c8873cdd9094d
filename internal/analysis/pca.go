package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/KaramelBytes/pcareport/internal/dataset"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrZeroVariance marks a feature that cannot be standardized.
	ErrZeroVariance = errors.New("zero variance")
	// ErrNegativeEigenvalue marks a decomposition that violates non-negativity.
	ErrNegativeEigenvalue = errors.New("negative explained variance")
	// ErrDecomposition is returned when the SVD behind the fit does not converge.
	ErrDecomposition = errors.New("principal component decomposition failed")
)

// ZeroVarianceError names the feature whose standard deviation is zero or not finite.
type ZeroVarianceError struct {
	Feature string
	StdDev  float64
}

func (e *ZeroVarianceError) Error() string {
	return fmt.Sprintf("standardize %q: std dev %g: %v", e.Feature, e.StdDev, ErrZeroVariance)
}

func (e *ZeroVarianceError) Unwrap() error { return ErrZeroVariance }

// PCAOptions tunes the fit.
type PCAOptions struct {
	// Threshold is the cumulative explained-variance fraction to reach.
	Threshold float64
	// ProjectDims is the number of components kept in Scores.
	ProjectDims int
}

// DefaultPCAOptions returns the 95% threshold with a 3D projection.
func DefaultPCAOptions() PCAOptions {
	return PCAOptions{Threshold: 0.95, ProjectDims: 3}
}

// Component is one principal axis.
type Component struct {
	Name       string
	Variance   float64
	Fraction   float64
	Cumulative float64
	// Vector holds the loading of every original feature, in table order.
	Vector []float64
}

// PCAResult is the outcome of a fit on the standardized table.
type PCAResult struct {
	Components     []Component
	Threshold      float64
	ThresholdCount int
	OriginalDims   int
	ReductionPct   float64
	// Scores[i] holds sample i projected onto the first ScoreDims components.
	Scores    [][]float64
	ScoreDims int
}

// Standardize rescales every column to zero mean and unit sample variance.
func Standardize(t *dataset.Table) (*mat.Dense, error) {
	n, d := t.NumRows(), t.NumFeatures()
	z := mat.NewDense(n, d, nil)
	for j := 0; j < d; j++ {
		col := t.Column(j)
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 || math.IsNaN(std) || math.IsInf(std, 0) {
			return nil, &ZeroVarianceError{Feature: t.Features[j], StdDev: std}
		}
		for i, v := range col {
			z.Set(i, j, (v-mean)/std)
		}
	}
	return z, nil
}

// FitPCA standardizes the table and fits a full-rank decomposition with
// min(rows, features) components. The same fit yields both the variance table
// and the sample projection.
func FitPCA(t *dataset.Table, opt PCAOptions) (*PCAResult, error) {
	if opt.Threshold <= 0 || opt.Threshold > 1 {
		opt.Threshold = DefaultPCAOptions().Threshold
	}
	if opt.ProjectDims <= 0 {
		opt.ProjectDims = DefaultPCAOptions().ProjectDims
	}
	z, err := Standardize(t)
	if err != nil {
		return nil, err
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(z, nil); !ok {
		return nil, ErrDecomposition
	}
	vars := pc.VarsTo(nil)
	var vecs mat.Dense
	pc.VectorsTo(&vecs)

	for i, v := range vars {
		if v < 0 {
			return nil, fmt.Errorf("component %d: %g: %w", i+1, v, ErrNegativeEigenvalue)
		}
	}

	k := len(vars)
	d := t.NumFeatures()
	res := &PCAResult{
		Components:   make([]Component, k),
		Threshold:    opt.Threshold,
		OriginalDims: d,
	}
	cum := cumulativeFractions(vars)
	for i := range vars {
		c := Component{
			Name:       fmt.Sprintf("PC-%d", i+1),
			Variance:   vars[i],
			Cumulative: cum[i],
			Vector:     mat.Col(nil, i, &vecs),
		}
		if i == 0 {
			c.Fraction = cum[0]
		} else {
			c.Fraction = cum[i] - cum[i-1]
		}
		res.Components[i] = c
	}
	res.ThresholdCount = thresholdCount(cum, opt.Threshold)
	res.ReductionPct = (1 - float64(res.ThresholdCount)/float64(d)) * 100

	res.ScoreDims = clampCount(opt.ProjectDims, k)
	if res.ScoreDims > 0 {
		var proj mat.Dense
		proj.Mul(z, vecs.Slice(0, d, 0, res.ScoreDims))
		res.Scores = make([][]float64, t.NumRows())
		for i := range res.Scores {
			res.Scores[i] = mat.Row(nil, i, &proj)
		}
	}
	return res, nil
}

// cumulativeFractions divides the running sum by the final running sum so the
// last value is exactly 1.
func cumulativeFractions(vars []float64) []float64 {
	out := make([]float64, len(vars))
	var run float64
	for i, v := range vars {
		run += v
		out[i] = run
	}
	if len(out) == 0 || run == 0 {
		return out
	}
	for i := range out {
		out[i] /= run
	}
	return out
}

// thresholdCount returns the smallest 1-based count whose cumulative fraction
// reaches thr, or len(cum) when none does.
func thresholdCount(cum []float64, thr float64) int {
	for i, c := range cum {
		if c >= thr {
			return i + 1
		}
	}
	return len(cum)
}

// ComponentNames returns the short axis names used on score plots.
func (p *PCAResult) ComponentNames() []string {
	out := make([]string, p.ScoreDims)
	for i := range out {
		out[i] = fmt.Sprintf("PC%d", i+1)
	}
	return out
}
