package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/pcareport/internal/analysis"
	charts "github.com/vicanso/go-charts/v2"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var scatterPalette = []string{"1f77b4", "ff7f0e", "2ca02c", "d62728", "9467bd", "8c564b", "e377c2", "7f7f7f", "bcbd22", "17becf"}

// ExportStaticCharts writes SVG snapshots of the main charts into dir and
// returns the written paths. The directory is created when missing.
func ExportStaticCharts(res *analysis.Result, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &WriteError{Path: dir, Err: err}
	}
	var written []string
	save := func(name string, svg []byte) error {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, svg, 0o644); err != nil {
			return &WriteError{Path: p, Err: err}
		}
		written = append(written, p)
		return nil
	}

	svg, err := barSVG("Top Feature Variance", res.Variance.Top, func(fv analysis.FeatureVariance) (string, float64) {
		return fv.Feature, fv.Variance
	})
	if err != nil {
		return written, fmt.Errorf("variance chart: %w", err)
	}
	if err := save("variance.svg", svg); err != nil {
		return written, err
	}

	svg, err = screeSVG(res.PCA.Components)
	if err != nil {
		return written, fmt.Errorf("scree chart: %w", err)
	}
	if err := save("scree.svg", svg); err != nil {
		return written, err
	}

	if res.PCA.ScoreDims >= 2 {
		svg, err = scoreScatterSVG(res)
		if err != nil {
			return written, fmt.Errorf("score scatter: %w", err)
		}
		if err := save("pc_scatter.svg", svg); err != nil {
			return written, err
		}
	}

	for _, cl := range res.Loadings {
		svg, err := barSVG("Top Features for "+cl.Component, cl.Top, func(l analysis.Loading) (string, float64) {
			return l.Feature, l.Value
		})
		if err != nil {
			return written, fmt.Errorf("loadings chart %s: %w", cl.Component, err)
		}
		if err := save("loadings_"+strings.ToLower(cl.Component)+".svg", svg); err != nil {
			return written, err
		}
	}
	return written, nil
}

func barSVG[T any](heading string, items []T, pick func(T) (string, float64)) ([]byte, error) {
	labels := make([]string, len(items))
	vals := make([]float64, len(items))
	for i, it := range items {
		labels[i], vals[i] = pick(it)
	}
	p, err := charts.BarRender(
		[][]float64{vals},
		charts.SVGTypeOption(),
		charts.TitleTextOptionFunc(heading),
		charts.XAxisDataOptionFunc(labels),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(500),
		charts.PaddingOptionFunc(charts.Box{Top: 20, Right: 20, Bottom: 20, Left: 20}),
	)
	if err != nil {
		return nil, err
	}
	return p.Bytes()
}

func screeSVG(comps []analysis.Component) ([]byte, error) {
	labels := make([]string, len(comps))
	vars := make([]float64, len(comps))
	cum := make([]float64, len(comps))
	for i, c := range comps {
		labels[i] = c.Name
		vars[i] = c.Variance
		cum[i] = c.Cumulative * 100
	}
	p, err := charts.LineRender(
		[][]float64{vars, cum},
		charts.SVGTypeOption(),
		charts.TitleTextOptionFunc("Explained Variance"),
		charts.XAxisDataOptionFunc(labels),
		charts.LegendLabelsOptionFunc([]string{"Variance", "Cumulative %"}, charts.PositionRight),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(500),
		charts.PaddingOptionFunc(charts.Box{Top: 20, Right: 20, Bottom: 20, Left: 20}),
	)
	if err != nil {
		return nil, err
	}
	return p.Bytes()
}

func scoreScatterSVG(res *analysis.Result) ([]byte, error) {
	classes := res.Dataset.Classes()
	xs := make(map[string][]float64, len(classes))
	ys := make(map[string][]float64, len(classes))
	for i, l := range res.Dataset.Labels {
		xs[l] = append(xs[l], res.PCA.Scores[i][0])
		ys[l] = append(ys[l], res.PCA.Scores[i][1])
	}
	series := make([]gochart.Series, 0, len(classes))
	for i, c := range classes {
		series = append(series, gochart.ContinuousSeries{
			Name:    c,
			XValues: xs[c],
			YValues: ys[c],
			Style: gochart.Style{
				StrokeWidth: gochart.Disabled,
				DotWidth:    3,
				DotColor:    drawing.ColorFromHex(scatterPalette[i%len(scatterPalette)]),
			},
		})
	}
	graph := gochart.Chart{
		Title:  "PC1 vs PC2",
		Width:  900,
		Height: 600,
		XAxis:  gochart.XAxis{Name: "PC1"},
		YAxis:  gochart.YAxis{Name: "PC2"},
		Series: series,
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}
	var buf bytes.Buffer
	if err := graph.Render(gochart.SVG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
