// Package report renders an analysis result as a single HTML document.
package report

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"

	"github.com/KaramelBytes/pcareport/internal/analysis"
	"github.com/KaramelBytes/pcareport/internal/logging"
	"github.com/dustin/go-humanize"
	"github.com/gomarkdown/markdown"
)

// Script sources for the chart runtime; referenced once in <head>.
const (
	EChartsURL   = "https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"
	EChartsGLURL = "https://cdn.jsdelivr.net/npm/echarts-gl@2.0.9/dist/echarts-gl.min.js"
)

//go:embed templates/report.html
var reportTemplate string

var pageTemplate = template.Must(template.New("report").Parse(reportTemplate))

// page is the data handed to the report template.
type page struct {
	Title        string
	DatasetTitle string
	EChartsURL   string
	EChartsGLURL string
	DatasetName  string
	Samples      string
	Classes      int
	RunID        string
	GeneratedAt  string
	Sections     []section
	ChartOptions template.JS
}

type section struct {
	ID      string
	Heading string
	Blocks  []block
}

// block is one item inside a section; exactly one field is set.
type block struct {
	Text  string
	Note  string
	Chart *chart
	HTML  template.HTML
}

// SectionIDs lists the report sections in the order they are written.
var SectionIDs = []string{"variance", "scatter-raw", "scree", "conclusions", "projection", "loadings"}

// WriteError indicates the report could not be written to disk.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write report %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// HTMLReporter generates the HTML report from an analysis result
type HTMLReporter struct {
	Title        string
	DatasetTitle string
	logger       *logging.Logger
	charts       []chart
}

// NewHTMLReporter creates a new HTML report generator
func NewHTMLReporter(title, datasetTitle string, logger *logging.Logger) *HTMLReporter {
	if logger == nil {
		logger = logging.Discard()
	}
	return &HTMLReporter{
		Title:        title,
		DatasetTitle: datasetTitle,
		logger:       logger.WithComponent("report"),
	}
}

// Generate renders the report and writes it to path, replacing any existing file.
func (r *HTMLReporter) Generate(res *analysis.Result, path string) error {
	var buf bytes.Buffer
	if err := r.Render(&buf, res); err != nil {
		return err
	}
	r.logger.FileOperation("write", path)
	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return &WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	r.logger.Info("HTML report saved", "path", path, "bytes", buf.Len())
	return nil
}

// Render writes the full document to w.
func (r *HTMLReporter) Render(w io.Writer, res *analysis.Result) error {
	r.charts = nil
	data := page{
		Title:        r.Title,
		DatasetTitle: r.DatasetTitle,
		EChartsURL:   EChartsURL,
		EChartsGLURL: EChartsGLURL,
		DatasetName:  res.Dataset.Name,
		Samples:      humanize.Comma(int64(res.Dataset.NumRows())),
		Classes:      len(res.Dataset.Classes()),
		RunID:        res.RunID,
		GeneratedAt:  res.GeneratedAt.UTC().Format("2006-01-02 15:04:05 MST"),
		Sections: []section{
			r.varianceSection(res),
			r.rawScatterSection(res),
			r.screeSection(res),
			r.conclusionsSection(res),
			r.projectionSection(res),
			r.loadingsSection(res),
		},
	}
	if len(r.charts) > 0 {
		opts := make(map[string]option, len(r.charts))
		for _, c := range r.charts {
			opts[c.ID] = c.Option
		}
		raw, err := json.Marshal(opts)
		if err != nil {
			return fmt.Errorf("encode chart options: %w", err)
		}
		data.ChartOptions = template.JS(raw)
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("execute report template: %w", err)
	}
	return nil
}

func (r *HTMLReporter) chartBlock(height int, opt option) block {
	c := chart{ID: fmt.Sprintf("chart-%d", len(r.charts)+1), Height: height, Option: opt}
	r.charts = append(r.charts, c)
	return block{Chart: &c}
}

func (r *HTMLReporter) varianceSection(res *analysis.Result) section {
	return section{ID: "variance", Heading: "Variance Analysis", Blocks: []block{
		{Text: humanize.Comma(int64(res.Dataset.NumFeatures())) + " features"},
		r.chartBlock(500, varianceBar(res.Variance.Top)),
	}}
}

func (r *HTMLReporter) rawScatterSection(res *analysis.Result) section {
	s := section{ID: "scatter-raw", Heading: "3D Visualization of the Highest-Variance Features"}
	top := res.Variance.Top3
	s.Blocks = append(s.Blocks, block{Text: "Features: " + strings.Join(top, ", ")})
	if len(top) < 3 {
		s.Blocks = append(s.Blocks, block{Note: "A 3D view needs at least 3 features."})
		return s
	}
	idx := make([]int, 3)
	for k, name := range top {
		idx[k] = res.Dataset.FeatureIndex(name)
	}
	rows := res.Dataset.Rows
	coords := func(i int) []float64 {
		return []float64{rows[i][idx[0]], rows[i][idx[1]], rows[i][idx[2]]}
	}
	s.Blocks = append(s.Blocks, r.chartBlock(700, scatter3D(res.Dataset, top, coords, "Top-3 Variance Features by "+res.Dataset.Label)))
	return s
}

func (r *HTMLReporter) screeSection(res *analysis.Result) section {
	return section{ID: "scree", Heading: "Principal Component Analysis", Blocks: []block{
		{Text: fmt.Sprintf("%d components fitted on the standardized features.", len(res.PCA.Components))},
		r.chartBlock(500, screePlot(res.PCA.Components)),
	}}
}

func (r *HTMLReporter) conclusionsSection(res *analysis.Result) section {
	// Conclusion text is generated from numbers only, never from dataset cells.
	body := template.HTML(markdown.ToHTML([]byte(res.Conclusion()), nil, nil))
	return section{ID: "conclusions", Heading: "Conclusions", Blocks: []block{{HTML: body}}}
}

func (r *HTMLReporter) projectionSection(res *analysis.Result) section {
	s := section{ID: "projection", Heading: "PCA Projection in 2D and 3D"}
	p := res.PCA
	axes := p.ComponentNames()
	coords := func(i int) []float64 { return p.Scores[i] }
	if p.ScoreDims >= 2 {
		s.Blocks = append(s.Blocks, r.chartBlock(600, scatter2D(res.Dataset, axes, coords, "2D Projection onto the Principal Component Space")))
	} else {
		s.Blocks = append(s.Blocks, block{Note: "A 2D projection needs at least 2 components."})
	}
	if p.ScoreDims >= 3 {
		s.Blocks = append(s.Blocks, r.chartBlock(700, scatter3D(res.Dataset, axes, coords, "3D Projection onto the Principal Component Space")))
	} else {
		s.Blocks = append(s.Blocks, block{Note: "A 3D projection needs at least 3 components."})
	}
	return s
}

func (r *HTMLReporter) loadingsSection(res *analysis.Result) section {
	s := section{ID: "loadings", Heading: "Loadings Analysis"}
	for _, cl := range res.Loadings {
		s.Blocks = append(s.Blocks, r.chartBlock(400, loadingsBar(cl)))
	}
	return s
}
