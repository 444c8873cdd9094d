package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/KaramelBytes/pcareport/internal/analysis"
	"github.com/KaramelBytes/pcareport/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult(t *testing.T) *analysis.Result {
	t.Helper()
	tbl := &dataset.Table{
		Name:     "train.csv",
		Features: []string{"acc-x", "acc-y", "gyro-z", "angle<t>", "energy"},
		Label:    "Activity",
		Labels:   []string{"WALKING", "LAYING", "WALKING", "LAYING", "WALKING", "LAYING", "WALKING", "LAYING", "WALKING", "LAYING"},
		Rows: [][]float64{
			{0.28, -0.02, 0.11, 1.2, 9.1},
			{0.27, -0.01, 0.35, 0.7, 8.7},
			{0.29, -0.03, 0.02, 1.9, 9.9},
			{0.31, 0.01, 0.44, 0.2, 7.2},
			{0.22, -0.05, 0.19, 1.4, 9.4},
			{0.26, 0.02, 0.51, 0.1, 6.8},
			{0.30, -0.04, 0.07, 1.7, 9.6},
			{0.25, 0.03, 0.39, 0.5, 7.9},
			{0.33, -0.06, 0.15, 1.1, 8.8},
			{0.24, 0.00, 0.47, 0.3, 7.0},
		},
	}
	res, err := analysis.Run(tbl, analysis.DefaultOptions())
	require.NoError(t, err)
	return res
}

func TestGenerateWritesSixSectionsInOrder(t *testing.T) {
	res := sampleResult(t)
	out := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, os.WriteFile(out, []byte("stale"), 0o644))

	r := NewHTMLReporter("Variance and PCA", "Sensors", nil)
	require.NoError(t, r.Generate(res, out))

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	doc := string(b)
	assert.False(t, strings.Contains(doc, "stale"))
	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Equal(t, 6, strings.Count(doc, `class="section"`))

	last := -1
	for _, id := range SectionIDs {
		pos := strings.Index(doc, `id="`+id+`"`)
		require.GreaterOrEqual(t, pos, 0, "missing section %s", id)
		assert.Greater(t, pos, last, "section %s out of order", id)
		last = pos
	}

	assert.Equal(t, 1, strings.Count(doc, EChartsURL), "chart runtime is loaded once")
	assert.Contains(t, doc, "<p>5 features</p>")
	assert.Contains(t, doc, "10 samples")
	assert.Contains(t, doc, "angle&lt;t&gt;")
	assert.Contains(t, doc, res.RunID)
	assert.Contains(t, doc, "Original: <strong>5</strong>")
	assert.Contains(t, doc, "Reduction:")
}

func TestRenderChartOptions(t *testing.T) {
	res := sampleResult(t)
	r := NewHTMLReporter("T", "D", nil)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, res))

	// variance, raw 3D, scree, 2D, PCA 3D, three loadings
	require.Len(t, r.charts, 8)
	m := regexp.MustCompile(`const chartOptions = (.*);\n`).FindStringSubmatch(buf.String())
	require.Len(t, m, 2)
	var opts map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(m[1]), &opts))
	assert.Len(t, opts, 8)

	series := opts["chart-2"]["series"].([]any)
	assert.Len(t, series, 2, "one 3D series per class")
	assert.Equal(t, "scatter3D", series[0].(map[string]any)["type"])

	scree := opts["chart-3"]["series"].([]any)
	line := scree[1].(map[string]any)
	cum := line["data"].([]any)
	assert.InDelta(t, 100.0, cum[len(cum)-1].(float64), 1e-9)

	for i, c := range r.charts[5:] {
		assert.Contains(t, c.Option["title"].(option)["text"], []string{"PC1", "PC2", "PC3"}[i])
	}
}

func TestRenderNotesWhenDimensionsAreMissing(t *testing.T) {
	tbl := &dataset.Table{
		Name:     "tiny.csv",
		Features: []string{"a", "b"},
		Label:    "Activity",
		Labels:   []string{"x", "y", "x", "y"},
		Rows:     [][]float64{{1, 4}, {2, 1}, {4, 3}, {3, 3}},
	}
	res, err := analysis.Run(tbl, analysis.DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	r := NewHTMLReporter("T", "D", nil)
	require.NoError(t, r.Render(&buf, res))
	doc := buf.String()
	assert.Contains(t, doc, "A 3D view needs at least 3 features.")
	assert.Contains(t, doc, "A 3D projection needs at least 3 components.")
	assert.Equal(t, 6, strings.Count(doc, `class="section"`))
}

func TestGenerateWriteError(t *testing.T) {
	res := sampleResult(t)
	out := filepath.Join(t.TempDir(), "missing-dir", "report.html")
	err := NewHTMLReporter("T", "D", nil).Generate(res, out)
	var we *WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, out, we.Path)
}

func TestExportStaticCharts(t *testing.T) {
	res := sampleResult(t)
	dir := filepath.Join(t.TempDir(), "charts")
	paths, err := ExportStaticCharts(res, dir)
	require.NoError(t, err)

	var names []string
	for _, p := range paths {
		names = append(names, filepath.Base(p))
		b, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Contains(t, string(b), "<svg", p)
	}
	assert.Equal(t, []string{
		"variance.svg", "scree.svg", "pc_scatter.svg",
		"loadings_pc1.svg", "loadings_pc2.svg", "loadings_pc3.svg",
	}, names)
}

func TestRenderEscapesUserText(t *testing.T) {
	res := sampleResult(t)
	var buf bytes.Buffer
	r := NewHTMLReporter(`PCA <script>alert(1)</script>`, `Sensors & "friends"`, nil)
	require.NoError(t, r.Render(&buf, res))
	doc := buf.String()

	assert.NotContains(t, doc, "<script>alert(1)</script>")
	assert.Contains(t, doc, "<h1>PCA &lt;script&gt;alert(1)&lt;/script&gt;</h1>")
	assert.Contains(t, doc, "Sensors &amp; &#34;friends&#34;")
	assert.Contains(t, doc, `style="height:500px"`)
}
