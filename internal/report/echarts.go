package report

import (
	"fmt"

	"github.com/KaramelBytes/pcareport/internal/analysis"
	"github.com/KaramelBytes/pcareport/internal/dataset"
)

// option is an ECharts option object, encoded to JSON as-is.
type option map[string]any

// chart is one embedded chart: a container div plus its option.
type chart struct {
	ID     string
	Height int
	Option option
}

func title(text string) option {
	return option{"text": text, "left": "center", "textStyle": option{"fontSize": 14}}
}

func varianceBar(top []analysis.FeatureVariance) option {
	names := make([]string, len(top))
	vals := make([]float64, len(top))
	for i, fv := range top {
		names[i] = fv.Feature
		vals[i] = fv.Variance
	}
	return option{
		"title":   title(fmt.Sprintf("Variance of the %d Features with the Highest Value", len(top))),
		"tooltip": option{"trigger": "axis"},
		"grid":    option{"bottom": 200, "left": 60, "right": 30},
		"xAxis": option{
			"type":      "category",
			"data":      names,
			"axisLabel": option{"rotate": 90, "interval": 0, "fontSize": 10},
		},
		"yAxis":  option{"type": "value", "name": "Variance"},
		"series": []option{{"type": "bar", "name": "Variance", "data": vals}},
	}
}

// classPoints groups rows by label, keeping first-appearance class order.
func classPoints(t *dataset.Table, coords func(i int) []float64) ([]string, map[string][][]float64) {
	classes := t.Classes()
	pts := make(map[string][][]float64, len(classes))
	for i, l := range t.Labels {
		pts[l] = append(pts[l], coords(i))
	}
	return classes, pts
}

func scatter3D(t *dataset.Table, axes []string, coords func(i int) []float64, heading string) option {
	classes, pts := classPoints(t, coords)
	series := make([]option, 0, len(classes))
	for _, c := range classes {
		series = append(series, option{
			"type":       "scatter3D",
			"name":       c,
			"data":       pts[c],
			"symbolSize": 3,
		})
	}
	return option{
		"title":   title(heading),
		"tooltip": option{},
		"legend":  option{"data": classes, "top": 28, "type": "scroll"},
		"grid3D":  option{"viewControl": option{"projection": "perspective"}},
		"xAxis3D": option{"type": "value", "name": axes[0]},
		"yAxis3D": option{"type": "value", "name": axes[1]},
		"zAxis3D": option{"type": "value", "name": axes[2]},
		"series":  series,
	}
}

func scatter2D(t *dataset.Table, axes []string, coords func(i int) []float64, heading string) option {
	classes, pts := classPoints(t, coords)
	series := make([]option, 0, len(classes))
	for _, c := range classes {
		series = append(series, option{
			"type":       "scatter",
			"name":       c,
			"data":       pts[c],
			"symbolSize": 5,
		})
	}
	return option{
		"title":   title(heading),
		"tooltip": option{"trigger": "item"},
		"legend":  option{"data": classes, "top": 28, "type": "scroll"},
		"xAxis":   option{"type": "value", "name": axes[0], "scale": true},
		"yAxis":   option{"type": "value", "name": axes[1], "scale": true},
		"series":  series,
	}
}

func screePlot(comps []analysis.Component) option {
	names := make([]string, len(comps))
	vars := make([]float64, len(comps))
	cum := make([]float64, len(comps))
	for i, c := range comps {
		names[i] = c.Name
		vars[i] = c.Variance
		cum[i] = c.Cumulative * 100
	}
	return option{
		"title":   title("Explained Variance per Principal Component"),
		"tooltip": option{"trigger": "axis"},
		"legend":  option{"data": []string{"Variance", "Cumulative"}, "top": 28},
		"xAxis":   option{"type": "category", "data": names},
		"yAxis": []option{
			{"type": "value", "name": "Variance"},
			{"type": "value", "name": "Cumulative %", "min": 0, "max": 100, "position": "right",
				"axisLabel": option{"formatter": "{value}%"}, "splitLine": option{"show": false}},
		},
		"series": []option{
			{"type": "bar", "name": "Variance", "data": vars},
			{"type": "line", "name": "Cumulative", "yAxisIndex": 1, "data": cum, "showSymbol": true},
		},
	}
}

func loadingsBar(cl analysis.ComponentLoadings) option {
	names := make([]string, len(cl.Top))
	vals := make([]float64, len(cl.Top))
	for i, l := range cl.Top {
		names[i] = l.Feature
		vals[i] = l.Value
	}
	return option{
		"title":   title(fmt.Sprintf("Top %d Features for %s", len(cl.Top), cl.Component)),
		"tooltip": option{"trigger": "axis"},
		"grid":    option{"bottom": 140, "left": 60, "right": 30},
		"xAxis": option{
			"type":      "category",
			"data":      names,
			"axisLabel": option{"rotate": 45, "interval": 0, "fontSize": 10},
		},
		"yAxis":  option{"type": "value", "name": "Value"},
		"series": []option{{"type": "bar", "name": "Value", "data": vals}},
	}
}
