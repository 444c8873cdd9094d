package analysis

import (
	"fmt"
	"math"
	"sort"
)

// Loading is one feature's weight in a component.
type Loading struct {
	Feature string
	// Value is the absolute loading; it is what the report displays.
	Value  float64
	Signed float64
}

// ComponentLoadings lists the strongest contributors to one component.
type ComponentLoadings struct {
	Component string
	Top       []Loading
}

// ExtractLoadings ranks features by |loading| for the first `components`
// components and keeps the topN of each. Ties keep feature order.
func ExtractLoadings(p *PCAResult, features []string, components, topN int) []ComponentLoadings {
	n := clampCount(components, len(p.Components))
	out := make([]ComponentLoadings, 0, n)
	for c := 0; c < n; c++ {
		vec := p.Components[c].Vector
		ls := make([]Loading, len(features))
		for j, f := range features {
			ls[j] = Loading{Feature: f, Value: math.Abs(vec[j]), Signed: vec[j]}
		}
		sort.SliceStable(ls, func(a, b int) bool { return ls[a].Value > ls[b].Value })
		out = append(out, ComponentLoadings{
			Component: fmt.Sprintf("PC%d", c+1),
			Top:       ls[:clampCount(topN, len(ls))],
		})
	}
	return out
}
