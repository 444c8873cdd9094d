package analysis

import (
	"fmt"
	"sort"

	"github.com/KaramelBytes/pcareport/internal/dataset"
	"github.com/montanaflynn/stats"
)

// FeatureVariance is one entry of a variance ranking.
type FeatureVariance struct {
	Feature  string
	Index    int // column position in the source table
	Variance float64
}

// VarianceRanking lists features by descending sample variance.
type VarianceRanking struct {
	All  []FeatureVariance
	Top  []FeatureVariance
	Top3 []string
}

// RankVariance computes the sample variance (n-1) of every feature column and
// sorts descending. Ties keep the original column order. Top holds the first
// topK entries, or all of them when there are fewer.
func RankVariance(t *dataset.Table, topK int) (VarianceRanking, error) {
	all := make([]FeatureVariance, 0, t.NumFeatures())
	for j, name := range t.Features {
		v, err := stats.SampleVariance(stats.Float64Data(t.Column(j)))
		if err != nil {
			return VarianceRanking{}, fmt.Errorf("variance of %q: %w", name, err)
		}
		all = append(all, FeatureVariance{Feature: name, Index: j, Variance: v})
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Variance > all[j].Variance })

	r := VarianceRanking{All: all}
	r.Top = all[:clampCount(topK, len(all))]
	for _, fv := range all[:clampCount(3, len(all))] {
		r.Top3 = append(r.Top3, fv.Feature)
	}
	return r, nil
}

func clampCount(want, have int) int {
	if want < 0 {
		return 0
	}
	if want > have {
		return have
	}
	return want
}
