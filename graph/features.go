package graph

import (
	"sort"
)

// collectFeatureInfo counts nodes per feature and assigns each feature a
// palette color. Features are ordered by count (descending) then name, so the
// same snapshot always yields the same colors.
func collectFeatureInfo(nodes []*Node) []FeatureInfo {
	counts := make(map[string]int)
	for _, n := range nodes {
		counts[n.Feature]++
	}

	features := make([]FeatureInfo, 0, len(counts))
	for feature, count := range counts {
		features = append(features, FeatureInfo{Feature: feature, Count: count})
	}

	sort.Slice(features, func(i, j int) bool {
		if features[i].Count != features[j].Count {
			return features[i].Count > features[j].Count
		}
		return features[i].Feature < features[j].Feature
	})

	next := 0
	for i := range features {
		if features[i].Feature == "" {
			features[i].Label = defaultUntypedLabel
			features[i].Color = defaultUntypedColor
			continue
		}
		features[i].Label = features[i].Feature
		features[i].Color = featurePalette[next%len(featurePalette)]
		next++
	}

	return features
}

// FeatureColor returns the color assigned to feature on load.
func (m Meta) FeatureColor(feature string) (string, bool) {
	for _, f := range m.Features {
		if f.Feature == feature {
			return f.Color, true
		}
	}
	return "", false
}
