package analysis

import (
	"sort"
)

// OtherCategory collects the categories beyond the top N.
const OtherCategory = "Other"

// CategoryCount is one bar of a categorical distribution.
type CategoryCount struct {
	Value   string  `json:"value"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// CategoryCounts counts the non-missing labels of a column, most frequent
// first (ties by label). With topN > 0 and more categories than that, the
// rest are summed into an "Other" bucket. Percentages are of non-missing rows.
func CategoryCounts(f *Frame, col string, topN int) ([]CategoryCount, error) {
	labels, err := f.Categorical(col)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	total := 0
	for _, l := range labels {
		if l == "" {
			continue
		}
		counts[l]++
		total++
	}

	out := make([]CategoryCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, CategoryCount{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})

	if topN > 0 && len(out) > topN {
		other := CategoryCount{Value: OtherCategory}
		for _, c := range out[topN:] {
			other.Count += c.Count
		}
		out = append(out[:topN], other)
	}

	for i := range out {
		out[i].Percent = float64(out[i].Count) / float64(total) * 100
	}
	return out, nil
}
