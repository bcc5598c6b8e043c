package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/series"

	apperrors "github.com/tommurray222/candid-hospitality/internal/errors"
)

// Supported grouped statistics.
const (
	StatMean   = "mean"
	StatMedian = "median"
	StatMode   = "mode"
)

// GroupValue is the statistic for one group.
type GroupValue struct {
	Group string  `json:"group"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// GroupedStat computes stat (mean, median or mode) of numericCol per label
// of groupCol. Rows missing either value are skipped. Groups are sorted by
// label. The mode is the smallest of the most frequent values.
func GroupedStat(f *Frame, numericCol, groupCol, stat string) ([]GroupValue, error) {
	var agg func([]float64) float64
	switch stat {
	case StatMean:
		agg = func(v []float64) float64 { return series.Floats(v).Mean() }
	case StatMedian:
		agg = func(v []float64) float64 { return series.Floats(v).Median() }
	case StatMode:
		agg = mode
	default:
		return nil, apperrors.NewAppValidationError(
			fmt.Sprintf("invalid stat %q, choose from %s, %s, %s", stat, StatMean, StatMedian, StatMode)).
			WithContext("stat", stat)
	}

	values, err := f.Numeric(numericCol)
	if err != nil {
		return nil, err
	}
	groups, err := f.Categorical(groupCol)
	if err != nil {
		return nil, err
	}

	byGroup := make(map[string][]float64)
	for i, g := range groups {
		if g == "" || math.IsNaN(values[i]) {
			continue
		}
		byGroup[g] = append(byGroup[g], values[i])
	}

	out := make([]GroupValue, 0, len(byGroup))
	for g, v := range byGroup {
		out = append(out, GroupValue{Group: g, Value: agg(v), Count: len(v)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Group < out[j].Group })
	return out, nil
}

func mode(values []float64) float64 {
	counts := make(map[float64]int, len(values))
	best, bestN := math.NaN(), 0
	for _, v := range values {
		counts[v]++
	}
	for v, n := range counts {
		if n > bestN || (n == bestN && v < best) {
			best, bestN = v, n
		}
	}
	return best
}
