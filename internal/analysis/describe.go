package analysis

import (
	"math"

	"github.com/go-gota/gota/series"
)

// Summary is the descriptive profile of one numeric column. Statistics are
// NaN when the column has no values; Std needs at least two.
type Summary struct {
	Column   string  `json:"column"`
	Count    int     `json:"count"`
	Missing  int     `json:"missing"`
	Mean     float64 `json:"mean"`
	Std      float64 `json:"std"`
	Min      float64 `json:"min"`
	Q1       float64 `json:"q1"`
	Median   float64 `json:"median"`
	Q3       float64 `json:"q3"`
	Max      float64 `json:"max"`
	IQR      float64 `json:"iqr"`
	Outliers int     `json:"outliers"`
}

// LowerFence and UpperFence bound the box plot whiskers at 1.5 IQR.
func (s Summary) LowerFence() float64 { return s.Q1 - 1.5*s.IQR }

func (s Summary) UpperFence() float64 { return s.Q3 + 1.5*s.IQR }

// Describe profiles a numeric column. Missing values are counted and
// excluded. Quartiles interpolate linearly between order statistics, as box
// plots do.
func Describe(f *Frame, col string) (Summary, error) {
	all, err := f.Numeric(col)
	if err != nil {
		return Summary{}, err
	}
	values, _ := f.Values(col)

	nan := math.NaN()
	s := Summary{
		Column:  col,
		Count:   len(values),
		Missing: len(all) - len(values),
		Mean:    nan, Std: nan, Min: nan, Q1: nan, Median: nan, Q3: nan, Max: nan, IQR: nan,
	}
	if len(values) == 0 {
		return s, nil
	}

	sr := series.Floats(values)
	sr.Name = col
	s.Mean = sr.Mean()
	if len(values) > 1 {
		s.Std = sr.StdDev()
	}
	s.Min = sr.Min()
	s.Max = sr.Max()
	s.Median = sr.Median()

	sorted := sortedCopy(values)
	s.Q1 = quantile(sorted, 0.25)
	s.Q3 = quantile(sorted, 0.75)
	s.IQR = s.Q3 - s.Q1

	lo, hi := s.LowerFence(), s.UpperFence()
	for _, v := range values {
		if v < lo || v > hi {
			s.Outliers++
		}
	}
	return s, nil
}

// quantile interpolates linearly on sorted, non-empty values.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
