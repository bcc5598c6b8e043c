package analysis

import (
	"fmt"
	"math"

	apperrors "github.com/tommurray222/candid-hospitality/internal/errors"
)

// Bin is one histogram bucket. Lower is inclusive; Upper is exclusive except
// for the last bin.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Label renders the bin range for charts.
func (b Bin) Label() string {
	return fmt.Sprintf("%.4g-%.4g", b.Lower, b.Upper)
}

// Histogram counts the non-missing values of a numeric column into bins of
// equal width spanning [min, max]. A constant column spans [v-0.5, v+0.5].
// A column without values yields no bins.
func Histogram(f *Frame, col string, bins int) ([]Bin, error) {
	if bins < 1 {
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("bins must be positive, got %d", bins))
	}
	values, err := f.Values(col)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	width := (hi - lo) / float64(bins)

	out := make([]Bin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi

	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out, nil
}
