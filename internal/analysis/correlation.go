package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Matrix is a symmetric correlation matrix. N holds the number of rows where
// both columns had values.
type Matrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
	N       [][]int     `json:"n"`
}

// At returns the coefficient for two columns, or NaN if either is absent.
func (m Matrix) At(a, b string) float64 {
	i, j := -1, -1
	for k, c := range m.Columns {
		if c == a {
			i = k
		}
		if c == b {
			j = k
		}
	}
	if i < 0 || j < 0 {
		return math.NaN()
	}
	return m.Values[i][j]
}

// Correlation computes pairwise-complete Pearson coefficients between
// numeric columns. A pair with fewer than two shared rows or no variance
// gets NaN.
func Correlation(f *Frame, cols ...string) (Matrix, error) {
	data := make([][]float64, len(cols))
	for i, c := range cols {
		v, err := f.Numeric(c)
		if err != nil {
			return Matrix{}, err
		}
		data[i] = v
	}

	m := Matrix{
		Columns: append([]string(nil), cols...),
		Values:  make([][]float64, len(cols)),
		N:       make([][]int, len(cols)),
	}
	for i := range cols {
		m.Values[i] = make([]float64, len(cols))
		m.N[i] = make([]int, len(cols))
	}

	for i := range cols {
		for j := i; j < len(cols); j++ {
			r, n := pearson(data[i], data[j])
			m.Values[i][j], m.Values[j][i] = r, r
			m.N[i][j], m.N[j][i] = n, n
		}
	}
	return m, nil
}

func pearson(a, b []float64) (float64, int) {
	x := make([]float64, 0, len(a))
	y := make([]float64, 0, len(b))
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		x = append(x, a[i])
		y = append(y, b[i])
	}
	if len(x) < 2 || stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return math.NaN(), len(x)
	}
	return stat.Correlation(x, y, nil), len(x)
}
