package clustering

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/tommurray222/candid-hospitality/internal/analysis"
)

// CultureScale is the largest value of a culture code component.
const CultureScale = 9

// Columns added by the normalisation helpers.
const (
	ColNormalisedSalary = "normalised_salary"
	ColNormalisedAges   = "normalised_ages"
)

// NormalisedName returns the column NormaliseCultureComponent adds for col.
func NormalisedName(col string) string {
	return "normalised_" + col
}

// NormaliseCultureComponent adds normalised_<col> holding col/9. Missing
// components stay missing.
func NormaliseCultureComponent(f *analysis.Frame, col string) error {
	values, err := f.Numeric(col)
	if err != nil {
		return err
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v / CultureScale
	}
	f.AddRawNumeric(NormalisedName(col), out)
	return nil
}

// NormaliseSalaryByDepartment adds normalised_salary. Salaries are turned
// into z-scores against their department's mean and population standard
// deviation, then min-max scaled to [0, 1] within the department. A
// department whose salaries are all equal scores 0.5. Rows without a
// salary or a department stay missing.
func NormaliseSalaryByDepartment(f *analysis.Frame, deptCol, salaryCol string) error {
	depts, err := f.Categorical(deptCol)
	if err != nil {
		return err
	}
	salaries, err := f.Numeric(salaryCol)
	if err != nil {
		return err
	}

	groups := make(map[string][]int)
	for i, d := range depts {
		if d == "" || math.IsNaN(salaries[i]) {
			continue
		}
		groups[d] = append(groups[d], i)
	}

	out := make([]float64, f.Len())
	for i := range out {
		out[i] = math.NaN()
	}
	for _, rows := range groups {
		values := make([]float64, len(rows))
		for j, r := range rows {
			values[j] = salaries[r]
		}
		for j, v := range scaleGroup(values) {
			out[rows[j]] = v
		}
	}

	f.AddRawNumeric(ColNormalisedSalary, out)
	return nil
}

// scaleGroup returns the min-max scaled z-scores of values.
func scaleGroup(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) < 2 || floats.Max(values) == floats.Min(values) {
		for i := range out {
			out[i] = 0.5
		}
		return out
	}

	n := float64(len(values))
	mean, std := stat.MeanStdDev(values, nil)
	std *= math.Sqrt((n - 1) / n)
	for i, v := range values {
		out[i] = (v - mean) / std
	}
	lo, hi := floats.Min(out), floats.Max(out)
	for i, z := range out {
		out[i] = (z - lo) / (hi - lo)
	}
	return out
}

// NormaliseAges adds normalised_ages, the min-max scaled ages over the
// whole frame. All ages equal gives 0.5. Missing ages stay missing.
func NormaliseAges(f *analysis.Frame, col string) error {
	ages, err := f.Numeric(col)
	if err != nil {
		return err
	}

	present, err := f.Values(col)
	if err != nil {
		return err
	}

	out := make([]float64, len(ages))
	var lo, hi float64
	if len(present) > 0 {
		lo, hi = floats.Min(present), floats.Max(present)
	}
	for i, a := range ages {
		switch {
		case math.IsNaN(a):
			out[i] = math.NaN()
		case hi == lo:
			out[i] = 0.5
		default:
			out[i] = (a - lo) / (hi - lo)
		}
	}

	f.AddRawNumeric(ColNormalisedAges, out)
	return nil
}
