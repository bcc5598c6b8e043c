package clustering

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tommurray222/candid-hospitality/internal/analysis"
	apperrors "github.com/tommurray222/candid-hospitality/internal/errors"
)

func TestNormaliseCultureComponent(t *testing.T) {
	f := analysis.NewFrame("users", 3).AddNumeric("risk", []float64{9, 3, -1})

	require.NoError(t, NormaliseCultureComponent(f, "risk"))

	got, err := f.Numeric("normalised_risk")
	require.NoError(t, err)
	assert.Equal(t, 1.0, got[0])
	assert.InDelta(t, 1.0/3, got[1], 1e-12)
	assert.True(t, math.IsNaN(got[2]))
}

func TestNormaliseCultureComponent_MissingColumn(t *testing.T) {
	f := analysis.NewFrame("users", 1)
	err := NormaliseCultureComponent(f, "risk")
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeColumn))
}

func TestNormaliseSalaryByDepartment(t *testing.T) {
	f := analysis.NewFrame("users", 7).
		AddCategorical("department_name", []string{"Kitchen", "Kitchen", "Kitchen", "Bar", "Bar", "Spa", ""}).
		AddNumeric("expected_salary", []float64{20000, 30000, 40000, 25000, 25000, -1, 30000})

	require.NoError(t, NormaliseSalaryByDepartment(f, "department_name", "expected_salary"))

	got, err := f.Numeric(ColNormalisedSalary)
	require.NoError(t, err)

	tests := []struct {
		name string
		row  int
		want float64
	}{
		{"kitchen minimum", 0, 0},
		{"kitchen mean", 1, 0.5},
		{"kitchen maximum", 2, 1},
		{"constant department", 3, 0.5},
		{"constant department second row", 4, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, got[tt.row], 1e-12)
		})
	}
	assert.True(t, math.IsNaN(got[5]), "missing salary")
	assert.True(t, math.IsNaN(got[6]), "missing department")
}

func TestNormaliseSalaryByDepartment_SingleMember(t *testing.T) {
	f := analysis.NewFrame("users", 1).
		AddCategorical("department_name", []string{"Housekeeping"}).
		AddNumeric("expected_salary", []float64{21000})

	require.NoError(t, NormaliseSalaryByDepartment(f, "department_name", "expected_salary"))
	got, _ := f.Numeric(ColNormalisedSalary)
	assert.Equal(t, []float64{0.5}, got)
}

func TestNormaliseAges(t *testing.T) {
	tests := []struct {
		name string
		ages []float64
		want []float64
	}{
		{"min-max", []float64{20, 30, 40}, []float64{0, 0.5, 1}},
		{"constant", []float64{25, 25}, []float64{0.5, 0.5}},
		{"missing kept", []float64{20, -1, 60}, []float64{0, math.NaN(), 1}},
		{"all missing", []float64{-1}, []float64{math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := analysis.NewFrame("users", len(tt.ages)).AddNumeric("age", tt.ages)
			require.NoError(t, NormaliseAges(f, "age"))

			got, err := f.Numeric(ColNormalisedAges)
			require.NoError(t, err)
			for i, want := range tt.want {
				if math.IsNaN(want) {
					assert.True(t, math.IsNaN(got[i]), "row %d", i)
					continue
				}
				assert.InDelta(t, want, got[i], 1e-12, "row %d", i)
			}
		})
	}
}
