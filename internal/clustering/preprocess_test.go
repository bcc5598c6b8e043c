package clustering

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tommurray222/candid-hospitality/internal/shared/testutil"
	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

func candidate(matchID, userID int64, dept, city string, salary float64, age int, lat, lng float64, flags domain.Flags) domain.CandidateRecord {
	return domain.CandidateRecord{
		MatchID: matchID, UserID: userID, Flags: flags,
		DepartmentName: dept, CurrentCity: city,
		ExpectedSalary: salary, Age: age,
		Culture: domain.Culture{Risk: 9, Extroversion: 3, Patience: domain.Missing, Norms: 1},
		Lat:     lat, Lng: lng, HasLocation: true,
	}
}

func TestPreprocess(t *testing.T) {
	records := []domain.CandidateRecord{
		candidate(10, 1, "Kitchen", "London", 20000, 30, 51.5, -0.12, domain.Flags{}),
		candidate(11, 1, "Kitchen", "London", 20000, 30, 51.5, -0.12, domain.Flags{Progressed: true}),
		candidate(12, 2, "Kitchen", "Salford", 40000, 40, 53.48, -2.29, domain.Flags{}),
		candidate(13, 3, "Bar", "Bath", 25000, 20, 51.38, -2.36, domain.Flags{Rejected: true}),
	}
	logger, handler := testutil.NewTestLogger(t)

	f, err := Preprocess(context.Background(), records, Options{Logger: logger})
	require.NoError(t, err)
	require.Equal(t, 3, f.Len())

	matches, _ := f.Numeric("match_id")
	assert.Equal(t, []float64{11, 12, 13}, matches)

	nearest, _ := f.Categorical(ColNearestCity)
	assert.Equal(t, []string{"London", "Manchester", "Bristol"}, nearest)

	for _, col := range []string{"city_Bristol", "city_London", "city_Manchester", "department_Bar", "department_Kitchen"} {
		assert.True(t, f.HasColumn(col), col)
	}
	london, _ := f.Numeric("city_London")
	assert.Equal(t, []float64{DefaultWeight, 0, 0}, london)

	salary, _ := f.Numeric(ColNormalisedSalary)
	assert.Equal(t, []float64{0, 1, 0.5}, salary)

	ages, _ := f.Numeric(ColNormalisedAges)
	assert.Equal(t, []float64{0.5, 1, 0}, ages)

	risk, _ := f.Numeric("normalised_risk")
	assert.Equal(t, []float64{1, 1, 1}, risk)
	patience, _ := f.Numeric("normalised_patience")
	assert.True(t, math.IsNaN(patience[0]))

	testutil.AssertLogContains(t, handler, slog.LevelInfo, "Cluster features prepared")
	testutil.AssertLogAttr(t, handler, "users", int64(3))
}

func TestPreprocess_TooManyDepartments(t *testing.T) {
	var records []domain.CandidateRecord
	for i := int64(1); i <= MaxOneHotCategories+1; i++ {
		records = append(records, candidate(i, i, fmt.Sprintf("Dept %02d", i), "London", 20000, 30, 51.5, -0.12, domain.Flags{}))
	}

	_, err := Preprocess(context.Background(), records, Options{})
	assert.Error(t, err)
}

func TestPreprocess_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Preprocess(ctx, []domain.CandidateRecord{candidate(1, 1, "Bar", "Leeds", 1, 30, 53.8, -1.55, domain.Flags{})}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
