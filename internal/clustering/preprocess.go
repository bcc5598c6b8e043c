package clustering

import (
	"context"
	"log/slog"

	"github.com/tommurray222/candid-hospitality/internal/analysis"
	"github.com/tommurray222/candid-hospitality/internal/dataprocessing"
	"github.com/tommurray222/candid-hospitality/internal/infrastructure"
	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

// DefaultWeight scales the one-hot indicator columns.
const DefaultWeight = 0.2

// Options configures Preprocess.
type Options struct {
	Cities []City
	// Weight is the value of a set one-hot indicator.
	Weight float64
	// CultureColumns are the 1..9 components to normalise.
	CultureColumns []string
	Logger         *slog.Logger
}

func (o Options) withDefaults() Options {
	if len(o.Cities) == 0 {
		o.Cities = DefaultCities
	}
	if o.Weight <= 0 {
		o.Weight = DefaultWeight
	}
	if o.CultureColumns == nil {
		o.CultureColumns = domain.CultureComponentNames[:]
	}
	return o
}

// Preprocess builds the k-means input from prepared records: one record per
// user, nearest cluster city, weighted one-hot cities and departments,
// department-wise salaries, ages and culture components scaled to [0, 1].
func Preprocess(ctx context.Context, records []domain.CandidateRecord, opts Options) (*analysis.Frame, error) {
	opts = opts.withDefaults()
	logger := infrastructure.WithComponent(opts.Logger, "clustering")

	users := ConcatUsers(records)
	f := analysis.NewCandidateFrame(users)

	if err := NearestCity(f, dataprocessing.ColCurrentCity, dataprocessing.ColLat, dataprocessing.ColLng, opts.Cities); err != nil {
		return nil, err
	}
	cityCols, err := OneHot(f, ColNearestCity, "city", opts.Weight)
	if err != nil {
		return nil, err
	}
	deptCols, err := OneHot(f, dataprocessing.ColDepartmentName, "department", opts.Weight)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := NormaliseSalaryByDepartment(f, dataprocessing.ColDepartmentName, dataprocessing.ColExpectedSalary); err != nil {
		return nil, err
	}
	if err := NormaliseAges(f, dataprocessing.ColAge); err != nil {
		return nil, err
	}
	for _, col := range opts.CultureColumns {
		if err := NormaliseCultureComponent(f, col); err != nil {
			return nil, err
		}
	}

	logger.InfoContext(ctx, "Cluster features prepared",
		slog.Int("records", len(records)),
		slog.Int("users", len(users)),
		slog.Int("city_columns", len(cityCols)),
		slog.Int("department_columns", len(deptCols)))
	return f, nil
}
