package cleaning

import (
	"context"

	"github.com/tommurray222/candid-hospitality/internal/dataprocessing"
	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

type userColumns struct {
	id, dob, department, city, cultureCode, salary int
	ethnicity, gender, cultureText, lat, lng       int
}

func resolveUserColumns(t *dataprocessing.Table) (userColumns, error) {
	id, err := t.Column(dataprocessing.ColUserID, dataprocessing.Aliases[dataprocessing.ColUserID]...)
	if err != nil {
		return userColumns{}, err
	}
	opt := func(name string) int { return t.OptionalColumn(name, dataprocessing.Aliases[name]...) }
	return userColumns{
		id:          id,
		dob:         opt(dataprocessing.ColDOB),
		department:  opt(dataprocessing.ColDepartmentName),
		city:        opt(dataprocessing.ColCurrentCity),
		cultureCode: opt(dataprocessing.ColCultureCode),
		salary:      opt(dataprocessing.ColExpectedSalary),
		ethnicity:   opt(dataprocessing.ColEthnicity),
		gender:      opt(dataprocessing.ColGender),
		cultureText: opt(dataprocessing.ColCultureText),
		lat:         opt(dataprocessing.ColLat),
		lng:         opt(dataprocessing.ColLng),
	}, nil
}

// CleanUsers cleans a users table. Rows without a valid or unique user_id
// and configured test accounts are dropped; malformed dates, culture codes,
// salaries and coordinates are replaced by missing values and flagged.
func (c *Cleaner) CleanUsers(ctx context.Context, t *dataprocessing.Table) ([]domain.User, *domain.Report, error) {
	cols, err := resolveUserColumns(t)
	if err != nil {
		return nil, nil, err
	}

	run := newTableRun(ctx, c.logger, domain.TableUsers, t.Len())
	users := make([]domain.User, 0, t.Len())
	seen := make(map[int64]bool, t.Len())

	for i := range t.Rows {
		row := i + 1
		cell := func(col int) string { return t.Cell(i, col) }

		rawID := cell(cols.id)
		id, ok := ParseID(rawID)
		if !ok {
			run.drop(row, dataprocessing.ColUserID, rawID, "user_id is not a positive integer")
			continue
		}
		if seen[id] {
			run.drop(row, dataprocessing.ColUserID, rawID, "duplicate user_id")
			continue
		}
		seen[id] = true
		if c.testAccounts[id] {
			run.drop(row, dataprocessing.ColUserID, rawID, "test account")
			continue
		}

		u := domain.User{
			UserID:         id,
			Age:            domain.Missing,
			DepartmentName: TitleText(cell(cols.department)),
			CurrentCity:    TitleText(cell(cols.city)),
			Ethnicity:      LowerText(cell(cols.ethnicity)),
			Gender:         LowerText(cell(cols.gender)),
			CultureText:    FreeText(cell(cols.cultureText)),
		}

		rawDOB := cell(cols.dob)
		dob, present, ok := ParseDOB(rawDOB)
		if present && !ok {
			run.flag(row, dataprocessing.ColDOB, rawDOB, "unrecognised date of birth")
		}
		u.DOB = dob

		rawCode := cell(cols.cultureCode)
		code, culture, present, ok := SplitCultureCode(rawCode)
		if present && !ok {
			run.flag(row, dataprocessing.ColCultureCode, rawCode, "culture code is not four digits")
		}
		u.CultureCode, u.Culture = code, culture

		rawSalary := cell(cols.salary)
		salary, present, ok := ParseAmount(rawSalary)
		switch {
		case !present:
		case !ok:
			run.flag(row, dataprocessing.ColExpectedSalary, rawSalary, "salary is not numeric")
		case salary < 0:
			run.flag(row, dataprocessing.ColExpectedSalary, rawSalary, "negative salary")
			salary = domain.Missing
		}
		u.ExpectedSalary = salary

		c.setLocation(run, row, &u, cell(cols.lat), cell(cols.lng))

		u.BioSentiment = c.scorer.Score(u.CultureText)

		if !run.checkRecord(row, u) {
			continue
		}
		run.keep()
		users = append(users, u)
	}

	return users, run.done(), nil
}

// setLocation keeps coordinates only when both parse and are in range.
func (c *Cleaner) setLocation(run *tableRun, row int, u *domain.User, rawLat, rawLng string) {
	lat, latPresent, latOK := ParseAmount(rawLat)
	lng, lngPresent, lngOK := ParseAmount(rawLng)
	if !latPresent && !lngPresent {
		return
	}
	if !latPresent || !lngPresent || !latOK || !lngOK || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		run.flag(row, dataprocessing.ColLat+","+dataprocessing.ColLng, rawLat+","+rawLng, "invalid coordinates")
		return
	}
	u.Lat, u.Lng, u.HasLocation = lat, lng, true
}

// CleanUsers cleans a users table with default options.
func CleanUsers(t *dataprocessing.Table) ([]domain.User, *domain.Report, error) {
	return NewCleaner(Options{}).CleanUsers(context.Background(), t)
}
