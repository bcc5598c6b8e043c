package analysis

import (
	"math"
	"sort"
	"strconv"

	"github.com/tommurray222/candid-hospitality/internal/dataprocessing"
	apperrors "github.com/tommurray222/candid-hospitality/internal/errors"
	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

// Frame is a read-only column view used by the analysis helpers. Numeric
// columns hold NaN for missing values; categorical columns hold "".
type Frame struct {
	name        string
	rows        int
	order       []string
	numeric     map[string][]float64
	categorical map[string][]string
}

// NewFrame creates an empty frame with a fixed row count.
func NewFrame(name string, rows int) *Frame {
	return &Frame{
		name:        name,
		rows:        rows,
		numeric:     make(map[string][]float64),
		categorical: make(map[string][]string),
	}
}

// Name returns the frame name used in errors.
func (f *Frame) Name() string { return f.name }

// Len returns the number of rows.
func (f *Frame) Len() int { return f.rows }

// Columns returns column names in insertion order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// HasColumn reports whether the frame has a column of either kind.
func (f *Frame) HasColumn(name string) bool {
	_, num := f.numeric[name]
	_, cat := f.categorical[name]
	return num || cat
}

// IsNumeric reports whether name is a numeric column.
func (f *Frame) IsNumeric(name string) bool {
	_, ok := f.numeric[name]
	return ok
}

// AddNumeric sets a numeric column. The Missing sentinel is stored as NaN.
// values must have Len() entries.
func (f *Frame) AddNumeric(name string, values []float64) *Frame {
	if len(values) != f.rows {
		panic("analysis: column " + name + " has wrong length")
	}
	col := make([]float64, len(values))
	for i, v := range values {
		if domain.IsMissing(v) {
			v = math.NaN()
		}
		col[i] = v
	}
	f.add(name)
	f.numeric[name] = col
	return f
}

// AddRawNumeric sets a numeric column without sentinel conversion, for
// columns where -1 is a legitimate value. Use NaN for missing.
func (f *Frame) AddRawNumeric(name string, values []float64) *Frame {
	if len(values) != f.rows {
		panic("analysis: column " + name + " has wrong length")
	}
	col := make([]float64, len(values))
	copy(col, values)
	f.add(name)
	f.numeric[name] = col
	return f
}

// AddCategorical sets a categorical column.
func (f *Frame) AddCategorical(name string, values []string) *Frame {
	if len(values) != f.rows {
		panic("analysis: column " + name + " has wrong length")
	}
	col := make([]string, len(values))
	copy(col, values)
	f.add(name)
	f.categorical[name] = col
	return f
}

func (f *Frame) add(name string) {
	if !f.HasColumn(name) {
		f.order = append(f.order, name)
	}
	delete(f.numeric, name)
	delete(f.categorical, name)
}

// Numeric returns a numeric column including NaN entries.
func (f *Frame) Numeric(name string) ([]float64, error) {
	col, ok := f.numeric[name]
	if !ok {
		if _, cat := f.categorical[name]; cat {
			return nil, apperrors.NewAppValidationError(f.name + " column " + strconv.Quote(name) + " is not numeric")
		}
		return nil, apperrors.NewColumnError(f.name, name)
	}
	return col, nil
}

// Values returns the non-missing values of a numeric column.
func (f *Frame) Values(name string) ([]float64, error) {
	col, err := f.Numeric(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(col))
	for _, v := range col {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// Categorical returns a column as labels. Numeric columns are rendered in
// their shortest form with "" for missing values.
func (f *Frame) Categorical(name string) ([]string, error) {
	if col, ok := f.categorical[name]; ok {
		return col, nil
	}
	col, ok := f.numeric[name]
	if !ok {
		return nil, apperrors.NewColumnError(f.name, name)
	}
	out := make([]string, len(col))
	for i, v := range col {
		if !math.IsNaN(v) {
			out[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return out, nil
}

func nan(ok bool, v float64) float64 {
	if !ok {
		return math.NaN()
	}
	return v
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// NewCandidateFrame builds a frame over prepared candidate records. Chat
// columns are missing for matches without a conversation.
func NewCandidateFrame(records []domain.CandidateRecord) *Frame {
	n := len(records)
	f := NewFrame("candid_data", n)

	cols := make(map[string][]float64)
	numCol := func(name string) []float64 {
		c, ok := cols[name]
		if !ok {
			c = make([]float64, n)
			cols[name] = c
		}
		return c
	}
	ethnicity, gender := make([]string, n), make([]string, n)
	city, dept := make([]string, n), make([]string, n)

	for i, r := range records {
		numCol(dataprocessing.ColMatchID)[i] = float64(r.MatchID)
		numCol(dataprocessing.ColJobID)[i] = float64(r.JobID)
		numCol(dataprocessing.ColUserID)[i] = float64(r.UserID)
		for j, s := range r.Scores.Values() {
			numCol(domain.ScoreColumns[j])[i] = s
		}
		for j, b := range r.Flags.Values() {
			numCol(domain.FlagColumns[j])[i] = flag(b)
		}
		has := r.Chat.HasMessages()
		numCol(dataprocessing.ColCandidateMsgs)[i] = nan(has, float64(r.Chat.CandidateMsgs))
		numCol(dataprocessing.ColCompanyMsgs)[i] = nan(has, float64(r.Chat.CompanyMsgs))
		numCol(dataprocessing.ColCandidateResponseTime)[i] = r.Chat.CandidateResponseTime
		numCol(dataprocessing.ColCompanyResponseTime)[i] = r.Chat.CompanyResponseTime
		metric, ok := r.Chat.InteractivityValue()
		numCol(dataprocessing.ColInteractivity)[i] = nan(ok, metric)

		numCol(dataprocessing.ColExpectedSalary)[i] = r.ExpectedSalary
		for j, v := range r.Culture.Components() {
			numCol(domain.CultureComponentNames[j])[i] = float64(v)
		}
		numCol(dataprocessing.ColAge)[i] = float64(r.Age)
		numCol("bio_sentiment_neg")[i] = r.BioSentiment.Neg
		numCol("bio_sentiment_pos")[i] = r.BioSentiment.Pos
		numCol("bio_sentiment_compound")[i] = r.BioSentiment.Compound
		numCol(dataprocessing.ColLat)[i] = nan(r.HasLocation, r.Lat)
		numCol(dataprocessing.ColLng)[i] = nan(r.HasLocation, r.Lng)

		ethnicity[i], gender[i], city[i], dept[i] = r.Ethnicity, r.Gender, r.CurrentCity, r.DepartmentName
	}

	// sentiment, interactivity and coordinates can legitimately be -1
	raw := map[string]bool{
		dataprocessing.ColInteractivity: true,
		"bio_sentiment_compound":        true,
		dataprocessing.ColLat:           true,
		dataprocessing.ColLng:           true,
	}
	for _, name := range dataprocessing.CandidateColumns() {
		c, ok := cols[name]
		if !ok {
			continue
		}
		if raw[name] {
			f.AddRawNumeric(name, c)
		} else {
			f.AddNumeric(name, c)
		}
	}
	f.AddCategorical(dataprocessing.ColEthnicity, ethnicity)
	f.AddCategorical(dataprocessing.ColGender, gender)
	f.AddCategorical(dataprocessing.ColCurrentCity, city)
	f.AddCategorical(dataprocessing.ColDepartmentName, dept)
	return f
}

// NewUserFrame builds a frame over users.
func NewUserFrame(users []domain.User) *Frame {
	n := len(users)
	f := NewFrame(domain.TableUsers, n)

	ids, age, salary := make([]float64, n), make([]float64, n), make([]float64, n)
	neg, pos, compound := make([]float64, n), make([]float64, n), make([]float64, n)
	lat, lng := make([]float64, n), make([]float64, n)
	culture := [4][]float64{make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)}
	dept, city := make([]string, n), make([]string, n)
	ethnicity, gender, code := make([]string, n), make([]string, n), make([]string, n)

	for i, u := range users {
		ids[i] = float64(u.UserID)
		age[i] = float64(u.Age)
		salary[i] = u.ExpectedSalary
		for j, v := range u.Culture.Components() {
			culture[j][i] = float64(v)
		}
		neg[i], pos[i], compound[i] = u.BioSentiment.Neg, u.BioSentiment.Pos, u.BioSentiment.Compound
		lat[i], lng[i] = nan(u.HasLocation, u.Lat), nan(u.HasLocation, u.Lng)
		dept[i], city[i] = u.DepartmentName, u.CurrentCity
		ethnicity[i], gender[i], code[i] = u.Ethnicity, u.Gender, u.CultureCode
	}

	f.AddNumeric(dataprocessing.ColUserID, ids)
	f.AddNumeric(dataprocessing.ColAge, age)
	f.AddNumeric(dataprocessing.ColExpectedSalary, salary)
	for j, name := range domain.CultureComponentNames {
		f.AddNumeric(name, culture[j])
	}
	f.AddNumeric("bio_sentiment_neg", neg)
	f.AddNumeric("bio_sentiment_pos", pos)
	f.AddRawNumeric("bio_sentiment_compound", compound)
	f.AddRawNumeric(dataprocessing.ColLat, lat)
	f.AddRawNumeric(dataprocessing.ColLng, lng)
	f.AddCategorical(dataprocessing.ColDepartmentName, dept)
	f.AddCategorical(dataprocessing.ColCurrentCity, city)
	f.AddCategorical(dataprocessing.ColEthnicity, ethnicity)
	f.AddCategorical(dataprocessing.ColGender, gender)
	f.AddCategorical(dataprocessing.ColCultureCode, code)
	return f
}

// NewTableFrame builds a frame from an encoded table such as candid_data.csv.
// A column is numeric when every non-empty cell parses as a number; empty
// cells are missing. Other columns are categorical.
func NewTableFrame(t *dataprocessing.Table) *Frame {
	f := NewFrame(t.Name, t.Len())
	for c, header := range t.Header {
		name := dataprocessing.NormalizeHeader(header)
		if name == "" || f.HasColumn(name) {
			continue
		}
		nums := make([]float64, t.Len())
		labels := make([]string, t.Len())
		numeric := true
		for r := range t.Rows {
			cell := t.Cell(r, c)
			labels[r] = cell
			if cell == "" {
				nums[r] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				numeric = false
				continue
			}
			nums[r] = v
		}
		if numeric {
			f.AddRawNumeric(name, nums)
		} else {
			f.AddCategorical(name, labels)
		}
	}
	return f
}

// NumericColumns lists numeric column names in insertion order.
func (f *Frame) NumericColumns() []string {
	var out []string
	for _, name := range f.order {
		if f.IsNumeric(name) {
			out = append(out, name)
		}
	}
	return out
}

// sortedCopy returns values sorted ascending.
func sortedCopy(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
}

// Table renders the frame in column order. NaN becomes an empty cell and
// numbers use their shortest form, so NewTableFrame reads it back.
func (f *Frame) Table() *dataprocessing.Table {
	rows := make([][]string, f.rows)
	for r := range rows {
		rows[r] = make([]string, len(f.order))
	}
	for c, name := range f.order {
		if col, ok := f.categorical[name]; ok {
			for r, v := range col {
				rows[r][c] = v
			}
			continue
		}
		for r, v := range f.numeric[name] {
			if !math.IsNaN(v) {
				rows[r][c] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
	}
	return dataprocessing.NewTable(f.name, f.Columns(), rows)
}
