package domain

import "time"

// DateLayout is the canonical format for dates of birth.
const DateLayout = "2006-01-02"

// User is a cleaned candidate profile.
type User struct {
	UserID         int64     `json:"user_id" validate:"required,gt=0"`
	DOB            time.Time `json:"dob"`
	Age            int       `json:"age" validate:"age"`
	DepartmentName string    `json:"department_name" validate:"trimmed"`
	CurrentCity    string    `json:"current_city" validate:"trimmed"`
	CultureCode    string    `json:"culture_code" validate:"omitempty,len=4,numeric"`
	Culture        Culture   `json:"culture"`
	ExpectedSalary float64   `json:"expected_salary" validate:"salary"`
	Ethnicity      string    `json:"ethnicity" validate:"trimmed"`
	Gender         string    `json:"gender" validate:"trimmed"`
	CultureText    string    `json:"culture_text" validate:"trimmed"`
	BioSentiment   Sentiment `json:"bio_sentiment"`
	Lat            float64   `json:"lat"`
	Lng            float64   `json:"lng"`
	HasLocation    bool      `json:"has_location"`
}

// BirthYear returns the year of birth or Missing when the date is unknown.
func (u User) BirthYear() int {
	if u.DOB.IsZero() {
		return Missing
	}
	return u.DOB.Year()
}

// Culture holds the four single-digit components of a culture code.
// A code ABCD maps to Risk=A, Extroversion=B, Patience=C, Norms=D.
type Culture struct {
	Risk         int `json:"risk" validate:"component"`
	Extroversion int `json:"extroversion" validate:"component"`
	Patience     int `json:"patience" validate:"component"`
	Norms        int `json:"norms" validate:"component"`
}

// MissingCulture is the value used when a culture code is absent or malformed.
var MissingCulture = Culture{Risk: Missing, Extroversion: Missing, Patience: Missing, Norms: Missing}

// Components returns the components in code order.
func (c Culture) Components() [4]int {
	return [4]int{c.Risk, c.Extroversion, c.Patience, c.Norms}
}

// CultureComponentNames lists the component column names in code order.
var CultureComponentNames = [4]string{"risk", "extroversion", "patience", "norms"}
