package preparation

import (
	"time"

	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

// Ages outside this range are treated as data errors.
const (
	MinAge = 0
	MaxAge = 120
)

// AgeFromBirthYear returns referenceYear - birthYear, or Missing when the
// birth year is unknown.
func AgeFromBirthYear(birthYear, referenceYear int) int {
	if birthYear == domain.Missing {
		return domain.Missing
	}
	return referenceYear - birthYear
}

// AgeAt returns the age in whole years on ref. One year is subtracted when
// the birthday has not yet occurred in ref's year. A zero dob gives Missing.
func AgeAt(dob, ref time.Time) int {
	if dob.IsZero() {
		return domain.Missing
	}
	age := AgeFromBirthYear(dob.Year(), ref.Year())
	if ref.Month() < dob.Month() || (ref.Month() == dob.Month() && ref.Day() < dob.Day()) {
		age--
	}
	return age
}

// validAge reports whether age is a plausible human age.
func validAge(age int) bool {
	return age >= MinAge && age <= MaxAge
}
