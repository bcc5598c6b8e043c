package dataprocessing

import (
	"strconv"
	"time"

	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

// FormatFloat renders a float in its shortest form; missing values are empty.
func FormatFloat(f float64) string {
	if domain.IsMissing(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatInt renders an integer; the missing sentinel is empty.
func FormatInt(i int64) string {
	if i == domain.Missing {
		return ""
	}
	return strconv.FormatInt(i, 10)
}

// FormatBool renders a flag as 1 or 0.
func FormatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// FormatTime renders t with layout; the zero time is empty.
func FormatTime(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}

// FormatCoordinate renders a coordinate only when the record has a location.
func FormatCoordinate(v float64, ok bool) string {
	if !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
