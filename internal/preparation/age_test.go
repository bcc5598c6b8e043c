package preparation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

func TestAgeFromBirthYear(t *testing.T) {
	assert.Equal(t, 34, AgeFromBirthYear(1990, 2024))
	assert.Equal(t, 0, AgeFromBirthYear(2024, 2024))
	assert.Equal(t, domain.Missing, AgeFromBirthYear(domain.Missing, 2024))
}

func TestAgeAt(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	ref := date(2024, 6, 1)

	tests := []struct {
		name string
		dob  time.Time
		want int
	}{
		{"birthday passed", date(1990, 5, 1), 34},
		{"birthday today", date(1990, 6, 1), 34},
		{"birthday later in month", date(1985, 6, 12), 38},
		{"birthday later in year", date(1990, 12, 31), 33},
		{"leap day", date(2000, 2, 29), 24},
		{"unknown", time.Time{}, domain.Missing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeAt(tt.dob, ref))
		})
	}
}
