package cleaning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{"12", 12, true},
		{" 12 ", 12, true},
		{"12.0", 12, true},
		{"12.5", 0, false},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseID(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in          string
		want        float64
		wantPresent bool
		wantOK      bool
	}{
		{"28000", 28000, true, true},
		{"£28,000", 28000, true, true},
		{"$1 250.50", 1250.5, true, true},
		{"30000 GBP", 30000, true, true},
		{"-500", -500, true, true},
		{"", domain.Missing, false, true},
		{"n/a", domain.Missing, false, true},
		{"abc", domain.Missing, true, false},
		{"inf", domain.Missing, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, present, ok := ParseAmount(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantPresent, present)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestParseFlag(t *testing.T) {
	truthy := []string{"true", "TRUE", "1", "1.0", "yes", "2024-01-03 10:00:00"}
	falsy := []string{"", "false", "0", "0.0", "no", "NaT"}
	for _, s := range truthy {
		assert.True(t, ParseFlag(s), s)
	}
	for _, s := range falsy {
		assert.False(t, ParseFlag(s), s)
	}
}

func TestParseDOB(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	tests := []struct {
		in          string
		want        time.Time
		wantPresent bool
		wantOK      bool
	}{
		{"1990-05-01", date(1990, 5, 1), true, true},
		{"19850612", date(1985, 6, 12), true, true},
		{"19850612.0", date(1985, 6, 12), true, true},
		{"1990/05/01", date(1990, 5, 1), true, true},
		{"1990-05-01 00:00:00", date(1990, 5, 1), true, true},
		{"2000-02-29", date(2000, 2, 29), true, true},
		{"2001-02-29", time.Time{}, true, false},
		{"not a date", time.Time{}, true, false},
		{"", time.Time{}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, present, ok := ParseDOB(tt.in)
			assert.True(t, tt.want.Equal(got), "got %v", got)
			assert.Equal(t, tt.wantPresent, present)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   string
	}{
		{"canonical", "2024-01-03 10:00:00"},
		{"rfc3339", "2024-01-03T10:00:00Z"},
		{"offset converted to UTC", "2024-01-03T11:00:00+01:00"},
		{"fraction truncated", "2024-01-03 10:00:00.750"},
		{"no seconds", "2024-01-03 10:00"},
		{"day first", "03/01/2024 10:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, present, ok := ParseTimestamp(tt.in)
			assert.True(t, present)
			assert.True(t, ok)
			assert.Equal(t, want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	_, present, ok := ParseTimestamp("garbage")
	assert.True(t, present)
	assert.False(t, ok)

	_, present, ok = ParseTimestamp("")
	assert.False(t, present)
	assert.True(t, ok)
}

func TestSplitCultureCode(t *testing.T) {
	tests := []struct {
		in          string
		wantCode    string
		want        domain.Culture
		wantPresent bool
		wantOK      bool
	}{
		{"1234", "1234", domain.Culture{Risk: 1, Extroversion: 2, Patience: 3, Norms: 4}, true, true},
		{"2345.0", "2345", domain.Culture{Risk: 2, Extroversion: 3, Patience: 4, Norms: 5}, true, true},
		{"0909", "0909", domain.Culture{Risk: 0, Extroversion: 9, Patience: 0, Norms: 9}, true, true},
		{"56789", "", domain.MissingCulture, true, false},
		{"12a4", "", domain.MissingCulture, true, false},
		{"", "", domain.MissingCulture, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			code, culture, present, ok := SplitCultureCode(tt.in)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.want, culture)
			assert.Equal(t, tt.wantPresent, present)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
