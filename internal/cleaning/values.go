package cleaning

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

// wholeFloat matches integers rendered as floats, like "1234.0".
var wholeFloat = regexp.MustCompile(`^(\d+)\.0+$`)

// stripWholeFloat turns "1234.0" into "1234" and leaves other values alone.
func stripWholeFloat(s string) string {
	if m := wholeFloat.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// ParseID parses a positive integer key. Float renderings are accepted.
func ParseID(s string) (int64, bool) {
	s = stripWholeFloat(strings.TrimSpace(s))
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// moneyReplacer removes currency symbols and grouping characters.
var moneyReplacer = strings.NewReplacer(
	"£", "", "$", "", "€", "",
	",", "", "_", "", " ", "",
	"gbp", "", "usd", "", "eur", "",
)

// ParseAmount parses a numeric cell, tolerating currency symbols and
// thousands separators. present is false for null cells.
func ParseAmount(s string) (value float64, present, ok bool) {
	if IsNull(s) {
		return domain.Missing, false, true
	}
	cleaned := moneyReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.Missing, true, false
	}
	return v, true, true
}

// ParseFlag converts a status cell to a boolean. Null cells are false,
// boolean literals are honored and anything else (a timestamp) is true.
func ParseFlag(s string) bool {
	if IsNull(s) {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y", "1", "1.0":
		return true
	case "false", "f", "no", "n", "0", "0.0":
		return false
	}
	return true
}

// dobLayouts are tried in order after compacting YYYYMMDD input.
var dobLayouts = []string{
	domain.DateLayout,
	"2006/01/02",
}

// ParseDOB parses a date of birth. YYYYMMDD is reformatted and a leading date
// in a timestamp is accepted. present is false for null cells.
func ParseDOB(s string) (dob time.Time, present, ok bool) {
	if IsNull(s) {
		return time.Time{}, false, true
	}
	s = stripWholeFloat(strings.TrimSpace(s))

	if len(s) == 8 && isDigits(s) {
		s = s[:4] + "-" + s[4:6] + "-" + s[6:]
	}
	if len(s) > 10 && (s[10] == ' ' || s[10] == 'T') {
		s = s[:10]
	}

	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true, true
		}
	}
	return time.Time{}, true, false
}

// timestampLayouts are the chat timestamp formats seen in exports.
var timestampLayouts = []string{
	domain.TimestampLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	domain.DateLayout,
}

// ParseTimestamp parses a chat timestamp into UTC at second precision.
func ParseTimestamp(s string) (ts time.Time, present, ok bool) {
	if IsNull(s) {
		return time.Time{}, false, true
	}
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Truncate(time.Second), true, true
		}
	}
	return time.Time{}, true, false
}

// SplitCultureCode splits a four digit code into its components. Empty codes
// are valid and missing; five digit or non-numeric codes are not valid.
func SplitCultureCode(s string) (code string, culture domain.Culture, present, ok bool) {
	if IsNull(s) {
		return "", domain.MissingCulture, false, true
	}
	s = stripWholeFloat(strings.TrimSpace(s))
	if len(s) != 4 || !isDigits(s) {
		return "", domain.MissingCulture, true, false
	}
	return s, domain.Culture{
		Risk:         int(s[0] - '0'),
		Extroversion: int(s[1] - '0'),
		Patience:     int(s[2] - '0'),
		Norms:        int(s[3] - '0'),
	}, true, true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
