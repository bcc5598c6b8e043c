package cleaning

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// nullTokens are spellings of "no value" found in spreadsheet exports.
var nullTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"nat":  true,
	"null": true,
	"none": true,
	"nil":  true,
	"-":    true,
}

// IsNull reports whether a raw cell means "no value". The cell is
// normalized first, so "N/A" padded with zero-width or control characters
// is null too.
func IsNull(s string) bool {
	return nullTokens[strings.ToLower(NormalizeText(s))]
}

// NormalizeText composes to NFC, drops invalid UTF-8 and control or format
// characters, collapses runs of whitespace and trims the ends.
func NormalizeText(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = norm.NFC.String(s)
	s = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return ' '
		case unicode.IsControl(r), unicode.Is(unicode.Cf, r):
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// TitleText normalizes and title-cases a categorical value ("front of house"
// becomes "Front Of House"). Null tokens become "".
func TitleText(s string) string {
	s = FreeText(s)
	if s == "" {
		return ""
	}
	return norm.NFC.String(cases.Title(language.English).String(s))
}

// LowerText normalizes and lower-cases a categorical value. Null tokens become "".
func LowerText(s string) string {
	s = FreeText(s)
	if s == "" {
		return ""
	}
	return norm.NFC.String(cases.Lower(language.English).String(s))
}

// FreeText normalizes free text but keeps its case. Null tokens become "".
func FreeText(s string) string {
	s = NormalizeText(s)
	if nullTokens[strings.ToLower(s)] {
		return ""
	}
	return s
}
