package domain

import "math"

// Missing is the sentinel stored in numeric fields whose value is absent or
// could not be coerced. It is written to CSV as an empty cell.
const Missing = -1

// IsMissing reports whether a float field holds the missing sentinel.
// NaN is treated as missing too so values computed downstream never leak.
func IsMissing(v float64) bool {
	return v == Missing || math.IsNaN(v)
}
