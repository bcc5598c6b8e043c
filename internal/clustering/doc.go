// Package clustering turns prepared candidate records into k-means input.
//
// Each helper adds derived columns to an analysis.Frame: culture components
// scaled by 9, salaries normalised within their department, min-max ages,
// the nearest cluster city and weighted one-hot indicators. Preprocess
// chains them after reducing the records to one row per user.
package clustering
