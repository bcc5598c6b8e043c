// Package analysis provides exploratory summaries over prepared tables.
//
// A Frame is a column view over candidate records, users or any encoded
// table. The helpers (Describe, Histogram, CategoryCounts, GroupedStat and
// Correlation) only read it. Asking for a column the frame does not have
// returns a COLUMN error; it is never skipped silently.
//
// Workbook renders the same summaries as an Excel file with native charts:
// one sheet per numeric column (summary and histogram), per categorical
// column (top categories with percentages), per grouped statistic and one
// for the correlation matrix.
package analysis
