package domain

import "fmt"

// Table names used in data-quality reports.
const (
	TableUsers   = "users"
	TableMatches = "matches"
	TableChats   = "chats"
)

// IssueAction says what was done with a row that failed a check.
type IssueAction string

const (
	// ActionDropped means the row was removed from the output.
	ActionDropped IssueAction = "dropped"
	// ActionFlagged means the row was kept with the field replaced by a sentinel.
	ActionFlagged IssueAction = "flagged"
	// ActionExcluded means a prepared join left the row out.
	ActionExcluded IssueAction = "excluded"
)

// Issue is one data-quality finding. Row is the 1-based data row in the
// source table, or the record id when the issue is raised after cleaning.
type Issue struct {
	Table  string      `json:"table"`
	Row    int         `json:"row"`
	Column string      `json:"column"`
	Value  string      `json:"value"`
	Action IssueAction `json:"action"`
	Reason string      `json:"reason"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s row %d %s=%q %s: %s", i.Table, i.Row, i.Column, i.Value, i.Action, i.Reason)
}

// TableCounts tallies rows through a stage for one table.
type TableCounts struct {
	Read    int `json:"read"`
	Kept    int `json:"kept"`
	Dropped int `json:"dropped"`
	Flagged int `json:"flagged"`
}

// Report aggregates data-quality findings for a stage.
type Report struct {
	Counts map[string]*TableCounts `json:"counts"`
	Issues []Issue                 `json:"issues"`
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{Counts: make(map[string]*TableCounts)}
}

// Table returns the counters for a table, creating them on first use.
func (r *Report) Table(name string) *TableCounts {
	c, ok := r.Counts[name]
	if !ok {
		c = &TableCounts{}
		r.Counts[name] = c
	}
	return c
}

// Add records an issue. Flagged issues are counted per row by the caller.
func (r *Report) Add(issue Issue) {
	r.Issues = append(r.Issues, issue)
}

// IssuesFor returns the issues recorded against a table.
func (r *Report) IssuesFor(table string) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Table == table {
			out = append(out, issue)
		}
	}
	return out
}

// Merge appends another report's counts and issues.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	for name, c := range other.Counts {
		dst := r.Table(name)
		dst.Read += c.Read
		dst.Kept += c.Kept
		dst.Dropped += c.Dropped
		dst.Flagged += c.Flagged
	}
	r.Issues = append(r.Issues, other.Issues...)
}
