package cleaning

import (
	"context"
	"log/slog"

	"github.com/tommurray222/candid-hospitality/internal/validation"
	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

// tableRun records the outcome of each row of one table into a report.
type tableRun struct {
	ctx     context.Context
	logger  *slog.Logger
	table   string
	report  *domain.Report
	counts  *domain.TableCounts
	flagged bool
}

func newTableRun(ctx context.Context, logger *slog.Logger, table string, rows int) *tableRun {
	report := domain.NewReport()
	counts := report.Table(table)
	counts.Read = rows
	return &tableRun{ctx: ctx, logger: logger, table: table, report: report, counts: counts}
}

func (r *tableRun) issue(row int, column, value string, action domain.IssueAction, reason string) {
	issue := domain.Issue{
		Table:  r.table,
		Row:    row,
		Column: column,
		Value:  value,
		Action: action,
		Reason: reason,
	}
	r.report.Add(issue)
	r.logger.WarnContext(r.ctx, "Data quality issue",
		slog.String("table", r.table),
		slog.Int("row", row),
		slog.String("column", column),
		slog.String("value", value),
		slog.String("action", string(action)),
		slog.String("reason", reason))
}

// drop records a removed row.
func (r *tableRun) drop(row int, column, value, reason string) {
	r.issue(row, column, value, domain.ActionDropped, reason)
	r.counts.Dropped++
	r.flagged = false
}

// flag records a field replaced by its missing value; the row is kept.
func (r *tableRun) flag(row int, column, value, reason string) {
	r.issue(row, column, value, domain.ActionFlagged, reason)
	r.flagged = true
}

// keep closes a retained row.
func (r *tableRun) keep() {
	r.counts.Kept++
	if r.flagged {
		r.counts.Flagged++
	}
	r.flagged = false
}

// checkRecord runs struct-tag validation and drops the row on violation.
func (r *tableRun) checkRecord(row int, rec any) bool {
	violations := validation.Record(rec)
	if len(violations) == 0 {
		return true
	}
	v := violations[0]
	r.drop(row, v.Field, v.Value, "failed "+v.Tag+" constraint")
	return false
}

func (r *tableRun) done() *domain.Report {
	r.logger.InfoContext(r.ctx, "Table cleaned",
		slog.String("table", r.table),
		slog.Int("read", r.counts.Read),
		slog.Int("kept", r.counts.Kept),
		slog.Int("dropped", r.counts.Dropped),
		slog.Int("flagged", r.counts.Flagged))
	return r.report
}
