package analysis

import (
	"context"
	"log/slog"

	"github.com/tommurray222/candid-hospitality/internal/infrastructure"
)

// Default column selections for candid_data.
var (
	DefaultNumericColumns = []string{
		"age", "expected_salary", "score_overall", "interactivity_metric",
		"candidate_response_time", "company_response_time", "bio_sentiment_compound",
		"risk", "extroversion", "patience", "norms",
	}
	DefaultCategoricalColumns = []string{"department_name", "current_city", "ethnicity", "gender"}
	DefaultCorrelationColumns = []string{
		"score_overall", "score_department", "score_culture", "score_competencies",
		"score_compensation", "score_benefits", "age", "expected_salary",
		"interactivity_metric", "bio_sentiment_compound",
	}
)

// Options selects what Analyze computes.
type Options struct {
	Bins               int
	TopN               int
	NumericColumns     []string
	CategoricalColumns []string
	GroupBy            string
	GroupStat          string
	CorrelationColumns []string
	Logger             *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Bins <= 0 {
		o.Bins = 30
	}
	if o.TopN <= 0 {
		o.TopN = 10
	}
	if len(o.NumericColumns) == 0 {
		o.NumericColumns = DefaultNumericColumns
	}
	if len(o.CategoricalColumns) == 0 {
		o.CategoricalColumns = DefaultCategoricalColumns
	}
	if o.GroupStat == "" {
		o.GroupStat = StatMean
	}
	if len(o.CorrelationColumns) == 0 {
		o.CorrelationColumns = DefaultCorrelationColumns
	}
	return o
}

// Result holds the statistics of one analysis run and the workbook that
// charts them. The caller saves and closes the workbook.
type Result struct {
	Summaries   []Summary
	Categories  map[string][]CategoryCount
	Groups      map[string][]GroupValue
	Correlation Matrix
	Workbook    *Workbook
}

// Analyze describes every selected numeric column, counts every selected
// categorical column, computes the grouped statistic of each numeric column
// by GroupBy (when set) and the correlation matrix. Any missing column
// fails the run.
func Analyze(ctx context.Context, f *Frame, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	logger := infrastructure.WithComponent(opts.Logger, "analysis")

	res := &Result{
		Categories: make(map[string][]CategoryCount),
		Groups:     make(map[string][]GroupValue),
		Workbook:   NewWorkbook(),
	}
	fail := func(err error) (*Result, error) {
		_ = res.Workbook.Close()
		return nil, err
	}

	for _, col := range opts.NumericColumns {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}
		s, err := Describe(f, col)
		if err != nil {
			return fail(err)
		}
		res.Summaries = append(res.Summaries, s)
		if err := res.Workbook.AddNumeric(f, col, opts.Bins); err != nil {
			return fail(err)
		}
	}

	for _, col := range opts.CategoricalColumns {
		counts, err := CategoryCounts(f, col, opts.TopN)
		if err != nil {
			return fail(err)
		}
		res.Categories[col] = counts
		if err := res.Workbook.AddCategorical(f, col, opts.TopN); err != nil {
			return fail(err)
		}
	}

	if opts.GroupBy != "" {
		for _, col := range opts.NumericColumns {
			groups, err := GroupedStat(f, col, opts.GroupBy, opts.GroupStat)
			if err != nil {
				return fail(err)
			}
			res.Groups[col] = groups
			if err := res.Workbook.AddGrouped(f, col, opts.GroupBy, opts.GroupStat); err != nil {
				return fail(err)
			}
		}
	}

	m, err := Correlation(f, opts.CorrelationColumns...)
	if err != nil {
		return fail(err)
	}
	res.Correlation = m
	if err := res.Workbook.AddCorrelation(f, opts.CorrelationColumns...); err != nil {
		return fail(err)
	}

	logger.InfoContext(ctx, "Analysis complete",
		slog.Int("rows", f.Len()),
		slog.Int("numeric_columns", len(opts.NumericColumns)),
		slog.Int("categorical_columns", len(opts.CategoricalColumns)),
		slog.String("group_by", opts.GroupBy),
		slog.Int("sheets", len(res.Workbook.Sheets())))
	return res, nil
}
