package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tommurray222/candid-hospitality/internal/analysis"
	apperrors "github.com/tommurray222/candid-hospitality/internal/errors"
	"github.com/tommurray222/candid-hospitality/internal/operations"
)

const (
	tableCandidates = "candidates"
	tableUsers      = "users"
)

func newDescribeCmd(root *rootOptions) *cobra.Command {
	var (
		columns []string
		table   string
		topN    int
		groupBy string
		stat    string
	)

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print summaries of selected columns",
		Long: `Cleans and prepares the input tables, then prints a descriptive summary of every numeric column and the category counts of every text column selected with --column.

With --group-by, numeric columns are also summarised per group with --stat (mean, median or mode).`,
		Example: `  candid describe --column age --column expected_salary --column department_name
  candid describe --table users --column age --group-by gender --stat median`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if table != tableCandidates && table != tableUsers {
				return fmt.Errorf("unknown table %q: want %s or %s", table, tableCandidates, tableUsers)
			}

			a, err := setup(cmd, root)
			if err != nil {
				return err
			}
			ctx := a.context(cmd.Context())
			defer a.close(ctx)

			clean, err := a.cleanStep()
			if err != nil {
				return err
			}
			prepare, err := a.prepareStep()
			if err != nil {
				return err
			}
			p, err := a.newPipeline(clean, prepare)
			if err != nil {
				return err
			}

			state := operations.NewOperationState(a.runID)
			if err := p.Run(ctx, state); err != nil {
				return err
			}
			prepared, _ := state.PreparedDataset()

			f := analysis.NewCandidateFrame(prepared.Candidates)
			if table == tableUsers {
				f = analysis.NewUserFrame(prepared.Users)
			}
			return describeColumns(a.out, f, columns, topN, groupBy, stat)
		},
	}

	cmd.Flags().StringSliceVarP(&columns, "column", "c", nil, "Column to describe (repeatable)")
	cmd.Flags().StringVar(&table, "table", tableCandidates, "Frame to describe: candidates or users")
	cmd.Flags().IntVar(&topN, "top-n", 10, "Categories shown before the rest are grouped as Other")
	cmd.Flags().StringVar(&groupBy, "group-by", "", "Categorical column to group numeric columns by")
	cmd.Flags().StringVar(&stat, "stat", analysis.StatMean, "Grouped statistic: mean, median or mode")
	_ = cmd.MarkFlagRequired("column")
	return cmd
}

// describeColumns writes one block per column to w
func describeColumns(w io.Writer, f *analysis.Frame, columns []string, topN int, groupBy, stat string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for i, col := range columns {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		if !f.HasColumn(col) {
			return apperrors.NewColumnError(f.Name(), col)
		}

		if f.IsNumeric(col) {
			if err := writeSummary(tw, f, col); err != nil {
				return err
			}
			if groupBy != "" {
				if err := writeGroups(tw, f, col, groupBy, stat); err != nil {
					return err
				}
			}
			continue
		}
		if err := writeCategories(tw, f, col, topN); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func writeSummary(w io.Writer, f *analysis.Frame, col string) error {
	s, err := analysis.Describe(f, col)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s\tcount\tmissing\tmean\tstd\tmin\tq1\tmedian\tq3\tmax\toutliers\n", col)
	fmt.Fprintf(w, "\t%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
		s.Count, s.Missing,
		formatStat(s.Mean), formatStat(s.Std), formatStat(s.Min), formatStat(s.Q1),
		formatStat(s.Median), formatStat(s.Q3), formatStat(s.Max), s.Outliers)
	return nil
}

func writeGroups(w io.Writer, f *analysis.Frame, col, groupBy, stat string) error {
	groups, err := analysis.GroupedStat(f, col, groupBy, stat)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s by %s\t%s\tcount\n", col, groupBy, stat)
	for _, g := range groups {
		fmt.Fprintf(w, "%s\t%s\t%d\n", g.Group, formatStat(g.Value), g.Count)
	}
	return nil
}

func writeCategories(w io.Writer, f *analysis.Frame, col string, topN int) error {
	counts, err := analysis.CategoryCounts(f, col, topN)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s\tcount\tpercent\n", col)
	for _, c := range counts {
		fmt.Fprintf(w, "%s\t%d\t%.1f%%\n", c.Value, c.Count, c.Percent)
	}
	return nil
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
