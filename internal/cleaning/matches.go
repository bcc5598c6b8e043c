package cleaning

import (
	"context"
	"fmt"

	"github.com/tommurray222/candid-hospitality/internal/dataprocessing"
	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

// CleanMatches cleans a matches table. Rows without valid match and user ids
// are dropped. Scores outside [0, 100] become missing and are flagged; status
// flags become booleans.
func (c *Cleaner) CleanMatches(ctx context.Context, t *dataprocessing.Table) ([]domain.Match, *domain.Report, error) {
	matchCol, err := t.Column(dataprocessing.ColMatchID, dataprocessing.Aliases[dataprocessing.ColMatchID]...)
	if err != nil {
		return nil, nil, err
	}
	userCol, err := t.Column(dataprocessing.ColUserID, dataprocessing.Aliases[dataprocessing.ColUserID]...)
	if err != nil {
		return nil, nil, err
	}
	jobCol := t.OptionalColumn(dataprocessing.ColJobID)

	scoreCols := make([]int, len(domain.ScoreColumns))
	for i, name := range domain.ScoreColumns {
		scoreCols[i] = t.OptionalColumn(name)
	}
	flagCols := make([]int, len(domain.FlagColumns))
	for i, name := range domain.FlagColumns {
		flagCols[i] = t.OptionalColumn(name)
	}

	run := newTableRun(ctx, c.logger, domain.TableMatches, t.Len())
	matches := make([]domain.Match, 0, t.Len())
	seen := make(map[int64]bool, t.Len())

	for i := range t.Rows {
		row := i + 1
		cell := func(col int) string { return t.Cell(i, col) }

		rawID := cell(matchCol)
		id, ok := ParseID(rawID)
		if !ok {
			run.drop(row, dataprocessing.ColMatchID, rawID, "match_id is not a positive integer")
			continue
		}
		if seen[id] {
			run.drop(row, dataprocessing.ColMatchID, rawID, "duplicate match_id")
			continue
		}
		rawUser := cell(userCol)
		userID, ok := ParseID(rawUser)
		if !ok {
			run.drop(row, dataprocessing.ColUserID, rawUser, "user_id is not a positive integer")
			continue
		}
		seen[id] = true

		m := domain.Match{MatchID: id, UserID: userID, JobID: domain.Missing}

		if rawJob := cell(jobCol); !IsNull(rawJob) {
			if job, ok := ParseID(rawJob); ok {
				m.JobID = job
			} else {
				run.flag(row, dataprocessing.ColJobID, rawJob, "job_id is not a positive integer")
			}
		}

		for j, dst := range m.Scores.Pointers() {
			raw := cell(scoreCols[j])
			v, present, ok := ParseAmount(raw)
			switch {
			case !present:
			case !ok:
				run.flag(row, domain.ScoreColumns[j], raw, "score is not numeric")
			case v < domain.MinScore || v > domain.MaxScore:
				run.flag(row, domain.ScoreColumns[j], raw,
					fmt.Sprintf("score outside [%d, %d]", domain.MinScore, domain.MaxScore))
				v = domain.Missing
			}
			*dst = v
		}

		for j, dst := range m.Flags.Pointers() {
			*dst = ParseFlag(cell(flagCols[j]))
		}

		if !run.checkRecord(row, m) {
			continue
		}
		run.keep()
		matches = append(matches, m)
	}

	return matches, run.done(), nil
}

// CleanMatches cleans a matches table with default options.
func CleanMatches(t *dataprocessing.Table) ([]domain.Match, *domain.Report, error) {
	return NewCleaner(Options{}).CleanMatches(context.Background(), t)
}
