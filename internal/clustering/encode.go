package clustering

import (
	"fmt"
	"sort"

	"github.com/tommurray222/candid-hospitality/internal/analysis"
	apperrors "github.com/tommurray222/candid-hospitality/internal/errors"
	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

// MaxOneHotCategories bounds the number of indicator columns OneHot adds.
const MaxOneHotCategories = 20

// priority ranks a record for ConcatUsers.
func priority(r domain.CandidateRecord) int {
	switch {
	case r.Flags.Progressed:
		return 2
	case r.Flags.Rejected:
		return 1
	default:
		return 0
	}
}

// ConcatUsers keeps one record per user: a progressed match if there is
// one, else a rejected match, else the first match. Output is ordered by
// user id and the input is not modified.
func ConcatUsers(records []domain.CandidateRecord) []domain.CandidateRecord {
	sorted := make([]domain.CandidateRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].UserID != sorted[j].UserID {
			return sorted[i].UserID < sorted[j].UserID
		}
		return priority(sorted[i]) > priority(sorted[j])
	})

	out := make([]domain.CandidateRecord, 0, len(sorted))
	for i, r := range sorted {
		if i > 0 && r.UserID == sorted[i-1].UserID {
			continue
		}
		out = append(out, r)
	}
	return out
}

// OneHot adds one <prefix>_<value> column per distinct non-empty value of
// col, in sorted order. A row holds weight in the column of its value and 0
// elsewhere; rows with an empty value are 0 everywhere. More than
// MaxOneHotCategories distinct values is a validation error.
func OneHot(f *analysis.Frame, col, prefix string, weight float64) ([]string, error) {
	values, err := f.Categorical(col)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, v := range values {
		if v != "" {
			seen[v] = true
		}
	}
	if len(seen) > MaxOneHotCategories {
		return nil, apperrors.NewAppValidationError(
			fmt.Sprintf("one-hot %s: %d categories, at most %d allowed", col, len(seen), MaxOneHotCategories))
	}

	categories := make([]string, 0, len(seen))
	for v := range seen {
		categories = append(categories, v)
	}
	sort.Strings(categories)

	added := make([]string, 0, len(categories))
	for _, c := range categories {
		indicator := make([]float64, len(values))
		for i, v := range values {
			if v == c {
				indicator[i] = weight
			}
		}
		name := prefix + "_" + c
		f.AddRawNumeric(name, indicator)
		added = append(added, name)
	}
	return added, nil
}
