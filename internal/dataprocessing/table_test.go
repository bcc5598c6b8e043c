package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tommurray222/candid-hospitality/internal/errors"
)

func TestTable_Column(t *testing.T) {
	table := NewTable("matches", []string{"ID", "Candidate ID", "score_overall"}, [][]string{{"1", "2", "80"}})

	tests := []struct {
		name    string
		column  string
		aliases []string
		want    int
		wantErr bool
	}{
		{name: "exact", column: "score_overall", want: 2},
		{name: "case insensitive", column: "id", want: 0},
		{name: "alias", column: "match_id", aliases: []string{"id"}, want: 0},
		{name: "spaces become underscores", column: "candidate_id", want: 1},
		{name: "missing", column: "job_id", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Column(tt.column, tt.aliases...)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeColumn))
				assert.Contains(t, err.Error(), "job_id")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, -1, table.OptionalColumn("lat", "latitude"))
}

func TestNewTable_PadsAndTruncates(t *testing.T) {
	table := NewTable("t", []string{"a", "b", "c"}, [][]string{{"1"}, {"1", "2", "3", "4"}})

	assert.Equal(t, []string{"1", "", ""}, table.Rows[0])
	assert.Equal(t, []string{"1", "2", "3"}, table.Rows[1])
	assert.Equal(t, "", table.Cell(0, -1))
	assert.Equal(t, "2", table.Cell(1, 1))
	assert.Equal(t, 2, table.Len())
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "user_id", NormalizeHeader("\ufeffUser ID"))
	assert.Equal(t, "expected_salary", NormalizeHeader("  Expected   Salary "))
}
