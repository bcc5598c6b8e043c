package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

func TestEncodeUsers(t *testing.T) {
	users := []domain.User{
		{
			UserID:         1,
			DOB:            time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
			Age:            34,
			DepartmentName: "Kitchen",
			CultureCode:    "1234",
			Culture:        domain.Culture{Risk: 1, Extroversion: 2, Patience: 3, Norms: 4},
			ExpectedSalary: 25000.5,
			BioSentiment:   domain.Sentiment{Neu: 1},
			Lat:            51.5,
			Lng:            -0.12,
			HasLocation:    true,
		},
		{
			UserID:         2,
			Age:            domain.Missing,
			Culture:        domain.MissingCulture,
			ExpectedSalary: domain.Missing,
			BioSentiment:   domain.Sentiment{Neg: 1, Compound: -1},
		},
	}

	table := EncodeUsers(users)
	require.Equal(t, 2, table.Len())
	for _, row := range table.Rows {
		assert.Len(t, row, len(UserColumns()))
	}

	cell := func(row int, col string) string {
		i, err := table.Column(col)
		require.NoError(t, err)
		return table.Cell(row, i)
	}

	assert.Equal(t, "1990-05-01", cell(0, "dob"))
	assert.Equal(t, "25000.5", cell(0, "expected_salary"))
	assert.Equal(t, "3", cell(0, "patience"))
	assert.Equal(t, "-0.12", cell(0, "lng"))

	assert.Equal(t, "", cell(1, "dob"))
	assert.Equal(t, "", cell(1, "age"))
	assert.Equal(t, "", cell(1, "expected_salary"))
	assert.Equal(t, "", cell(1, "risk"))
	assert.Equal(t, "", cell(1, "lat"))
	// -1 is a real compound score, not the missing sentinel
	assert.Equal(t, "-1", cell(1, "bio_sentiment_compound"))
}

func TestEncodeMatches(t *testing.T) {
	m := domain.Match{
		MatchID: 10, JobID: domain.Missing, UserID: 1,
		Scores: domain.Scores{Overall: 80, Department: domain.Missing, Culture: 70, Competencies: 90, Compensation: 60, Benefits: 75},
		Flags:  domain.Flags{Liked: true, Progressed: true},
	}

	table := EncodeMatches([]domain.Match{m})
	assert.Equal(t, MatchColumns(), table.Header)
	assert.Equal(t, []string{"10", "", "1", "80", "", "70", "90", "60", "75", "1", "0", "1", "0"}, table.Rows[0])
}

func TestEncodeChatStats(t *testing.T) {
	stats := []domain.ChatStats{
		{MatchID: 1, CandidateMsgs: 0, CompanyMsgs: 2, CandidateResponseTime: domain.Missing, CompanyResponseTime: 1.5, Interactivity: -1},
		domain.EmptyChatStats(2),
	}

	table := EncodeChatStats(stats)
	assert.Equal(t, []string{"1", "0", "2", "", "1.5", "-1"}, table.Rows[0])
	assert.Equal(t, []string{"2", "0", "0", "", "", ""}, table.Rows[1])
}

func TestEncodeCandidates_HeaderWidth(t *testing.T) {
	rec := domain.NewCandidateRecord(
		domain.Match{MatchID: 1, JobID: 2, UserID: 3},
		domain.EmptyChatStats(1),
		domain.User{UserID: 3, Age: 30, Culture: domain.MissingCulture, ExpectedSalary: domain.Missing},
	)

	table := EncodeCandidates([]domain.CandidateRecord{rec})
	require.Equal(t, 1, table.Len())
	assert.Len(t, table.Rows[0], len(CandidateColumns()))
	assert.Contains(t, table.Header, "bio_sentiment_compound")
	assert.Contains(t, table.Header, "interactivity_metric")
}

func TestEncodeIssues(t *testing.T) {
	table := EncodeIssues([]domain.Issue{{
		Table: domain.TableUsers, Row: 3, Column: "dob", Value: "n/a",
		Action: domain.ActionFlagged, Reason: "unparseable date",
	}})
	assert.Equal(t, []string{"users", "3", "dob", "n/a", "flagged", "unparseable date"}, table.Rows[0])
}
