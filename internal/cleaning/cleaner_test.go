package cleaning

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tommurray222/candid-hospitality/internal/dataprocessing"
	apperrors "github.com/tommurray222/candid-hospitality/internal/errors"
	"github.com/tommurray222/candid-hospitality/internal/shared/testutil"
	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

func newTestCleaner(t *testing.T, accounts ...int64) (*Cleaner, *testutil.BufferedSlogHandler) {
	logger, logs := testutil.NewTestLogger(t)
	return NewCleaner(Options{TestAccounts: accounts, Logger: logger}), logs
}

func usersByID(users []domain.User) map[int64]domain.User {
	out := make(map[int64]domain.User, len(users))
	for _, u := range users {
		out[u.UserID] = u
	}
	return out
}

func matchesByID(matches []domain.Match) map[int64]domain.Match {
	out := make(map[int64]domain.Match, len(matches))
	for _, m := range matches {
		out[m.MatchID] = m
	}
	return out
}

func TestCleanUsers(t *testing.T) {
	c, logs := newTestCleaner(t, testutil.TestAccountID)
	users, report, err := c.CleanUsers(context.Background(), testutil.Table(t, "users", testutil.UsersCSV))
	require.NoError(t, err)

	assert.Equal(t, domain.TableCounts{Read: 7, Kept: 4, Dropped: 3, Flagged: 3}, *report.Counts[domain.TableUsers])
	byID := usersByID(users)
	require.Len(t, byID, 4)

	t.Run("clean row", func(t *testing.T) {
		u := byID[1]
		assert.Equal(t, time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC), u.DOB)
		assert.Equal(t, domain.Missing, u.Age)
		assert.Equal(t, "Front Of House", u.DepartmentName)
		assert.Equal(t, "London", u.CurrentCity)
		assert.Equal(t, "1234", u.CultureCode)
		assert.Equal(t, domain.Culture{Risk: 1, Extroversion: 2, Patience: 3, Norms: 4}, u.Culture)
		assert.Equal(t, 28000.0, u.ExpectedSalary)
		assert.Equal(t, "white british", u.Ethnicity)
		assert.Equal(t, "female", u.Gender)
		assert.True(t, u.HasLocation)
		assert.InDelta(t, 51.5074, u.Lat, 1e-9)
		assert.Greater(t, u.BioSentiment.Compound, 0.0)
	})

	t.Run("missing salary stays missing without a flag", func(t *testing.T) {
		u := byID[2]
		assert.Equal(t, float64(domain.Missing), u.ExpectedSalary)
		assert.Equal(t, time.Date(1985, 6, 12, 0, 0, 0, 0, time.UTC), u.DOB)
		assert.Equal(t, "Hardworking chef.", u.CultureText)
		assert.Equal(t, "", u.CultureCode)
		assert.Equal(t, domain.MissingCulture, u.Culture)
	})

	t.Run("malformed values are flagged", func(t *testing.T) {
		assert.True(t, byID[3].DOB.IsZero())
		assert.Equal(t, "2345", byID[3].CultureCode)
		assert.Equal(t, float64(domain.Missing), byID[3].ExpectedSalary)
		assert.False(t, byID[3].HasLocation)

		assert.Equal(t, float64(domain.Missing), byID[4].ExpectedSalary)
		assert.False(t, byID[4].HasLocation)
		assert.Equal(t, "non-binary", byID[4].Gender)

		flagged := map[string]int{}
		for _, issue := range report.IssuesFor(domain.TableUsers) {
			if issue.Action == domain.ActionFlagged {
				flagged[issue.Column]++
			}
		}
		assert.Equal(t, map[string]int{
			"culture_code":    1,
			"dob":             1,
			"expected_salary": 2,
			"lat,lng":         1,
		}, flagged)
	})

	t.Run("dropped rows", func(t *testing.T) {
		var reasons []string
		for _, issue := range report.IssuesFor(domain.TableUsers) {
			if issue.Action == domain.ActionDropped {
				reasons = append(reasons, issue.Reason)
			}
		}
		assert.ElementsMatch(t, []string{"test account", "user_id is not a positive integer", "duplicate user_id"}, reasons)
	})

	testutil.AssertLogContains(t, logs, slog.LevelWarn, "Data quality issue")
	testutil.AssertLogAttr(t, logs, "component", "cleaning")
	testutil.AssertLogAttr(t, logs, "table", domain.TableUsers)
}

func TestCleanUsers_TextIsTrimmed(t *testing.T) {
	users, _, err := CleanUsers(testutil.Table(t, "users", testutil.UsersCSV))
	require.NoError(t, err)

	for _, u := range users {
		for _, s := range []string{u.DepartmentName, u.CurrentCity, u.Ethnicity, u.Gender, u.CultureText} {
			assert.Equal(t, strings.TrimSpace(s), s)
			assert.NotContains(t, s, "  ")
		}
		assert.GreaterOrEqual(t, u.BioSentiment.Compound, -1.0)
		assert.LessOrEqual(t, u.BioSentiment.Compound, 1.0)
	}
}

func TestCleanMatches(t *testing.T) {
	c, _ := newTestCleaner(t)
	matches, report, err := c.CleanMatches(context.Background(), testutil.Table(t, "matches", testutil.MatchesCSV))
	require.NoError(t, err)

	assert.Equal(t, domain.TableCounts{Read: 7, Kept: 6, Dropped: 1, Flagged: 2}, *report.Counts[domain.TableMatches])
	byID := matchesByID(matches)

	assert.Equal(t, domain.Match{
		MatchID: 10,
		JobID:   100,
		UserID:  1,
		Scores:  domain.Scores{Overall: 80, Department: 85, Culture: 70, Competencies: 90, Compensation: 60, Benefits: 75},
		Flags:   domain.Flags{Liked: true, Progressed: true},
	}, byID[10])

	m := byID[11]
	assert.Equal(t, 65.5, m.Scores.Overall)
	assert.Equal(t, float64(domain.Missing), m.Scores.Department)
	assert.Equal(t, float64(domain.Missing), m.Scores.Culture)
	assert.Equal(t, domain.Flags{Disliked: true, Rejected: true}, m.Flags)

	assert.Equal(t, float64(domain.Missing), byID[12].Scores.Overall)
	assert.Equal(t, domain.Flags{Liked: true, Progressed: true}, byID[13].Flags)
	assert.Equal(t, int64(domain.Missing), byID[15].JobID)
	assert.True(t, byID[15].Flags.Liked)

	for _, m := range matches {
		for _, s := range m.Scores.Values() {
			if !domain.IsMissing(s) {
				assert.GreaterOrEqual(t, s, float64(domain.MinScore))
				assert.LessOrEqual(t, s, float64(domain.MaxScore))
			}
		}
	}
}

func TestCleanChats(t *testing.T) {
	c, _ := newTestCleaner(t)
	chats, report, err := c.CleanChats(context.Background(), testutil.Table(t, "chats", testutil.ChatsCSV))
	require.NoError(t, err)

	assert.Equal(t, domain.TableCounts{Read: 9, Kept: 8, Dropped: 1, Flagged: 1}, *report.Counts[domain.TableChats])
	require.Len(t, chats, 8)

	first := chats[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(10), first.MatchID)
	assert.Equal(t, domain.SenderCompany, first.Sender)
	assert.Equal(t, time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC), first.Timestamp)
	assert.Greater(t, first.Sentiment.Compound, 0.0)

	assert.Equal(t, domain.SenderCandidate, chats[3].Sender)
	assert.True(t, chats[6].Timestamp.IsZero())
	assert.Equal(t, "ok", chats[6].Message)
	assert.Less(t, chats[5].Sentiment.Compound, 0.0)
}

func TestClean_MissingRequiredColumn(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(raw *dataprocessing.RawDataset)
		prefix string
		column string
	}{
		{
			name: "users without user_id",
			mutate: func(raw *dataprocessing.RawDataset) {
				raw.Users = dataprocessing.NewTable("users", []string{"dob"}, [][]string{{"1990-01-01"}})
			},
			prefix: "clean users",
			column: "user_id",
		},
		{
			name: "matches without candidate",
			mutate: func(raw *dataprocessing.RawDataset) {
				raw.Matches = dataprocessing.NewTable("matches", []string{"id", "job_id"}, [][]string{{"1", "2"}})
			},
			prefix: "clean matches",
			column: "user_id",
		},
		{
			name: "chats without match_id",
			mutate: func(raw *dataprocessing.RawDataset) {
				raw.Chats = dataprocessing.NewTable("chats", []string{"id", "message"}, [][]string{{"1", "hi"}})
			},
			prefix: "clean chats",
			column: "match_id",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := testutil.RawDataset(t)
			tt.mutate(raw)

			c, _ := newTestCleaner(t)
			_, _, err := c.Clean(context.Background(), raw)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeColumn))
			assert.True(t, strings.HasPrefix(err.Error(), tt.prefix))
			assert.Contains(t, err.Error(), tt.column)
		})
	}
}

func TestClean_RemovesTestAccountActivity(t *testing.T) {
	c, logs := newTestCleaner(t, testutil.TestAccountID)
	clean, report, err := c.Clean(context.Background(), testutil.RawDataset(t))
	require.NoError(t, err)

	for _, u := range clean.Users {
		assert.NotEqual(t, testutil.TestAccountID, u.UserID)
	}
	for _, m := range clean.Matches {
		assert.NotEqual(t, testutil.TestAccountID, m.UserID)
	}
	for _, ch := range clean.Chats {
		assert.NotEqual(t, int64(14), ch.MatchID)
	}

	assert.Len(t, clean.Users, 4)
	assert.Len(t, clean.Matches, 5)
	assert.Len(t, clean.Chats, 7)

	assert.Equal(t, domain.TableCounts{Read: 7, Kept: 5, Dropped: 2, Flagged: 2}, *report.Counts[domain.TableMatches])
	assert.Equal(t, domain.TableCounts{Read: 9, Kept: 7, Dropped: 2, Flagged: 1}, *report.Counts[domain.TableChats])

	var testIssue *domain.Issue
	for _, issue := range report.IssuesFor(domain.TableMatches) {
		if issue.Reason == "test account" {
			testIssue = &issue
		}
	}
	require.NotNil(t, testIssue)
	assert.Equal(t, 14, testIssue.Row)
	assert.Equal(t, domain.ActionDropped, testIssue.Action)

	testutil.AssertLogContains(t, logs, slog.LevelInfo, "Removed test account activity")
	testutil.AssertNoErrors(t, logs)
}

func TestClean_Idempotent(t *testing.T) {
	c, _ := newTestCleaner(t, testutil.TestAccountID)
	ctx := context.Background()

	first, _, err := c.Clean(ctx, testutil.RawDataset(t))
	require.NoError(t, err)

	reencoded := &dataprocessing.RawDataset{
		Users:   dataprocessing.EncodeUsers(first.Users),
		Matches: dataprocessing.EncodeMatches(first.Matches),
		Chats:   dataprocessing.EncodeChats(first.Chats),
	}
	second, report, err := c.Clean(ctx, reencoded)
	require.NoError(t, err)

	assert.Equal(t, first.Users, second.Users)
	assert.Equal(t, first.Matches, second.Matches)
	assert.Equal(t, first.Chats, second.Chats)
	assert.Empty(t, report.Issues, "cleaned data should not raise new issues")
}

func TestClean_IdempotentOnPaddedNullTokens(t *testing.T) {
	c, _ := newTestCleaner(t)
	ctx := context.Background()

	users := dataprocessing.NewTable("users",
		[]string{"candidate_id", "dob", "department", "city", "culture_code", "expected_salary", "ethnicity", "gender", "culture_text", "lat", "lng"},
		[][]string{
			{"1", "1990-05-01", "N/A\u200b", "null\x07", "1234", "20000", "", "None\u200b", "nan\a", "", ""},
			{"2", "1991-05-01", "Bar", "Leeds", "1234", "20000", "", "female", "Friendly and reliable", "", ""},
		})
	chats := dataprocessing.NewTable("chats",
		[]string{"id", "match_id", "sender", "timestamp", "message"},
		[][]string{{"1", "10", "candidate", "2024-01-03 10:00:00", "NaN\ufeff"}})
	raw := &dataprocessing.RawDataset{
		Users:   users,
		Matches: testutil.Table(t, "matches", testutil.MatchesCSV),
		Chats:   chats,
	}

	first, _, err := c.Clean(ctx, raw)
	require.NoError(t, err)
	u := usersByID(first.Users)[1]
	assert.Empty(t, u.DepartmentName)
	assert.Empty(t, u.CurrentCity)
	assert.Empty(t, u.Gender)
	assert.Empty(t, u.CultureText)
	assert.Equal(t, domain.Sentiment{}, u.BioSentiment)
	require.Len(t, first.Chats, 1)
	assert.Empty(t, first.Chats[0].Message)

	second, _, err := c.Clean(ctx, &dataprocessing.RawDataset{
		Users:   dataprocessing.EncodeUsers(first.Users),
		Matches: dataprocessing.EncodeMatches(first.Matches),
		Chats:   dataprocessing.EncodeChats(first.Chats),
	})
	require.NoError(t, err)
	assert.Equal(t, first.Users, second.Users)
	assert.Equal(t, first.Chats, second.Chats)
}
