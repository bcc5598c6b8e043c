package preparation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tommurray222/candid-hospitality/internal/errors"
	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

var t0 = time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)

func msg(matchID int64, sender string, offset time.Duration) domain.Chat {
	return domain.Chat{ID: domain.Missing, MatchID: matchID, Sender: sender, Timestamp: t0.Add(offset)}
}

func TestChatStats_KnownConversation(t *testing.T) {
	// out of order on purpose: stats sort by timestamp
	chats := []domain.Chat{
		msg(10, domain.SenderCandidate, 30*time.Minute),
		msg(10, domain.SenderCompany, 0),
		msg(10, domain.SenderCandidate, 100*time.Minute),
		msg(10, "system", 101*time.Minute),
		msg(10, domain.SenderCompany, 90*time.Minute),
	}

	tests := []struct {
		unit     string
		wantCand float64
		wantComp float64
	}{
		{UnitSeconds, 1200, 3600},
		{UnitMinutes, 20, 60},
		{UnitHours, 1.0 / 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			stats, err := ChatStats(chats, tt.unit)
			require.NoError(t, err)
			require.Len(t, stats, 1)

			s := stats[0]
			assert.Equal(t, int64(10), s.MatchID)
			assert.Equal(t, 2, s.CandidateMsgs)
			assert.Equal(t, 2, s.CompanyMsgs)
			assert.InDelta(t, tt.wantCand, s.CandidateResponseTime, 1e-9)
			assert.InDelta(t, tt.wantComp, s.CompanyResponseTime, 1e-9)
			metric, ok := s.InteractivityValue()
			assert.True(t, ok)
			assert.Equal(t, 0.0, metric)
		})
	}
}

func TestChatStats_Consecutive(t *testing.T) {
	// two candidate messages in a row: only the first reply counts
	chats := []domain.Chat{
		msg(7, domain.SenderCompany, 0),
		msg(7, domain.SenderCandidate, 10*time.Minute),
		msg(7, domain.SenderCandidate, 50*time.Minute),
	}
	stats, err := ChatStats(chats, UnitMinutes)
	require.NoError(t, err)
	require.Len(t, stats, 1)

	assert.Equal(t, 10.0, stats[0].CandidateResponseTime)
	assert.Equal(t, float64(domain.Missing), stats[0].CompanyResponseTime)
	assert.InDelta(t, 1.0/3, stats[0].Interactivity, 1e-9)
}

func TestChatStats_Filtering(t *testing.T) {
	chats := []domain.Chat{
		msg(2, domain.SenderCompany, 0),
		{MatchID: 2, Sender: domain.SenderCandidate},
		msg(3, "system", 0),
		msg(1, domain.SenderCandidate, 0),
	}
	stats, err := ChatStats(chats, UnitMinutes)
	require.NoError(t, err)
	require.Len(t, stats, 2, "system-only match has no stats")

	assert.Equal(t, int64(1), stats[0].MatchID)
	assert.Equal(t, int64(2), stats[1].MatchID)

	untimed := stats[1]
	assert.Equal(t, 1, untimed.CandidateMsgs, "message without timestamp still counts")
	assert.Equal(t, 1, untimed.CompanyMsgs)
	assert.Equal(t, float64(domain.Missing), untimed.CandidateResponseTime, "untimed message is not a reply")
	metric, ok := untimed.InteractivityValue()
	assert.True(t, ok)
	assert.Equal(t, 0.0, metric)

	assert.Equal(t, 1.0, stats[0].Interactivity)
}

func TestChatStats_UntimedMessageSkippedInPairing(t *testing.T) {
	chats := []domain.Chat{
		msg(1, domain.SenderCompany, 0),
		{MatchID: 1, Sender: domain.SenderCandidate},
		msg(1, domain.SenderCompany, 10*time.Minute),
		msg(1, domain.SenderCandidate, 30*time.Minute),
	}
	stats, err := ChatStats(chats, UnitMinutes)
	require.NoError(t, err)
	require.Len(t, stats, 1)

	assert.Equal(t, 2, stats[0].CandidateMsgs)
	assert.Equal(t, 2, stats[0].CompanyMsgs)
	assert.InDelta(t, 20.0, stats[0].CandidateResponseTime, 1e-9)
	assert.Equal(t, float64(domain.Missing), stats[0].CompanyResponseTime)
	assert.Equal(t, 0.0, stats[0].Interactivity)
}

func TestChatStats_InteractivityRange(t *testing.T) {
	var chats []domain.Chat
	for i := 0; i < 7; i++ {
		sender := domain.SenderCompany
		if i%3 == 0 {
			sender = domain.SenderCandidate
		}
		chats = append(chats, msg(int64(i%2+1), sender, time.Duration(i)*time.Minute))
	}
	stats, err := ChatStats(chats, UnitSeconds)
	require.NoError(t, err)
	for _, s := range stats {
		assert.GreaterOrEqual(t, s.Interactivity, -1.0)
		assert.LessOrEqual(t, s.Interactivity, 1.0)
	}
}

func TestChatStats_UnknownUnit(t *testing.T) {
	_, err := ChatStats(nil, "d")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}
