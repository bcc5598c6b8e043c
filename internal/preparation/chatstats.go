package preparation

import (
	"fmt"
	"sort"

	apperrors "github.com/tommurray222/candid-hospitality/internal/errors"
	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

// Response time units.
const (
	UnitSeconds = "s"
	UnitMinutes = "m"
	UnitHours   = "h"
)

var unitSeconds = map[string]float64{
	UnitSeconds: 1,
	UnitMinutes: 60,
	UnitHours:   3600,
}

// UnitDivisor returns the number of seconds in unit.
func UnitDivisor(unit string) (float64, error) {
	d, ok := unitSeconds[unit]
	if !ok {
		return 0, apperrors.NewAppValidationError(fmt.Sprintf("unknown response time unit %q (want s, m or h)", unit))
	}
	return d, nil
}

// ChatStats summarises the conversation of each match. Only candidate and
// company messages are considered, and all of them are counted. Messages
// with a timestamp are ordered by time and, whenever the sender changes,
// the gap is attributed to the party that replied. Response times are means in unit. The result is sorted by
// match id and contains only matches with at least one counted message.
func ChatStats(chats []domain.Chat, unit string) ([]domain.ChatStats, error) {
	divisor, err := UnitDivisor(unit)
	if err != nil {
		return nil, err
	}

	byMatch := make(map[int64][]domain.Chat)
	for _, c := range chats {
		if !c.IsParticipant() {
			continue
		}
		byMatch[c.MatchID] = append(byMatch[c.MatchID], c)
	}

	out := make([]domain.ChatStats, 0, len(byMatch))
	for matchID, msgs := range byMatch {
		out = append(out, conversationStats(matchID, msgs, divisor))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchID < out[j].MatchID })
	return out, nil
}

func conversationStats(matchID int64, msgs []domain.Chat, divisor float64) domain.ChatStats {
	stats := domain.EmptyChatStats(matchID)

	// every message counts; only timed ones take part in reply pairing
	timed := make([]domain.Chat, 0, len(msgs))
	for _, m := range msgs {
		if m.Sender == domain.SenderCandidate {
			stats.CandidateMsgs++
		} else {
			stats.CompanyMsgs++
		}
		if !m.Timestamp.IsZero() {
			timed = append(timed, m)
		}
	}
	sort.SliceStable(timed, func(i, j int) bool { return timed[i].Timestamp.Before(timed[j].Timestamp) })

	var candTotal, compTotal float64
	var candN, compN int

	for i, m := range timed {
		if i == 0 || timed[i-1].Sender == m.Sender {
			continue
		}
		gap := m.Timestamp.Sub(timed[i-1].Timestamp).Seconds()
		if m.Sender == domain.SenderCandidate {
			candTotal += gap
			candN++
		} else {
			compTotal += gap
			compN++
		}
	}

	if candN > 0 {
		stats.CandidateResponseTime = candTotal / float64(candN) / divisor
	}
	if compN > 0 {
		stats.CompanyResponseTime = compTotal / float64(compN) / divisor
	}
	total := stats.CandidateMsgs + stats.CompanyMsgs
	stats.Interactivity = float64(stats.CandidateMsgs-stats.CompanyMsgs) / float64(total)
	return stats
}
