package domain

import "time"

// Chat senders that take part in a conversation. Other senders (for
// example system notices) are kept but ignored by chat statistics.
const (
	SenderCandidate = "candidate"
	SenderCompany   = "company"
)

// TimestampLayout is the canonical format for chat timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// Chat is a single message exchanged on a match.
type Chat struct {
	ID        int64     `json:"id" validate:"eq=-1|gt=0"`
	MatchID   int64     `json:"match_id" validate:"required,gt=0"`
	Sender    string    `json:"sender" validate:"trimmed"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message" validate:"trimmed"`
	Sentiment Sentiment `json:"sentiment"`
}

// IsParticipant reports whether the sender is the candidate or the company.
func (c Chat) IsParticipant() bool {
	return c.Sender == SenderCandidate || c.Sender == SenderCompany
}

// ChatStats summarises the conversation attached to one match.
// Response times are expressed in the unit the statistics were built with.
type ChatStats struct {
	MatchID               int64   `json:"match_id"`
	CandidateMsgs         int     `json:"candidate_msgs"`
	CompanyMsgs           int     `json:"company_msgs"`
	CandidateResponseTime float64 `json:"candidate_response_time"`
	CompanyResponseTime   float64 `json:"company_response_time"`
	Interactivity         float64 `json:"interactivity_metric"`
}

// EmptyChatStats is used for matches without any conversation.
func EmptyChatStats(matchID int64) ChatStats {
	return ChatStats{
		MatchID:               matchID,
		CandidateResponseTime: Missing,
		CompanyResponseTime:   Missing,
		Interactivity:         Missing,
	}
}

// HasMessages reports whether any participant message was counted.
func (s ChatStats) HasMessages() bool {
	return s.CandidateMsgs+s.CompanyMsgs > 0
}

// InteractivityValue returns the metric and whether it is defined. A value of
// -1 is legitimate when only the company wrote, so the message counts decide.
func (s ChatStats) InteractivityValue() (float64, bool) {
	if !s.HasMessages() {
		return 0, false
	}
	return s.Interactivity, true
}
