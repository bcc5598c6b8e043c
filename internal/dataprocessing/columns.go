package dataprocessing

import "github.com/tommurray222/candid-hospitality/pkg/contracts/domain"

// Column names shared by the cleaner and the encoders.
const (
	ColUserID         = "user_id"
	ColCandidateID    = "candidate_id"
	ColDOB            = "dob"
	ColAge            = "age"
	ColDepartmentName = "department_name"
	ColDepartment     = "department"
	ColCurrentCity    = "current_city"
	ColCity           = "city"
	ColCultureCode    = "culture_code"
	ColExpectedSalary = "expected_salary"
	ColEthnicity      = "ethnicity"
	ColGender         = "gender"
	ColCultureText    = "culture_text"
	ColLat            = "lat"
	ColLng            = "lng"

	ColMatchID = "match_id"
	ColID      = "id"
	ColJobID   = "job_id"

	ColSender    = "sender"
	ColTimestamp = "timestamp"
	ColMessage   = "message"

	ColCandidateMsgs         = "candidate_msgs"
	ColCompanyMsgs           = "company_msgs"
	ColCandidateResponseTime = "candidate_response_time"
	ColCompanyResponseTime   = "company_response_time"
	ColInteractivity         = "interactivity_metric"
)

// Aliases accepted for input columns, keyed by canonical name.
var Aliases = map[string][]string{
	ColUserID:         {ColCandidateID},
	ColMatchID:        {ColID},
	ColDepartmentName: {ColDepartment},
	ColCurrentCity:    {ColCity},
	ColLat:            {"latitude"},
	ColLng:            {"lon", "long", "longitude"},
	ColTimestamp:      {"created_at", "sent_at"},
	ColMessage:        {"text", "body"},
}

func sentimentColumns(prefix string) []string {
	return []string{prefix + "neg", prefix + "neu", prefix + "pos", prefix + "compound"}
}

func cultureColumns() []string {
	return domain.CultureComponentNames[:]
}

// UserColumns is the header of an encoded users table.
func UserColumns() []string {
	cols := []string{ColUserID, ColDOB, ColAge, ColDepartmentName, ColCurrentCity, ColCultureCode}
	cols = append(cols, cultureColumns()...)
	cols = append(cols, ColExpectedSalary, ColEthnicity, ColGender, ColCultureText)
	cols = append(cols, sentimentColumns("bio_sentiment_")...)
	return append(cols, ColLat, ColLng)
}

// MatchColumns is the header of an encoded matches table.
func MatchColumns() []string {
	cols := []string{ColMatchID, ColJobID, ColUserID}
	cols = append(cols, domain.ScoreColumns...)
	return append(cols, domain.FlagColumns...)
}

// ChatColumns is the header of an encoded chats table.
func ChatColumns() []string {
	cols := []string{ColID, ColMatchID, ColSender, ColTimestamp, ColMessage}
	return append(cols, sentimentColumns("sentiment_")...)
}

// ChatStatsColumns is the header of an encoded chat statistics table.
func ChatStatsColumns() []string {
	return []string{
		ColMatchID, ColCandidateMsgs, ColCompanyMsgs,
		ColCandidateResponseTime, ColCompanyResponseTime, ColInteractivity,
	}
}

// CandidateColumns is the header of candid_data.
func CandidateColumns() []string {
	cols := []string{ColMatchID, ColJobID, ColUserID}
	cols = append(cols, domain.ScoreColumns...)
	cols = append(cols, domain.FlagColumns...)
	cols = append(cols, ChatStatsColumns()[1:]...)
	cols = append(cols, ColEthnicity, ColGender, ColCurrentCity, ColDepartmentName, ColExpectedSalary)
	cols = append(cols, cultureColumns()...)
	cols = append(cols, ColAge, "bio_sentiment_neg", "bio_sentiment_pos", "bio_sentiment_compound")
	return append(cols, ColLat, ColLng)
}

// IssueColumns is the header of the data quality table.
func IssueColumns() []string {
	return []string{"table", "row", "column", "value", "action", "reason"}
}
