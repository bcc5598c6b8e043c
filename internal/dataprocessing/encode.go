package dataprocessing

import (
	"strconv"

	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

func formatSentiment(s domain.Sentiment) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return []string{f(s.Neg), f(s.Neu), f(s.Pos), f(s.Compound)}
}

func formatCulture(c domain.Culture) []string {
	out := make([]string, 0, 4)
	for _, v := range c.Components() {
		out = append(out, FormatInt(int64(v)))
	}
	return out
}

func formatStats(s domain.ChatStats) []string {
	metric := ""
	if v, ok := s.InteractivityValue(); ok {
		metric = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return []string{
		strconv.Itoa(s.CandidateMsgs),
		strconv.Itoa(s.CompanyMsgs),
		FormatFloat(s.CandidateResponseTime),
		FormatFloat(s.CompanyResponseTime),
		metric,
	}
}

// EncodeUsers renders users in UserColumns order.
func EncodeUsers(users []domain.User) *Table {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		row := []string{
			FormatInt(u.UserID),
			FormatTime(u.DOB, domain.DateLayout),
			FormatInt(int64(u.Age)),
			u.DepartmentName,
			u.CurrentCity,
			u.CultureCode,
		}
		row = append(row, formatCulture(u.Culture)...)
		row = append(row, FormatFloat(u.ExpectedSalary), u.Ethnicity, u.Gender, u.CultureText)
		row = append(row, formatSentiment(u.BioSentiment)...)
		row = append(row, FormatCoordinate(u.Lat, u.HasLocation), FormatCoordinate(u.Lng, u.HasLocation))
		rows = append(rows, row)
	}
	return NewTable(domain.TableUsers, UserColumns(), rows)
}

// EncodeMatches renders matches in MatchColumns order.
func EncodeMatches(matches []domain.Match) *Table {
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		row := []string{FormatInt(m.MatchID), FormatInt(m.JobID), FormatInt(m.UserID)}
		for _, s := range m.Scores.Values() {
			row = append(row, FormatFloat(s))
		}
		for _, f := range m.Flags.Values() {
			row = append(row, FormatBool(f))
		}
		rows = append(rows, row)
	}
	return NewTable(domain.TableMatches, MatchColumns(), rows)
}

// EncodeChats renders chats in ChatColumns order.
func EncodeChats(chats []domain.Chat) *Table {
	rows := make([][]string, 0, len(chats))
	for _, c := range chats {
		row := []string{
			FormatInt(c.ID),
			FormatInt(c.MatchID),
			c.Sender,
			FormatTime(c.Timestamp, domain.TimestampLayout),
			c.Message,
		}
		row = append(row, formatSentiment(c.Sentiment)...)
		rows = append(rows, row)
	}
	return NewTable(domain.TableChats, ChatColumns(), rows)
}

// EncodeChatStats renders chat statistics in ChatStatsColumns order.
func EncodeChatStats(stats []domain.ChatStats) *Table {
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, append([]string{FormatInt(s.MatchID)}, formatStats(s)...))
	}
	return NewTable("chat_stats", ChatStatsColumns(), rows)
}

// EncodeCandidates renders prepared records in CandidateColumns order.
func EncodeCandidates(records []domain.CandidateRecord) *Table {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := []string{FormatInt(r.MatchID), FormatInt(r.JobID), FormatInt(r.UserID)}
		for _, s := range r.Scores.Values() {
			row = append(row, FormatFloat(s))
		}
		for _, f := range r.Flags.Values() {
			row = append(row, FormatBool(f))
		}
		row = append(row, formatStats(r.Chat)...)
		row = append(row, r.Ethnicity, r.Gender, r.CurrentCity, r.DepartmentName, FormatFloat(r.ExpectedSalary))
		row = append(row, formatCulture(r.Culture)...)
		sentiment := formatSentiment(r.BioSentiment)
		row = append(row, FormatInt(int64(r.Age)), sentiment[0], sentiment[2], sentiment[3])
		row = append(row, FormatCoordinate(r.Lat, r.HasLocation), FormatCoordinate(r.Lng, r.HasLocation))
		rows = append(rows, row)
	}
	return NewTable("candid_data", CandidateColumns(), rows)
}

// EncodeIssues renders a data quality report's issues.
func EncodeIssues(issues []domain.Issue) *Table {
	rows := make([][]string, 0, len(issues))
	for _, i := range issues {
		rows = append(rows, []string{i.Table, strconv.Itoa(i.Row), i.Column, i.Value, string(i.Action), i.Reason})
	}
	return NewTable("data_quality", IssueColumns(), rows)
}
