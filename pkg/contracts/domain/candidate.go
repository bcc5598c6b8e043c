package domain

// CandidateRecord is one analysis-ready row: a match enriched with its chat
// statistics and the attributes of the matched user.
type CandidateRecord struct {
	MatchID int64
	JobID   int64
	UserID  int64
	Scores  Scores
	Flags   Flags
	Chat    ChatStats

	Ethnicity      string
	Gender         string
	CurrentCity    string
	DepartmentName string
	ExpectedSalary float64
	Culture        Culture
	Age            int
	BioSentiment   Sentiment

	Lat         float64
	Lng         float64
	HasLocation bool
}

// NewCandidateRecord joins a match, its chat statistics and its user.
func NewCandidateRecord(m Match, stats ChatStats, u User) CandidateRecord {
	return CandidateRecord{
		MatchID:        m.MatchID,
		JobID:          m.JobID,
		UserID:         m.UserID,
		Scores:         m.Scores,
		Flags:          m.Flags,
		Chat:           stats,
		Ethnicity:      u.Ethnicity,
		Gender:         u.Gender,
		CurrentCity:    u.CurrentCity,
		DepartmentName: u.DepartmentName,
		ExpectedSalary: u.ExpectedSalary,
		Culture:        u.Culture,
		Age:            u.Age,
		BioSentiment:   u.BioSentiment,
		Lat:            u.Lat,
		Lng:            u.Lng,
		HasLocation:    u.HasLocation,
	}
}
