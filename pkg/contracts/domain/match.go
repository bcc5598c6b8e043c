package domain

// MinScore and MaxScore bound every match score.
const (
	MinScore = 0
	MaxScore = 100
)

// Scores are the compatibility scores computed for a match.
type Scores struct {
	Overall      float64 `json:"score_overall" validate:"score"`
	Department   float64 `json:"score_department" validate:"score"`
	Culture      float64 `json:"score_culture" validate:"score"`
	Competencies float64 `json:"score_competencies" validate:"score"`
	Compensation float64 `json:"score_compensation" validate:"score"`
	Benefits     float64 `json:"score_benefits" validate:"score"`
}

// ScoreColumns lists score column names in the order Values returns them.
var ScoreColumns = []string{
	"score_overall",
	"score_department",
	"score_culture",
	"score_competencies",
	"score_compensation",
	"score_benefits",
}

// Values returns the scores in ScoreColumns order.
func (s Scores) Values() []float64 {
	return []float64{s.Overall, s.Department, s.Culture, s.Competencies, s.Compensation, s.Benefits}
}

// Pointers returns addressable scores in ScoreColumns order.
func (s *Scores) Pointers() []*float64 {
	return []*float64{&s.Overall, &s.Department, &s.Culture, &s.Competencies, &s.Compensation, &s.Benefits}
}

// Match pairs a job posting with a candidate.
type Match struct {
	MatchID int64  `json:"match_id" validate:"required,gt=0"`
	JobID   int64  `json:"job_id" validate:"eq=-1|gt=0"`
	UserID  int64  `json:"user_id" validate:"required,gt=0"`
	Scores  Scores `json:"scores"`
	Flags   Flags  `json:"flags"`
}

// Flags record what happened to a match. They are not mutually exclusive.
type Flags struct {
	Liked      bool `json:"liked"`
	Disliked   bool `json:"disliked"`
	Progressed bool `json:"progressed"`
	Rejected   bool `json:"rejected"`
}

// FlagColumns lists flag column names in the order Values returns them.
var FlagColumns = []string{"liked", "disliked", "progressed", "rejected"}

// Values returns the flags in FlagColumns order.
func (f Flags) Values() []bool {
	return []bool{f.Liked, f.Disliked, f.Progressed, f.Rejected}
}

// Pointers returns addressable flags in FlagColumns order.
func (f *Flags) Pointers() []*bool {
	return []*bool{&f.Liked, &f.Disliked, &f.Progressed, &f.Rejected}
}
