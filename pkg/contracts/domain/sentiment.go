package domain

// Sentiment holds lexicon polarity scores for a piece of free text.
// Neg, Neu and Pos are proportions in [0, 1]; Compound is normalised to [-1, 1].
type Sentiment struct {
	Neg      float64 `json:"neg" validate:"gte=0,lte=1"`
	Neu      float64 `json:"neu" validate:"gte=0,lte=1"`
	Pos      float64 `json:"pos" validate:"gte=0,lte=1"`
	Compound float64 `json:"compound" validate:"gte=-1,lte=1"`
}

// IsZero reports whether no text was scored.
func (s Sentiment) IsZero() bool {
	return s == Sentiment{}
}
