package cleaning

import (
	"math"
	"strings"
	"unicode"

	"github.com/jonreiter/govader"

	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

// SentimentScorer assigns polarity scores to free text.
type SentimentScorer interface {
	Score(text string) domain.Sentiment
}

// VaderScorer scores text with the VADER lexicon and rules (negation,
// boosters, "but" clauses, caps and punctuation emphasis).
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer loads the VADER lexicon. Load it once per run and share it.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns neg/neu/pos proportions and the compound score. Text with no
// letters scores all zeros, as a missing bio does.
func (s *VaderScorer) Score(text string) domain.Sentiment {
	if !strings.ContainsFunc(text, unicode.IsLetter) {
		return domain.Sentiment{}
	}
	p := s.analyzer.PolarityScores(text)
	return domain.Sentiment{
		Neg:      clamp(p.Negative, 0, 1),
		Neu:      clamp(p.Neutral, 0, 1),
		Pos:      clamp(p.Positive, 0, 1),
		Compound: clamp(p.Compound, -1, 1),
	}
}

// clamp also maps NaN to lo so scores always validate.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
