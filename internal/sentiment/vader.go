package sentiment

import "github.com/jonreiter/govader"

// VaderAnalyzer wraps the VADER rule-based analyzer, tuned for short
// social and news text.
type VaderAnalyzer struct {
	sia *govader.SentimentIntensityAnalyzer
}

func NewVaderAnalyzer() *VaderAnalyzer {
	return &VaderAnalyzer{sia: govader.NewSentimentIntensityAnalyzer()}
}

// Compound returns VADER's normalized compound score.
func (v *VaderAnalyzer) Compound(text string) float64 {
	return v.sia.PolarityScores(text).Compound
}
