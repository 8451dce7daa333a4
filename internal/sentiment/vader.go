package sentiment

import "github.com/jonreiter/govader"

// VADER scores text with the VADER lexicon model. The analyzer is stateless
// after construction and safe for concurrent use.
type VADER struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVADER builds an analyzer with the bundled lexicon.
func NewVADER() *VADER {
	return &VADER{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the compound polarity of text.
func (v *VADER) Score(text string) float64 {
	return v.analyzer.PolarityScores(text).Compound
}
