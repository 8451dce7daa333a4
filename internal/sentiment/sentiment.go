// Package sentiment scores free text for polarity.
package sentiment

// Scorer maps text to a compound polarity score in [-1, 1].
type Scorer interface {
	Score(text string) float64
}
