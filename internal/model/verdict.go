package model

// Category classifies a symbol for alerting.
type Category int

const (
	CategoryNeutral Category = iota
	CategoryOpportunity
	CategoryDangerous
	CategoryBigMover
)

// String returns the category's metrics label.
func (c Category) String() string {
	switch c {
	case CategoryOpportunity:
		return "opportunity"
	case CategoryDangerous:
		return "dangerous"
	case CategoryBigMover:
		return "big_mover"
	default:
		return "neutral"
	}
}

// NewsItem is one keyword-matched headline with its sentiment score and the
// rationale attached by the matching rule.
type NewsItem struct {
	Text        string
	Keyword     string
	Explanation string
	Sentiment   float64
}

// Verdict is the classified outcome for one symbol in one poll cycle. News
// holds the cycle's shared pool, so AvgSentiment is identical across all
// symbols of a cycle.
type Verdict struct {
	Symbol       string
	Category     Category
	Indicators   IndicatorSet
	News         []NewsItem
	AvgSentiment float64
}
