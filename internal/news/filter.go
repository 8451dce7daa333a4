package news

import (
	"NepseSentinel/internal/model"
	"NepseSentinel/internal/sentiment"
)

// Filter matches headlines against the taxonomy in rule order. The first
// matching rule claims a headline; headlines matching no rule are dropped.
// Each surviving headline is scored once.
func Filter(headlines []string, rules []Rule, scorer sentiment.Scorer) []model.NewsItem {
	items := make([]model.NewsItem, 0, len(headlines))
	for _, text := range headlines {
		for _, rule := range rules {
			if !rule.Pattern.MatchString(text) {
				continue
			}
			items = append(items, model.NewsItem{
				Text:        text,
				Keyword:     rule.Keyword,
				Explanation: rule.Explanation,
				Sentiment:   scorer.Score(text),
			})
			break
		}
	}
	return items
}
