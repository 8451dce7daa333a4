// Package strategy turns indicators and news into alert verdicts.
package strategy

import "NepseSentinel/internal/model"

// Classification thresholds.
const (
	dangerSentiment      = -0.5
	opportunityRSI       = 30.0
	opportunitySentiment = 0.3
	minVolatilityPct     = 5.0
)

// Classify combines one symbol's indicators with the cycle's news pool into
// a Verdict. Rules are checked in fixed priority order: dangerous news
// trumps an opportunity, which trumps a big mover. The news pool is shared
// by every symbol in the cycle, so AvgSentiment is market-wide rather than
// symbol-specific.
func Classify(ind model.IndicatorSet, pool []model.NewsItem) model.Verdict {
	avg := avgSentiment(pool)
	rsi := ind.EffectiveRSI()

	var category model.Category
	switch {
	case avg < dangerSentiment:
		category = model.CategoryDangerous
	case rsi < opportunityRSI && ind.AboveMA && avg > opportunitySentiment &&
		ind.VolatilityPct > minVolatilityPct && ind.VolumeSpike:
		category = model.CategoryOpportunity
	case ind.VolatilityPct > minVolatilityPct && ind.VolumeSpike && ind.NearHigh:
		category = model.CategoryBigMover
	default:
		category = model.CategoryNeutral
	}

	return model.Verdict{
		Symbol:       ind.Symbol,
		Category:     category,
		Indicators:   ind,
		News:         pool,
		AvgSentiment: avg,
	}
}

// avgSentiment is the arithmetic mean of the pool's scores, 0 when no
// relevant news was found.
func avgSentiment(pool []model.NewsItem) float64 {
	if len(pool) == 0 {
		return 0
	}
	sum := 0.0
	for _, item := range pool {
		sum += item.Sentiment
	}
	return sum / float64(len(pool))
}
