package notifier

import (
	"fmt"
	"strings"
	"time"

	"NepseSentinel/internal/model"
)

const syntheticLabel = "(mock data - live feed unavailable)"

// FormatWelcome lists the available commands. /start and /help share it.
func FormatWelcome() string {
	return "Welcome to Nepse AI Trading Bot! Available commands:\n" +
		"/start - Show this message\n" +
		"/help - List all available commands\n" +
		"/monitor - Start monitoring stocks\n" +
		"/status - Check bot and market status\n" +
		"/opportunities - Get good stock opportunities\n" +
		"/stop - Stop monitoring"
}

// FormatStatus renders the scheduler state for the /status command.
func FormatStatus(st model.SchedulerState) string {
	bot := "idle"
	if st.Active {
		bot = "monitoring"
	}
	market := "CLOSED"
	if st.SessionOpen {
		market = "OPEN"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Bot Status: %s\n", bot))
	b.WriteString(fmt.Sprintf("Market Status: NEPSE is %s", market))
	if !st.LastPoll.IsZero() {
		b.WriteString(fmt.Sprintf("\nLast Poll: %s (%d symbols)",
			st.LastPoll.Format("2006-01-02 15:04"), st.LastCycleVerdicts))
	}
	return b.String()
}

// FormatOpportunities renders the opportunity alert for one poll cycle.
func FormatOpportunities(verdicts []model.Verdict, sessionOpen, synthetic bool) string {
	var b strings.Builder
	if sessionOpen {
		b.WriteString("💡 <b>Good Opportunities Detected</b> (Potential Gains in 2+ Days):\n")
	} else {
		b.WriteString("💡 <b>Good Opportunities for Next Session</b> (Potential Gains in 2+ Days):\n")
	}
	if synthetic {
		b.WriteString(syntheticLabel + "\n")
	}
	for _, v := range verdicts {
		b.WriteString("\n")
		b.WriteString(formatStockDetail(v))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatStockDetail renders the explainable per-stock block shared by
// opportunity alerts and the /opportunities reply.
func formatStockDetail(v model.Verdict) string {
	ind := v.Indicators
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Stock: %s\n", v.Symbol))
	b.WriteString(fmt.Sprintf("RSI: %.2f\n", ind.EffectiveRSI()))
	b.WriteString(fmt.Sprintf("Current Price: %s\n", ind.Current.StringFixed(2)))
	b.WriteString(fmt.Sprintf("News Sentiment: %.2f\n", v.AvgSentiment))
	b.WriteString(fmt.Sprintf("Volatility: %.2f%%\n", ind.VolatilityPct))
	b.WriteString(fmt.Sprintf("Volume Spike: %s\n", yesNo(ind.VolumeSpike)))
	b.WriteString(fmt.Sprintf("MA Trend: %s\n", ind.TrendLabel()))
	b.WriteString(fmt.Sprintf("Recent News:\n%s", formatNewsSummary(v.News)))
	return b.String()
}

// formatNewsSummary lists matched headlines with sentiment and rationale.
func formatNewsSummary(items []model.NewsItem) string {
	if len(items) == 0 {
		return "No relevant news."
	}
	var b strings.Builder
	for _, item := range items {
		b.WriteString(fmt.Sprintf("- %s (Sentiment: %.2f)\n  * %s\n", item.Text, item.Sentiment, item.Explanation))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatDangerAlert renders one dangerous-news alert.
func FormatDangerAlert(v model.Verdict) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("⚠️ <b>Dangerous News Alert for %s:</b>\n", v.Symbol))
	b.WriteString(fmt.Sprintf("News Sentiment: %.2f\n", v.AvgSentiment))
	b.WriteString(fmt.Sprintf("Recent News:\n%s\n", formatNewsSummary(v.News)))
	b.WriteString("This could impact the market!")
	return b.String()
}

// FormatBigMovers renders the big-mover watchlist.
func FormatBigMovers(verdicts []model.Verdict, synthetic bool) string {
	var b strings.Builder
	b.WriteString("<b>Potential Big Movers for Tomorrow:</b>\n")
	if synthetic {
		b.WriteString(syntheticLabel + "\n")
	}
	for _, v := range verdicts {
		ind := v.Indicators
		b.WriteString(fmt.Sprintf("\nStock: %s\n", v.Symbol))
		b.WriteString(fmt.Sprintf("Volatility: %.2f%%\n", ind.VolatilityPct))
		b.WriteString(fmt.Sprintf("Volume Spike: %s\n", yesNo(ind.VolumeSpike)))
		b.WriteString(fmt.Sprintf("Near 52-Week High: %s\n", yesNo(ind.NearHigh)))
		b.WriteString(fmt.Sprintf("Current Price: %s\n", ind.Current.StringFixed(2)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatOpportunitiesReply renders the /opportunities command response.
func FormatOpportunitiesReply(verdicts []model.Verdict) string {
	var opportunities []model.Verdict
	for _, v := range verdicts {
		if v.Category == model.CategoryOpportunity {
			opportunities = append(opportunities, v)
		}
	}
	if len(opportunities) == 0 {
		return "No good opportunities found at the moment."
	}

	var b strings.Builder
	b.WriteString("💡 <b>Good Opportunities</b> (Potential Gains in 2+ Days):\n")
	for _, v := range opportunities {
		b.WriteString("\n")
		b.WriteString(formatStockDetail(v))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatDigest renders the post-market summary.
func FormatDigest(verdicts []model.Verdict, at time.Time) string {
	counts := map[model.Category]int{}
	for _, v := range verdicts {
		counts[v.Category]++
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>Post-Market Update</b> | %s\n\n", at.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Symbols scanned: %d\n", len(verdicts)))
	b.WriteString(fmt.Sprintf("Opportunities: %d | Dangerous: %d | Big Movers: %d | Neutral: %d\n",
		counts[model.CategoryOpportunity], counts[model.CategoryDangerous],
		counts[model.CategoryBigMover], counts[model.CategoryNeutral]))

	for _, v := range verdicts {
		if v.Category == model.CategoryNeutral {
			continue
		}
		b.WriteString(fmt.Sprintf("\n%s: %s | RSI %.2f | Volatility %.2f%% | Sentiment %+.2f",
			categoryHeading(v.Category), v.Symbol,
			v.Indicators.EffectiveRSI(), v.Indicators.VolatilityPct, v.AvgSentiment))
	}
	return b.String()
}

func categoryHeading(c model.Category) string {
	switch c {
	case model.CategoryOpportunity:
		return "Opportunity"
	case model.CategoryDangerous:
		return "Dangerous"
	case model.CategoryBigMover:
		return "Big Mover"
	default:
		return "Neutral"
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
