package news

import "regexp"

// Rule pairs a headline pattern with the keyword label and the rationale
// attached to matching items. Rules are evaluated in slice order and the
// first match wins, so ordering is part of the taxonomy.
type Rule struct {
	Pattern     *regexp.Regexp
	Keyword     string
	Explanation string
}

const genericExplanation = "This news may impact the stock."

type rawRule struct {
	pattern     string
	explanation string
}

// compile builds case-insensitive rules, substituting the generic
// explanation where none is given.
func compile(raw []rawRule) []Rule {
	rules := make([]Rule, len(raw))
	for i, r := range raw {
		explanation := r.explanation
		if explanation == "" {
			explanation = genericExplanation
		}
		rules[i] = Rule{
			Pattern:     regexp.MustCompile(`(?i)` + r.pattern),
			Keyword:     r.pattern,
			Explanation: explanation,
		}
	}
	return rules
}

// DefaultTaxonomy covers the announcement types NEPSE traders react to,
// ordered from corporate actions down to Nepali-language terms.
func DefaultTaxonomy() []Rule {
	return compile([]rawRule{
		// Corporate actions
		{`dividend declaration`, "This may increase stock demand due to expected payouts."},
		{`bonus share`, "This increases the number of shares, potentially boosting liquidity."},
		{`rights issue`, "Shareholders can buy more shares, often at a discount, affecting price."},
		{`merger`, "Mergers can lead to synergies but may also introduce uncertainty."},
		{`share buyback`, "This reduces outstanding shares, often signaling confidence."},
		// Financial results
		{`quarterly results`, "Results can drive volatility based on performance."},
		{`net profit`, "Higher profits typically boost stock price."},
		{`earnings per share|EPS`, "EPS reflects profitability per share, a key metric."},
		{`revised guidance`, "Guidance changes can shift investor expectations."},
		// Regulatory notices
		{`trading halt`, "Halts pause trading, often due to major news."},
		{`SEBON guidelines`, "Regulatory changes can impact market operations."},
		{`IPO`, "New listings can attract investor interest."},
		// Macro events
		{`rate hike`, "Higher rates may reduce borrowing, impacting growth stocks."},
		{`inflation data`, "Inflation affects purchasing power and interest rates."},
		{`GDP growth`, "Economic growth can boost market confidence."},
		// Deal flow
		{`due diligence`, "A step in M&A, indicating a deal is progressing."},
		{`definitive agreement`, "A confirmed deal, often leading to price movements."},
		// Market chatter
		{`rumor`, "Rumors can drive short-term volatility."},
		{`insider trading`, "Insider activity may signal confidence or concern."},
		{`upgrade`, "Analyst upgrades often lead to price increases."},
		// Exchange mechanics
		{`circuit breaker`, "Trading pauses to prevent extreme volatility."},
		{`floorsheet anomaly`, "Unusual trading activity may indicate manipulation."},
		// Nepali terms
		{`मुनाफा`, "Higher profits typically boost stock price."},
		{`बोनस`, "This increases the number of shares, potentially boosting liquidity."},
		{`हकप्रद`, "Shareholders can buy more shares, often at a discount."},
	})
}
