package calculator

// NearHigh reports whether the current price sits within 5% of the highest
// close in the lookback history. An empty history is never near a high.
func NearHigh(closes []float64, current float64) bool {
	if len(closes) == 0 {
		return false
	}
	high := closes[0]
	for _, c := range closes[1:] {
		if c > high {
			high = c
		}
	}
	return current >= high*nearHighRatio
}
