package calculator

import "math"

// Volatility computes the population standard deviation of simple returns
// over the last window closes, expressed as a percentage. Histories that
// produce one return or fewer yield 0, as does a non-positive window.
func Volatility(closes []float64, window int) float64 {
	if window <= 0 {
		return 0
	}
	start := len(closes) - window
	if start < 0 {
		start = 0
	}
	recent := closes[start:]
	if len(recent) < 2 {
		return 0
	}

	returns := make([]float64, 0, len(recent)-1)
	for i := 1; i < len(recent); i++ {
		prev := recent[i-1]
		if prev <= 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (recent[i]-prev)/prev)
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns))

	return math.Sqrt(variance) * 100
}
