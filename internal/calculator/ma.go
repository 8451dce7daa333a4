package calculator

// MovingAverage computes the simple moving average of the last window
// closes. Shorter histories average whatever is available; an empty history
// yields 0.
func MovingAverage(closes []float64, window int) float64 {
	if len(closes) == 0 || window <= 0 {
		return 0
	}
	start := len(closes) - window
	if start < 0 {
		start = 0
	}
	sum := 0.0
	for _, c := range closes[start:] {
		sum += c
	}
	return sum / float64(len(closes)-start)
}
