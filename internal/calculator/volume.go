package calculator

// VolumeSpike reports whether the latest traded quantity exceeds 1.5 times
// the trailing average of up to window preceding quantities. The latest
// point is excluded from the average; a history without prior points is
// never a spike.
func VolumeSpike(volumes []int64, window int) bool {
	if len(volumes) < 2 || window <= 0 {
		return false
	}
	latest := float64(volumes[len(volumes)-1])
	prior := volumes[:len(volumes)-1]
	start := len(prior) - window
	if start < 0 {
		start = 0
	}
	prior = prior[start:]

	sum := 0.0
	for _, v := range prior {
		sum += float64(v)
	}
	avg := sum / float64(len(prior))
	return latest > avg*spikeRatio
}
