package strip

// otsuThreshold picks the 8-bit level that maximizes the between-class
// variance of a 256-bin intensity histogram. Pixels strictly above the
// returned level belong to the upper class.
//
// ok is false when no level separates two non-empty classes, which happens
// exactly when the histogram has a single populated bin.
func otsuThreshold(bins []int) (level int, ok bool) {
	var total, weightedSum float64
	for i, n := range bins {
		total += float64(n)
		weightedSum += float64(i) * float64(n)
	}
	if total == 0 {
		return 0, false
	}

	var (
		weightLow  float64
		sumLow     float64
		bestSpread float64
	)
	for t, n := range bins {
		weightLow += float64(n)
		if weightLow == 0 {
			continue
		}
		weightHigh := total - weightLow
		if weightHigh == 0 {
			break
		}
		sumLow += float64(t) * float64(n)

		meanLow := sumLow / weightLow
		meanHigh := (weightedSum - sumLow) / weightHigh
		spread := weightLow * weightHigh * (meanLow - meanHigh) * (meanLow - meanHigh)
		if spread > bestSpread {
			bestSpread = spread
			level = t
			ok = true
		}
	}
	return level, ok
}
