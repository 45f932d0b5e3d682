package bootstrap

// PairwiseComparisonsCount is the number of distinct pairs among n scenarios.
func PairwiseComparisonsCount(nscenarios int) int {
	if nscenarios < 2 {
		return 0
	}
	return nscenarios * (nscenarios - 1) / 2
}

// ListwiseComparisonsCount is the number of comparisons of one control
// against every other scenario.
func ListwiseComparisonsCount(nscenarios int) int {
	if nscenarios < 2 {
		return 0
	}
	return nscenarios - 1
}

// BonferroniAdjustedConfidence spreads the significance budget of a
// confidence level (0-100) across ncomparisons simultaneous comparisons.
// With one comparison or fewer the level is returned unchanged.
func BonferroniAdjustedConfidence(confidence float64, ncomparisons int) float64 {
	if ncomparisons <= 1 {
		return confidence
	}
	alpha := (100.0 - confidence) / 100.0
	corrected := alpha / float64(ncomparisons)
	return 100.0 * (1 - corrected)
}
