package prediction

import "sort"

func mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	total := 0.0
	for _, sample := range samples {
		total += sample
	}

	return total / float64(len(samples))
}

func median(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	sorted := sortedCopy(samples)

	middle := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[middle-1] + sorted[middle]) / 2
	}

	return sorted[middle]
}

// nearestRankPercentile indexes into the ascending sorted samples at
// floor(quantile * n) rather than interpolating between ranks.
func nearestRankPercentile(samples []float64, quantile float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	sorted := sortedCopy(samples)

	index := int(quantile * float64(len(sorted)))
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}

func sortedCopy(samples []float64) []float64 {
	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)
	return sorted
}
