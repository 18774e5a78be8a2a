package ipfilter

import "math"

// computeWeights resolves a WeightProfile to a concrete weight vector
// parallel to stats.Lengths, replacing the source's pluggable weighting
// callable (see design notes). countByLength need only have entries for
// lengths that are actually present in the FIB; the synthetic 0 sentinel,
// when absent from the FIB, naturally gets zero weight.
func computeWeights(profile WeightProfile, stats PrefixStats, countByLength map[int]int, width int) []float64 {
	weights := make([]float64, len(stats.Lengths))

	switch profile {
	case ByPrefixCount:
		for i, l := range stats.Lengths {
			weights[i] = float64(countByLength[l])
		}
	case ByAddressSpace:
		for i, l := range stats.Lengths {
			weights[i] = float64(countByLength[l]) * math.Pow(2, float64(width-l))
		}
	default: // Equal
		for i := range weights {
			weights[i] = 1
		}
	}

	// An OBST needs strictly positive weights at every key; a length with
	// zero observed weight (e.g. the synthetic default-route slot when no
	// prefix of length 0 exists) still occupies a tree position and must
	// be reachable.
	for i, w := range weights {
		if w <= 0 {
			weights[i] = 1e-9
		}
	}

	return weights
}
