package synapserl

import "math"

// advantageEpsilon is a small fudge factor used to
// prevent numerical issues when dividing by the standard
// deviation.
const advantageEpsilon = 1e-6

// DiscountedReturns computes the discounted return-to-go
// at every timestep of a reward sequence.
//
// The computation runs backward over the sequence,
// G_t = r_t + discount*G_{t+1}, with the accumulator
// starting at zero past the final step. Whenever
// dones[t] is set the accumulator is reset first, so no
// reward leaks across an episode boundary.
func DiscountedReturns(rewards []float64, dones []bool, discount float64) []float64 {
	res := make([]float64, len(rewards))
	var sum float64
	for t := len(rewards) - 1; t >= 0; t-- {
		if dones[t] {
			sum = 0
		}
		sum *= discount
		sum += rewards[t]
		res[t] = sum
	}
	return res
}

// StandardizeAdvantages normalizes a batch of advantages
// to zero mean and unit variance.
//
// The division is guarded by a small epsilon, so a
// degenerate batch (size one, or all-equal values) comes
// back as zeros rather than NaN or Inf.
func StandardizeAdvantages(advantages []float64) []float64 {
	res := make([]float64, len(advantages))
	if len(advantages) == 0 {
		return res
	}

	var sum float64
	for _, x := range advantages {
		sum += x
	}
	mean := sum / float64(len(advantages))

	var sqSum float64
	for i, x := range advantages {
		res[i] = x - mean
		sqSum += res[i] * res[i]
	}
	std := math.Sqrt(sqSum / float64(len(advantages)))

	normalizer := 1 / (std + advantageEpsilon)
	for i := range res {
		res[i] *= normalizer
	}
	return res
}
