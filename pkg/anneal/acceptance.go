package anneal

import "math"

// AcceptanceFunc returns the probability of accepting a move from oldCost to newCost
// at the given temperature. The engine only calls it when newCost >= oldCost.
type AcceptanceFunc[C Cost] func(oldCost, newCost C, temperature float64) float64

// Metropolis returns the canonical rule exp((oldCost-newCost) / (temperature*scale)).
// scale lets costs of any magnitude work with temperatures that start at 1.
func Metropolis[C Cost](scale float64) AcceptanceFunc[C] {
	return func(oldCost, newCost C, temperature float64) float64 {
		return math.Exp((float64(oldCost) - float64(newCost)) / (temperature * scale))
	}
}

// sanitizeProbability clamps p into [0,1]; NaN means reject.
func sanitizeProbability(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
