package anneal

import "math"

// CoolingSchedule maps an outer iteration index to a temperature.
// It must be deterministic and free of side effects.
type CoolingSchedule func(outer int) float64

// Geometric returns the default schedule: T(i) = alpha^i, so T(0) = 1.
func Geometric(alpha float64) CoolingSchedule {
	return ScaledGeometric(1.0, alpha)
}

// ScaledGeometric returns T(i) = t0 * alpha^i.
func ScaledGeometric(t0, alpha float64) CoolingSchedule {
	return func(outer int) float64 {
		return t0 * math.Pow(alpha, float64(outer))
	}
}

// Linear cools from start to end across stages temperature stages and holds
// end afterwards.
func Linear(start, end float64, stages int) CoolingSchedule {
	return func(outer int) float64 {
		if stages <= 1 || outer >= stages-1 {
			return end
		}
		frac := float64(outer) / float64(stages-1)
		return start + frac*(end-start)
	}
}
