package anneal

import "math"

// Parameters controls a single annealing run.
type Parameters struct {
	// MaxTemps is the number of temperature stages (outer iterations).
	MaxTemps int
	// ItersPerTemp is the number of perturb/evaluate steps per stage.
	ItersPerTemp int
	// Alpha is the decay factor, only read when Run builds the default Geometric schedule.
	Alpha float64
	// CostReductionTol stops the run once an accepted cost divided by the
	// initial cost falls below it. Zero disables early stopping.
	CostReductionTol float64
	// Verbose logs every accepted move. It never changes the result.
	Verbose bool
}

// DefaultParameters returns general purpose settings. They may not suit a given problem.
func DefaultParameters() Parameters {
	return Parameters{
		MaxTemps:         100,
		ItersPerTemp:     500,
		Alpha:            0.9,
		CostReductionTol: 0.0001,
		Verbose:          false,
	}
}

// Validate reports whether the parameters allow the loop to make progress.
// Alpha is not checked here; see ValidateAlpha.
func (p Parameters) Validate() error {
	if p.MaxTemps <= 0 {
		return invalidf("max_temps must be positive, got %d", p.MaxTemps)
	}
	if p.ItersPerTemp <= 0 {
		return invalidf("iters_per_temp must be positive, got %d", p.ItersPerTemp)
	}
	if math.IsNaN(p.CostReductionTol) || p.CostReductionTol < 0 {
		return invalidf("cost_reduction_tol must be >= 0, got %v", p.CostReductionTol)
	}
	return nil
}

// ValidateAlpha checks that Alpha is a usable geometric decay factor.
func (p Parameters) ValidateAlpha() error {
	if !(p.Alpha > 0 && p.Alpha < 1) {
		return invalidf("alpha must be in (0,1), got %v", p.Alpha)
	}
	return nil
}
