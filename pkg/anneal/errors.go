package anneal

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned before the loop starts when a run cannot make progress
	ErrInvalidConfig = errors.New("anneal: invalid configuration")

	// ErrZeroInitialCost is returned when the convergence ratio would divide by a zero initial cost
	ErrZeroInitialCost = fmt.Errorf("%w: initial cost is zero with a non-zero cost_reduction_tol", ErrInvalidConfig)
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
