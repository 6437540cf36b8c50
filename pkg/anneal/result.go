package anneal

// Status is the terminal state of a run.
type Status int

const (
	// Exhausted means every stage ran without meeting the tolerance
	Exhausted Status = iota
	// Converged means an accepted cost met the cost reduction tolerance
	Converged
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Result is produced once at the end of a run.
type Result[S any, C Cost] struct {
	// Best is the reported solution. On Converged it is the accepted solution
	// that met the tolerance; on Exhausted it is the cheaper of current and best.
	Best S
	// FinalCost is Best's cost.
	FinalCost C
	// InitialCost is the cost of the initial solution.
	InitialCost C
	// FunctionEvals counts cost evaluations, one per inner step.
	FunctionEvals int
	// Iterations is the outer index at convergence, or MaxTemps when exhausted.
	Iterations int
	// Accepted counts accepted moves, improving or not.
	Accepted int
	// Improved counts updates of the best-known solution.
	Improved int
	Status   Status
}

// Converged reports whether the run stopped on the cost reduction tolerance.
func (r Result[S, C]) Converged() bool {
	return r.Status == Converged
}
