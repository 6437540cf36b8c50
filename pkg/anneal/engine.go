package anneal

import (
	"github.com/GoSim-25-26J-441/annealing-core/pkg/logger"
)

// runState is owned by a single Run call and never shared.
type runState[S Solution[S, C], C Cost] struct {
	current     S
	currentCost C
	initCost    C
	best        S
	bestCost    C
	evals       int
	accepted    int
	improved    int
}

// Run anneals initial and returns the solution it settles on.
//
// A nil schedule selects Geometric(params.Alpha). accept and rng are required.
// Invalid parameters, a missing collaborator, or a zero initial cost combined
// with a non-zero CostReductionTol return an error wrapping ErrInvalidConfig
// before any perturbation happens.
func Run[S Solution[S, C], C Cost](initial S, params Parameters, accept AcceptanceFunc[C], schedule CoolingSchedule, rng RandomSource, opts ...Option) (Result[S, C], error) {
	var zero Result[S, C]

	if err := params.Validate(); err != nil {
		return zero, err
	}
	if schedule == nil {
		if err := params.ValidateAlpha(); err != nil {
			return zero, err
		}
		schedule = Geometric(params.Alpha)
	}
	if accept == nil {
		return zero, invalidf("acceptance function is required")
	}
	if rng == nil {
		return zero, invalidf("random source is required")
	}

	o := &runOptions{logger: logger.Default}
	for _, opt := range opts {
		opt(o)
	}

	initCost := initial.Cost()
	if params.CostReductionTol != 0 && float64(initCost) == 0 {
		return zero, ErrZeroInitialCost
	}

	st := &runState[S, C]{
		current:     initial,
		currentCost: initCost,
		initCost:    initCost,
		best:        initial,
		bestCost:    initCost,
	}

	for outer := 0; outer < params.MaxTemps; outer++ {
		temperature := schedule(outer)
		o.stage(outer, temperature)

		for inner := 0; inner < params.ItersPerTemp; inner++ {
			candidate := st.current.Perturb()
			costNew := candidate.Cost()
			st.evals++

			step := Step{
				Outer:       outer,
				Inner:       inner,
				Temperature: temperature,
				CostOld:     float64(st.currentCost),
				CostNew:     float64(costNew),
			}

			if costNew < st.currentCost {
				step.Accepted = true
				step.Probability = 1
				if costNew < st.bestCost {
					st.best = candidate
					st.bestCost = costNew
					st.improved++
					step.Improved = true
				}
			} else {
				p := sanitizeProbability(accept(st.currentCost, costNew, temperature))
				step.Probability = p
				step.Accepted = p > rng.Float64()
			}
			step.BestCost = float64(st.bestCost)
			o.step(step)

			if !step.Accepted {
				continue
			}

			costOld := st.currentCost
			st.current = candidate
			st.currentCost = costNew
			st.accepted++

			if params.Verbose {
				o.logger.Info("updating solution",
					"outer_iteration", outer,
					"inner_iteration", inner,
					"new_cost", costNew,
					"old_cost", costOld)
			}

			if params.CostReductionTol > 0 && float64(costNew)/float64(st.initCost) < params.CostReductionTol {
				if params.Verbose {
					o.logger.Info("met cost reduction criterion",
						"outer_iteration", outer,
						"inner_iteration", inner)
				}
				return st.result(st.current, st.currentCost, outer, Converged), nil
			}
		}
	}

	if params.Verbose {
		o.logger.Info("completed all temperatures without meeting convergence criterion; returning best value found",
			"max_temps", params.MaxTemps)
	}

	if st.currentCost <= st.bestCost {
		return st.result(st.current, st.currentCost, params.MaxTemps, Exhausted), nil
	}
	return st.result(st.best, st.bestCost, params.MaxTemps, Exhausted), nil
}

func (st *runState[S, C]) result(best S, cost C, iterations int, status Status) Result[S, C] {
	return Result[S, C]{
		Best:          best,
		FinalCost:     cost,
		InitialCost:   st.initCost,
		FunctionEvals: st.evals,
		Iterations:    iterations,
		Accepted:      st.accepted,
		Improved:      st.improved,
		Status:        status,
	}
}
