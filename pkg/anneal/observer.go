package anneal

import "log/slog"

// Step describes one inner iteration. Costs are converted to float64.
type Step struct {
	Outer       int
	Inner       int
	Temperature float64
	CostOld     float64
	CostNew     float64
	// Probability is 1 for improving moves, otherwise the sanitized acceptance probability.
	Probability float64
	Accepted    bool
	// Improved is set when the candidate became the new best.
	Improved bool
	BestCost float64
}

// Observer watches a run. It must not retain or mutate engine state.
type Observer interface {
	ObserveStage(outer int, temperature float64)
	ObserveStep(step Step)
}

// StepFunc adapts a function to an Observer that ignores stage changes.
type StepFunc func(step Step)

func (f StepFunc) ObserveStage(int, float64) {}

func (f StepFunc) ObserveStep(step Step) { f(step) }

// Option configures optional behavior of Run.
type Option func(*runOptions)

type runOptions struct {
	logger    *slog.Logger
	observers []Observer
}

// WithLogger sets the destination of verbose diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *runOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver adds an observer; several may be registered.
func WithObserver(obs Observer) Option {
	return func(o *runOptions) {
		if obs != nil {
			o.observers = append(o.observers, obs)
		}
	}
}

func (o *runOptions) stage(outer int, temperature float64) {
	for _, obs := range o.observers {
		obs.ObserveStage(outer, temperature)
	}
}

func (o *runOptions) step(s Step) {
	for _, obs := range o.observers {
		obs.ObserveStep(s)
	}
}
