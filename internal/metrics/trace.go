package metrics

import (
	"sync"

	"github.com/GoSim-25-26J-441/annealing-core/pkg/anneal"
)

// StagePoint summarizes one temperature stage of a run
type StagePoint struct {
	Outer       int     `json:"outer"`
	Temperature float64 `json:"temperature"`
	Steps       int     `json:"steps"`
	Accepted    int     `json:"accepted"`
	Improved    int     `json:"improved"`
	CurrentCost float64 `json:"current_cost"`
	BestCost    float64 `json:"best_cost"`
}

// Trace collects per-stage points while a run progresses. Readers may call
// Points from other goroutines.
type Trace struct {
	mu     sync.RWMutex
	points []StagePoint
}

var _ anneal.Observer = (*Trace)(nil)

// NewTrace creates an empty trace
func NewTrace() *Trace {
	return &Trace{points: make([]StagePoint, 0)}
}

// ObserveStage opens a new stage point
func (t *Trace) ObserveStage(outer int, temperature float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.points = append(t.points, StagePoint{Outer: outer, Temperature: temperature})
}

// ObserveStep folds a step into the current stage point
func (t *Trace) ObserveStep(step anneal.Step) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.points) == 0 {
		t.points = append(t.points, StagePoint{Outer: step.Outer, Temperature: step.Temperature})
	}
	p := &t.points[len(t.points)-1]
	p.Steps++
	p.BestCost = step.BestCost
	if step.Accepted {
		p.Accepted++
		p.CurrentCost = step.CostNew
	} else {
		p.CurrentCost = step.CostOld
	}
	if step.Improved {
		p.Improved++
	}
}

// Points returns a copy of the collected points
func (t *Trace) Points() []StagePoint {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]StagePoint, len(t.points))
	copy(out, t.points)
	return out
}

// AcceptanceRate returns accepted/steps over the whole trace
func (t *Trace) AcceptanceRate() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var steps, accepted int
	for _, p := range t.points {
		steps += p.Steps
		accepted += p.Accepted
	}
	if steps == 0 {
		return 0
	}
	return float64(accepted) / float64(steps)
}
