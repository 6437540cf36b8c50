// Package anneal implements a generic simulated-annealing engine.
//
// A caller supplies an initial Solution (anything exposing Cost and Perturb),
// a CoolingSchedule mapping the outer iteration index to a temperature, an
// AcceptanceFunc giving the probability of taking a non-improving move, and a
// RandomSource for the accept/reject draw. Run drives the nested
// temperature/iteration loop and returns a Result.
//
// A run is single-threaded and synchronous. It ends either Converged, when an
// accepted cost drops below CostReductionTol times the initial cost, or
// Exhausted, after MaxTemps*ItersPerTemp inner steps.
package anneal
