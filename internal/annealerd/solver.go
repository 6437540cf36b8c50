package annealerd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoSim-25-26J-441/annealing-core/internal/metrics"
	"github.com/GoSim-25-26J-441/annealing-core/internal/tsp"
	"github.com/GoSim-25-26J-441/annealing-core/pkg/anneal"
	"github.com/GoSim-25-26J-441/annealing-core/pkg/config"
	"github.com/GoSim-25-26J-441/annealing-core/pkg/logger"
	"github.com/GoSim-25-26J-441/annealing-core/pkg/utils"
)

// ErrInvalidRequest marks client mistakes; servers map it to 400 / InvalidArgument
var ErrInvalidRequest = errors.New("invalid request")

// TourRequest asks for one annealing run over a city table.
// Zero-valued fields fall back to the daemon's configured defaults.
type TourRequest struct {
	RunID            string     `json:"run_id,omitempty"`
	Cities           []tsp.City `json:"cities,omitempty"`
	MaxTemps         int        `json:"max_temps,omitempty"`
	ItersPerTemp     int        `json:"iters_per_temp,omitempty"`
	Alpha            float64    `json:"alpha,omitempty"`
	CostReductionTol *float64   `json:"cost_reduction_tol,omitempty"`
	Scale            float64    `json:"scale,omitempty"`
	Seed             int64      `json:"seed,omitempty"`
	Verbose          bool       `json:"verbose,omitempty"`
}

// TourResponse is a finished run
type TourResponse struct {
	RunID string `json:"run_id"`
	tsp.Report
	DurationMs int64 `json:"duration_ms"`
}

// Solver runs tour requests synchronously
type Solver struct {
	defaults anneal.Parameters
	scale    float64
	cities   []tsp.City
	maxSteps int
	metrics  *metrics.Metrics
}

// NewSolver builds a solver from the daemon configuration. m may be nil.
func NewSolver(cfg *config.RunConfig, m *metrics.Metrics) *Solver {
	if cfg == nil {
		cfg = config.DefaultRunConfig()
	}
	cities := tsp.DefaultCities()
	if len(cfg.Cities) > 0 {
		cities = make([]tsp.City, len(cfg.Cities))
		for i, p := range cfg.Cities {
			cities[i] = tsp.City{X: p.X, Y: p.Y}
		}
	}
	return &Solver{
		defaults: cfg.Parameters(),
		scale:    cfg.Acceptance.Scale,
		cities:   cities,
		maxSteps: cfg.Server.MaxInnerSteps,
		metrics:  m,
	}
}

// Problem resolves req against the defaults
func (s *Solver) Problem(req TourRequest) tsp.Problem {
	p := tsp.Problem{
		Cities: s.cities,
		Params: s.defaults,
		Scale:  s.scale,
		Seed:   req.Seed,
	}
	if len(req.Cities) > 0 {
		p.Cities = req.Cities
	}
	if req.MaxTemps != 0 {
		p.Params.MaxTemps = req.MaxTemps
	}
	if req.ItersPerTemp != 0 {
		p.Params.ItersPerTemp = req.ItersPerTemp
	}
	if req.Alpha != 0 {
		p.Params.Alpha = req.Alpha
	}
	if req.CostReductionTol != nil {
		p.Params.CostReductionTol = *req.CostReductionTol
	}
	if req.Scale != 0 {
		p.Scale = req.Scale
	}
	p.Params.Verbose = req.Verbose
	return p
}

// Solve runs req to completion. The run itself is not interruptible; ctx is
// only checked before it starts.
func (s *Solver) Solve(ctx context.Context, req TourRequest) (*TourResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Scale < 0 {
		return nil, fmt.Errorf("%w: scale must be >= 0", ErrInvalidRequest)
	}
	problem := s.Problem(req)
	if err := s.checkBudget(problem.Params); err != nil {
		logger.Warn("run rejected", "run_id", req.RunID, "error", err)
		return nil, err
	}

	runID := req.RunID
	if runID == "" {
		runID = utils.GenerateRunID()
	}
	log := logger.With("run_id", runID)

	opts := []anneal.Option{anneal.WithLogger(log)}
	if s.metrics != nil {
		opts = append(opts, anneal.WithObserver(s.metrics))
	}

	start := time.Now()
	report, err := tsp.Solve(problem, opts...)
	elapsed := time.Since(start)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordFailure()
		}
		log.Warn("run rejected", "error", err)
		if isInvalid(err) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordRun(report.Status, report.FunctionEvals, elapsed)
	}
	log.Info("run finished",
		"status", report.Status,
		"length", report.Length,
		"function_evals", report.FunctionEvals,
		slog.Duration("elapsed", elapsed))

	return &TourResponse{RunID: runID, Report: report, DurationMs: elapsed.Milliseconds()}, nil
}

// checkBudget rejects runs above the configured max_temps*iters_per_temp cap.
// Non-positive counts are left to the engine's own validation.
func (s *Solver) checkBudget(p anneal.Parameters) error {
	if s.maxSteps <= 0 || p.MaxTemps <= 0 || p.ItersPerTemp <= 0 {
		return nil
	}
	if p.ItersPerTemp > s.maxSteps/p.MaxTemps {
		return fmt.Errorf("%w: max_temps*iters_per_temp exceeds the limit of %d inner steps (max_temps=%d, iters_per_temp=%d)",
			ErrInvalidRequest, s.maxSteps, p.MaxTemps, p.ItersPerTemp)
	}
	return nil
}

func isInvalid(err error) bool {
	return errors.Is(err, anneal.ErrInvalidConfig) ||
		errors.Is(err, tsp.ErrTooFewCities) ||
		errors.Is(err, tsp.ErrCoordinateRange) ||
		errors.Is(err, tsp.ErrInvalidTour)
}
