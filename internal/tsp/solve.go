package tsp

import (
	"github.com/GoSim-25-26J-441/annealing-core/pkg/anneal"
	"github.com/GoSim-25-26J-441/annealing-core/pkg/utils"
)

// Problem is one tour-solving request.
type Problem struct {
	Cities []City
	Params anneal.Parameters
	// Scale feeds Acceptance; zero selects DefaultAcceptanceScale.
	Scale float64
	// Seed drives both the swap positions and the acceptance draw. Zero seeds from the clock.
	Seed int64
}

// Report is the printable outcome of Solve.
type Report struct {
	Tour          []int  `json:"tour"`
	Length        uint64 `json:"length"`
	InitialLength uint64 `json:"initial_length"`
	FunctionEvals int    `json:"function_evals"`
	Iterations    int    `json:"iterations"`
	Accepted      int    `json:"accepted"`
	Improved      int    `json:"improved"`
	Status        string `json:"status"`
	Seed          int64  `json:"seed"`
}

// Solve anneals the identity tour over p.Cities with the default geometric schedule.
func Solve(p Problem, opts ...anneal.Option) (Report, error) {
	table, err := NewCityTable(p.Cities)
	if err != nil {
		return Report{}, err
	}

	src := utils.NewRandSource(p.Seed)
	tour, err := NewTour(table, src.Derive())
	if err != nil {
		return Report{}, err
	}

	res, err := anneal.Run(tour, p.Params, Acceptance(p.Scale), nil, src, opts...)
	if err != nil {
		return Report{}, err
	}
	if err := res.Best.Validate(); err != nil {
		return Report{}, err
	}

	return Report{
		Tour:          res.Best.Visited(),
		Length:        res.FinalCost,
		InitialLength: res.InitialCost,
		FunctionEvals: res.FunctionEvals,
		Iterations:    res.Iterations,
		Accepted:      res.Accepted,
		Improved:      res.Improved,
		Status:        res.Status.String(),
		Seed:          src.Seed(),
	}, nil
}
