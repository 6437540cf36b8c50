package config

import "github.com/GoSim-25-26J-441/annealing-core/pkg/anneal"

// RunConfig is the file form of an annealing run
type RunConfig struct {
	LogLevel   string     `yaml:"log_level" validate:"oneof=debug info warn warning error"`
	Seed       int64      `yaml:"seed"`
	Annealing  Annealing  `yaml:"annealing"`
	Acceptance Acceptance `yaml:"acceptance"`
	// Cities overrides the built-in demonstration table when present
	Cities []Point `yaml:"cities,omitempty" validate:"omitempty,min=2"`
	Server Server  `yaml:"server"`
}

// Annealing mirrors anneal.Parameters
type Annealing struct {
	MaxTemps         int     `yaml:"max_temps" validate:"gt=0"`
	ItersPerTemp     int     `yaml:"iters_per_temp" validate:"gt=0"`
	Alpha            float64 `yaml:"alpha" validate:"gt=0,lt=1"`
	CostReductionTol float64 `yaml:"cost_reduction_tol" validate:"gte=0"`
	Verbose          bool    `yaml:"verbose"`
}

// Acceptance configures the scaled Metropolis rule
type Acceptance struct {
	Scale float64 `yaml:"scale" validate:"gte=0"`
}

// Point is a city coordinate
type Point struct {
	X int64 `yaml:"x"`
	Y int64 `yaml:"y"`
}

// DefaultMaxInnerSteps caps max_temps*iters_per_temp for a single daemon request
const DefaultMaxInnerSteps = 10_000_000

// Server holds daemon listen addresses and request limits
type Server struct {
	GRPCAddr string `yaml:"grpc_addr" validate:"required"`
	HTTPAddr string `yaml:"http_addr" validate:"required"`
	// MaxInnerSteps bounds the perturbation budget a client may request
	MaxInnerSteps int `yaml:"max_inner_steps" validate:"gt=0"`
}

// DefaultRunConfig returns the configuration used when no file is given
func DefaultRunConfig() *RunConfig {
	p := anneal.DefaultParameters()
	return &RunConfig{
		LogLevel: "info",
		Annealing: Annealing{
			MaxTemps:         p.MaxTemps,
			ItersPerTemp:     p.ItersPerTemp,
			Alpha:            p.Alpha,
			CostReductionTol: p.CostReductionTol,
			Verbose:          p.Verbose,
		},
		Acceptance: Acceptance{Scale: 600},
		Server: Server{
			GRPCAddr:      ":50051",
			HTTPAddr:      ":8080",
			MaxInnerSteps: DefaultMaxInnerSteps,
		},
	}
}

// Parameters converts the annealing section for the engine
func (c *RunConfig) Parameters() anneal.Parameters {
	return anneal.Parameters{
		MaxTemps:         c.Annealing.MaxTemps,
		ItersPerTemp:     c.Annealing.ItersPerTemp,
		Alpha:            c.Annealing.Alpha,
		CostReductionTol: c.Annealing.CostReductionTol,
		Verbose:          c.Annealing.Verbose,
	}
}
