package anneal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeometricSchedule(t *testing.T) {
	for _, alpha := range []float64{0.1, 0.5, 0.9, 0.999} {
		s := Geometric(alpha)
		assert.Equal(t, 1.0, s(0))
		for i := 0; i < 50; i++ {
			assert.InDelta(t, math.Pow(alpha, float64(i)), s(i), 1e-15)
		}
	}
}

func TestGeometricScheduleIsDeterministic(t *testing.T) {
	s := Geometric(0.9)
	assert.Equal(t, s(17), s(17))
}

func TestScaledGeometricSchedule(t *testing.T) {
	s := ScaledGeometric(100, 0.5)
	assert.Equal(t, 100.0, s(0))
	assert.Equal(t, 50.0, s(1))
	assert.Equal(t, 12.5, s(3))
}

func TestLinearSchedule(t *testing.T) {
	s := Linear(10, 0, 11)
	assert.Equal(t, 10.0, s(0))
	assert.InDelta(t, 5.0, s(5), 1e-12)
	assert.Equal(t, 0.0, s(10))
	assert.Equal(t, 0.0, s(25))

	assert.Equal(t, 2.0, Linear(10, 2, 1)(0))
}

func TestMetropolis(t *testing.T) {
	accept := Metropolis[uint64](600)

	assert.Equal(t, 1.0, accept(100, 100, 1))
	assert.InDelta(t, math.Exp(-1), accept(100, 700, 1), 1e-12)
	assert.InDelta(t, math.Exp(-2), accept(100, 700, 0.5), 1e-12)
	// unsigned costs must not wrap around
	assert.Less(t, accept(700, 100000, 1), 1.0)
}

func TestMetropolisShrinksWithTemperature(t *testing.T) {
	accept := Metropolis[float64](1)
	s := Geometric(0.8)

	prev := 1.0
	for i := 0; i < 20; i++ {
		p := accept(10, 11, s(i))
		assert.Less(t, p, prev)
		prev = p
	}
}

func TestSanitizeProbability(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{math.NaN(), 0},
		{-0.5, 0},
		{math.Inf(-1), 0},
		{0.25, 0.25},
		{1, 1},
		{3, 1},
		{math.Inf(1), 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeProbability(tt.in), "input %v", tt.in)
	}
}

func TestParametersValidate(t *testing.T) {
	assert.NoError(t, DefaultParameters().Validate())
	assert.NoError(t, DefaultParameters().ValidateAlpha())

	p := DefaultParameters()
	p.Alpha = 1.2
	assert.NoError(t, p.Validate(), "alpha only matters for the default schedule")
	assert.ErrorIs(t, p.ValidateAlpha(), ErrInvalidConfig)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "converged", Converged.String())
	assert.Equal(t, "exhausted", Exhausted.String())
	assert.Equal(t, "unknown", Status(9).String())
}
