package tsp

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrTooFewCities is returned when a table cannot form a closed tour
	ErrTooFewCities = errors.New("tsp: at least two cities are required")
	// ErrCoordinateRange is returned for a coordinate outside [-MaxCoordinate, MaxCoordinate]
	ErrCoordinateRange = errors.New("tsp: coordinate out of range")
	// ErrInvalidTour is returned when a visiting order is not a closed permutation from city 0
	ErrInvalidTour = errors.New("tsp: invalid tour")
)

// MaxCoordinate bounds the absolute value of city coordinates. A leg is then at
// most 2^32*sqrt(2), so a tour length cannot wrap uint64 for any table that fits
// in memory.
const MaxCoordinate = 1 << 31

// City is a point on the integer grid.
type City struct {
	X int64 `json:"x" yaml:"x"`
	Y int64 `json:"y" yaml:"y"`
}

// CityTable is an immutable coordinate table.
type CityTable struct {
	cities []City
}

// NewCityTable copies cities into a new table.
func NewCityTable(cities []City) (*CityTable, error) {
	if len(cities) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewCities, len(cities))
	}
	for i, c := range cities {
		if !inRange(c.X) || !inRange(c.Y) {
			return nil, fmt.Errorf("%w: city %d at (%d, %d), limit is ±%d", ErrCoordinateRange, i, c.X, c.Y, int64(MaxCoordinate))
		}
	}
	cp := make([]City, len(cities))
	copy(cp, cities)
	return &CityTable{cities: cp}, nil
}

func inRange(v int64) bool {
	return v >= -MaxCoordinate && v <= MaxCoordinate
}

// Len returns the number of cities.
func (t *CityTable) Len() int {
	return len(t.cities)
}

// Distance is the floor of the Euclidean distance between cities i and j.
func (t *CityTable) Distance(i, j int) uint64 {
	a, b := t.cities[i], t.cities[j]
	dx := float64(b.X) - float64(a.X)
	dy := float64(b.Y) - float64(a.Y)
	return uint64(math.Floor(math.Sqrt(dx*dx + dy*dy)))
}

// DefaultCities is the 41-city demonstration instance. City 0 sits at the origin.
func DefaultCities() []City {
	xs := []int64{0, 194, 908, 585, 666, 76, 633, 963, 789, 117, 409, 257, 229, 334, 837,
		382, 921, 54, 959, 532, 934, 720, 117, 519, 933, 408, 750, 465, 790,
		983, 605, 314, 272, 902, 340, 827, 915, 483, 466, 451, 698}
	ys := []int64{0, 956, 906, 148, 196, 59, 672, 801, 752, 620, 65,
		747, 377, 608, 374, 841, 910, 903, 743, 477, 794, 973, 555, 496, 152, 52,
		3, 174, 890, 861, 790, 430, 149, 674, 780, 507, 187, 931, 503, 435, 569}

	cities := make([]City, len(xs))
	for i := range xs {
		cities[i] = City{X: xs[i], Y: ys[i]}
	}
	return cities
}
