package tsp

import (
	"fmt"

	"github.com/GoSim-25-26J-441/annealing-core/pkg/anneal"
)

// DefaultAcceptanceScale divides the temperature so that tour length
// differences in the hundreds stay acceptable while T <= 1.
const DefaultAcceptanceScale = 600.0

// Generator picks the positions to swap. It is shared by all copies of a tour.
type Generator interface {
	Intn(n int) int
}

// Tour is a closed visiting order over a CityTable, starting and ending at city 0.
type Tour struct {
	table   *CityTable
	gen     Generator
	visited []int
}

var _ anneal.Solution[Tour, uint64] = Tour{}

// NewTour returns the identity tour 0,1,...,n-1,0.
func NewTour(table *CityTable, gen Generator) (Tour, error) {
	if table == nil || table.Len() < 2 {
		return Tour{}, ErrTooFewCities
	}
	if gen == nil {
		return Tour{}, fmt.Errorf("%w: generator is required", ErrInvalidTour)
	}
	n := table.Len()
	visited := make([]int, n+1)
	for i := 0; i < n; i++ {
		visited[i] = i
	}
	visited[n] = 0
	return Tour{table: table, gen: gen, visited: visited}, nil
}

// WithOrder returns a tour over the same table that follows order, which must
// be a closed permutation starting at city 0.
func (t Tour) WithOrder(order []int) (Tour, error) {
	if err := validateOrder(order, t.table.Len()); err != nil {
		return Tour{}, err
	}
	visited := make([]int, len(order))
	copy(visited, order)
	return Tour{table: t.table, gen: t.gen, visited: visited}, nil
}

// Cost is the tour length.
func (t Tour) Cost() uint64 {
	var dist uint64
	for i := 0; i+1 < len(t.visited); i++ {
		dist += t.table.Distance(t.visited[i], t.visited[i+1])
	}
	return dist
}

// Perturb swaps two distinct interior positions in a copy of the order.
// With fewer than two interior positions the copy is unchanged.
func (t Tour) Perturb() Tour {
	visited := make([]int, len(t.visited))
	copy(visited, t.visited)

	interior := len(visited) - 2
	if interior >= 2 {
		a := 1 + t.gen.Intn(interior)
		b := 1 + t.gen.Intn(interior-1)
		if b >= a {
			b++
		}
		visited[a], visited[b] = visited[b], visited[a]
	}
	return Tour{table: t.table, gen: t.gen, visited: visited}
}

// Visited returns a copy of the visiting order, including the closing city 0.
func (t Tour) Visited() []int {
	out := make([]int, len(t.visited))
	copy(out, t.visited)
	return out
}

// Validate checks that the order is a closed permutation from city 0.
func (t Tour) Validate() error {
	if t.table == nil {
		return ErrTooFewCities
	}
	return validateOrder(t.visited, t.table.Len())
}

func validateOrder(order []int, n int) error {
	if len(order) != n+1 {
		return fmt.Errorf("%w: length %d, want %d", ErrInvalidTour, len(order), n+1)
	}
	if order[0] != 0 || order[n] != 0 {
		return fmt.Errorf("%w: must start and end at city 0", ErrInvalidTour)
	}
	seen := make([]bool, n)
	for _, c := range order[:n] {
		if c < 0 || c >= n || seen[c] {
			return fmt.Errorf("%w: city %d repeated or out of range", ErrInvalidTour, c)
		}
		seen[c] = true
	}
	return nil
}

// Acceptance is the scaled Metropolis rule for tour lengths.
func Acceptance(scale float64) anneal.AcceptanceFunc[uint64] {
	if scale <= 0 {
		scale = DefaultAcceptanceScale
	}
	return anneal.Metropolis[uint64](scale)
}
