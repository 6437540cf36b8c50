package anneal

// Cost is the numeric quality measure of a Solution. Lower is better.
type Cost interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Solution is the capability set the engine needs from a candidate.
//
// Cost must be totally ordered across all solutions of a run and Perturb must
// terminate. Perturb returns a single-move neighbor and must leave both the
// receiver and any data shared between solutions untouched. Neither
// precondition is checked by the engine.
type Solution[S any, C Cost] interface {
	Cost() C
	Perturb() S
}

// RandomSource supplies uniform values in [0, 1) for the accept/reject draw.
// *math/rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}
