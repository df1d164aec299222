package montecarlo

// Sequence is one draw from a sequence generator: a variate vector and the
// probability weight attached to it.
type Sequence struct {
	Values []float64
	Weight float64
}

// Clone returns an independent copy of the sequence.
func (s Sequence) Clone() Sequence {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)
	return Sequence{Values: values, Weight: s.Weight}
}

// SequenceGenerator produces fixed-dimension variate vectors driving path
// construction. Implementations keep a current/previous draw cache and are
// not safe for concurrent use.
type SequenceGenerator interface {
	// Dimension returns the length of the vectors produced by NextSequence.
	Dimension() int
	// NextSequence draws a fresh variate vector.
	NextSequence() Sequence
	// LastSequence returns the draw produced by the most recent NextSequence
	// call without advancing the generator. Before any draw it returns a
	// zero vector with weight 1.
	LastSequence() Sequence
}
