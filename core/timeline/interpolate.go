package timeline

import (
	"fmt"
	"sort"
)

// Mapping is a continuous piecewise-linear function from the unaligned
// clock to the aligned (reference) clock, built from known knot pairs
// unaligned[i] -> aligned[i].
//
// Queries at knot points return the aligned values exactly. Queries
// outside the knot span extrapolate along the boundary segment's slope.
type Mapping struct {
	unaligned []float64
	aligned   []float64
}

// NewMapping builds a Mapping from knot pairs. Both arrays must have the
// same length, at least two knots, and unaligned must be strictly
// increasing so the mapping is a function.
func NewMapping(aligned, unaligned Series) (*Mapping, error) {
	if len(aligned) != len(unaligned) {
		return nil, fmt.Errorf("%w: %d aligned vs %d unaligned knots", ErrLengthMismatch, len(aligned), len(unaligned))
	}
	if len(unaligned) < 2 {
		return nil, fmt.Errorf("need at least 2 knot pairs, got %d", len(unaligned))
	}
	for i := 1; i < len(unaligned); i++ {
		if unaligned[i] <= unaligned[i-1] {
			return nil, fmt.Errorf("%w: unaligned knots must be strictly increasing", ErrUnsortedTimestamps)
		}
	}
	if !aligned.IsSorted() {
		return nil, fmt.Errorf("%w: aligned knots must be sorted", ErrUnsortedTimestamps)
	}
	return &Mapping{unaligned: unaligned.Copy(), aligned: aligned.Copy()}, nil
}

// At evaluates the mapping at a single unaligned timestamp.
func (m *Mapping) At(x float64) float64 {
	n := len(m.unaligned)
	i := sort.SearchFloat64s(m.unaligned, x)

	// Exact knot hit: return the aligned value with no arithmetic so the
	// knot contract holds to the last bit.
	if i < n && m.unaligned[i] == x {
		return m.aligned[i]
	}

	// Pick the segment: interior queries use the surrounding knots,
	// out-of-range queries extend the nearest boundary segment.
	lo := i - 1
	switch {
	case i == 0:
		lo = 0
	case i == n:
		lo = n - 2
	}
	hi := lo + 1

	slope := (m.aligned[hi] - m.aligned[lo]) / (m.unaligned[hi] - m.unaligned[lo])
	return m.aligned[lo] + (x-m.unaligned[lo])*slope
}

// Apply evaluates the mapping over a whole series, returning a new series.
func (m *Mapping) Apply(s Series) Series {
	out := make(Series, len(s))
	for i, x := range s {
		out[i] = m.At(x)
	}
	return out
}
