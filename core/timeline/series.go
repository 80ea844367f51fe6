package timeline

import "fmt"

// Series is an ordered sequence of timestamps in seconds.
// Timestamps are monotonically non-decreasing by convention.
type Series []float64

// Copy returns an independent copy of the series.
func (s Series) Copy() Series {
	out := make(Series, len(s))
	copy(out, s)
	return out
}

// IsSorted reports whether the series is monotonically non-decreasing.
func (s Series) IsSorted() bool {
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return false
		}
	}
	return true
}

// Shift returns a new series with offset added to every timestamp.
func (s Series) Shift(offset float64) Series {
	out := make(Series, len(s))
	for i, t := range s {
		out[i] = t + offset
	}
	return out
}

// ValidateReplacement checks that aligned is a legal direct-substitution
// replacement for current: same length and sorted. No interpolation is
// involved; the caller swaps the arrays one-to-one on success.
func ValidateReplacement(current, aligned Series) error {
	if len(aligned) != len(current) {
		return fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(aligned), len(current))
	}
	if !aligned.IsSorted() {
		return ErrUnsortedTimestamps
	}
	return nil
}
