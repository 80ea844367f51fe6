// Package timeline provides the temporal alignment primitives used to
// reconcile independent acquisition clocks onto one reference timeline.
//
// Every acquisition device (neural digitizer, behavior tracker, camera)
// keeps its own clock, and those clocks drift relative to each other.
// Alignment brings each device's timestamps onto the reference clock,
// which is usually derived from TTL synchronization pulses recorded by
// the primary digitizer.
//
// # Alignment Methods
//
// Two methods are supported:
//
//  1. Direct substitution: an externally computed, index-aligned
//     replacement array overwrites the series one-to-one. The replacement
//     must match the original length and be sorted.
//
//  2. Interpolation: a piecewise-linear mapping built from known
//     (unaligned, aligned) knot pairs is applied to the series. Queries at
//     knot points reproduce the aligned values exactly; queries outside
//     the knot span extrapolate along the boundary segment's slope rather
//     than clamping, since event times routinely fall slightly outside the
//     calibration window.
//
// # TTL Extraction
//
// ExtractRisingEdges recovers pulse onset times from a sampled
// synchronization channel by detecting threshold crossings.
package timeline
