package timeline

// ExtractRisingEdges returns the onset time of every pulse in a sampled
// synchronization channel. An onset is a transition from at-or-below the
// threshold to above it. The first sample counts as an onset if it is
// already above threshold.
//
// Sample i is assigned the time startTime + i/rate.
func ExtractRisingEdges(samples []float64, rate, startTime, threshold float64) Series {
	events := Series{}
	previousHigh := false
	for i, v := range samples {
		high := v > threshold
		if high && !previousHigh {
			events = append(events, startTime+float64(i)/rate)
		}
		previousHigh = high
	}
	return events
}
