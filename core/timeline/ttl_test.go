package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractRisingEdges(t *testing.T) {
	tests := []struct {
		name      string
		samples   []float64
		rate      float64
		startTime float64
		threshold float64
		want      Series
	}{
		{
			name:      "TwoPulses",
			samples:   []float64{0, 0, 5, 5, 0, 0, 5, 0},
			rate:      2.0,
			startTime: 0,
			threshold: 1.0,
			want:      Series{1.0, 3.0},
		},
		{
			name:      "StartsHigh",
			samples:   []float64{5, 5, 0, 5},
			rate:      1.0,
			startTime: 10.0,
			threshold: 1.0,
			want:      Series{10.0, 13.0},
		},
		{
			name:      "NoPulses",
			samples:   []float64{0, 0.5, 0.9},
			rate:      1.0,
			startTime: 0,
			threshold: 1.0,
			want:      Series{},
		},
		{
			name:      "ThresholdIsExclusive",
			samples:   []float64{0, 1.0, 0, 1.1},
			rate:      1.0,
			startTime: 0,
			threshold: 1.0,
			want:      Series{3.0},
		},
		{
			name:      "Empty",
			samples:   nil,
			rate:      1.0,
			startTime: 0,
			threshold: 1.0,
			want:      Series{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractRisingEdges(tt.samples, tt.rate, tt.startTime, tt.threshold)
			assert.Equal(t, tt.want, got)
		})
	}
}
