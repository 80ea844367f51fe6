package cmd

import (
	"nwbridge/core/convert"
	"nwbridge/feature/events"
	"nwbridge/feature/intervals"
	"nwbridge/feature/nidq"
	"nwbridge/feature/recording"
	"nwbridge/feature/video"
)

// newRegistry builds the format registry with every data interface the
// tool ships. Registration compiles each source schema, so a broken
// schema fails here rather than mid-batch.
func newRegistry() (*convert.Registry, error) {
	registry := convert.NewRegistry()
	for _, register := range []func(*convert.Registry) error{
		events.Register,
		intervals.Register,
		nidq.Register,
		recording.Register,
		video.Register,
	} {
		if err := register(registry); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
