package nidq

import (
	"context"
	"fmt"
	"math"
	"sort"

	"nwbridge/core/archive"
	"nwbridge/core/convert"
	"nwbridge/core/metadata"
	"nwbridge/core/timeline"
	"nwbridge/core/utils"
)

// Format is the registry identifier for the mock synchronization source.
const Format = "MockNIDQ"

// DefaultThreshold separates TTL high from low for 0..5 V logic.
const DefaultThreshold = 1.0

// Interface adapts a digitizer's auxiliary analog/digital channels, the
// ones that receive TTL synchronization pulses from other acquisition
// systems. It is the reference-clock side of alignment: other interfaces
// align their series against the pulse times extracted here.
type Interface struct {
	rate      float64
	startTime float64
	order     []string
	channels  map[string][]float64
}

// MockConfig describes a simulated synchronization recording with pulses
// at caller-specified times, for deterministic tests and dry runs.
type MockConfig struct {
	// SignalDuration is the recording length in seconds.
	SignalDuration float64
	// SamplingRate in Hz. Defaults to 1000.
	SamplingRate float64
	// StartTime of the first sample on the digitizer clock.
	StartTime float64
	// PulseDuration in seconds. Defaults to 0.01.
	PulseDuration float64
	// Amplitude of a pulse. Defaults to 5 (TTL high).
	Amplitude float64
	// TTLTimes maps channel names to pulse onset times.
	TTLTimes map[string][]float64
}

// NewMock synthesizes channel waveforms with rising edges at the
// configured times. Onsets snap to the sample grid, so extraction
// recovers exactly the grid-aligned times.
func NewMock(cfg MockConfig) (*Interface, error) {
	if cfg.SignalDuration <= 0 {
		return nil, convert.Configf("mock signal duration must be positive, got %v", cfg.SignalDuration)
	}
	if cfg.SamplingRate == 0 {
		cfg.SamplingRate = 1000
	}
	if cfg.PulseDuration == 0 {
		cfg.PulseDuration = 0.01
	}
	if cfg.Amplitude == 0 {
		cfg.Amplitude = 5
	}
	if len(cfg.TTLTimes) == 0 {
		return nil, convert.Configf("mock needs at least one channel of TTL times")
	}

	totalSamples := int(math.Round(cfg.SignalDuration * cfg.SamplingRate))
	pulseSamples := int(math.Round(cfg.PulseDuration * cfg.SamplingRate))
	if pulseSamples < 1 {
		pulseSamples = 1
	}

	names := make([]string, 0, len(cfg.TTLTimes))
	for name := range cfg.TTLTimes {
		names = append(names, name)
	}
	sort.Strings(names)

	channels := make(map[string][]float64, len(names))
	for _, name := range names {
		samples := make([]float64, totalSamples)
		for _, onset := range cfg.TTLTimes[name] {
			start := int(math.Round((onset - cfg.StartTime) * cfg.SamplingRate))
			if start < 0 || start >= totalSamples {
				return nil, convert.Configf("channel %q: pulse at %v falls outside the %vs signal", name, onset, cfg.SignalDuration)
			}
			for s := start; s < start+pulseSamples && s < totalSamples; s++ {
				samples[s] = cfg.Amplitude
			}
		}
		channels[name] = samples
	}

	return &Interface{
		rate:      cfg.SamplingRate,
		startTime: cfg.StartTime,
		order:     names,
		channels:  channels,
	}, nil
}

// SourceSchema declares the source-data parameters of the mock source.
func SourceSchema() metadata.Tree {
	return metadata.Tree{
		"type": "object",
		"properties": metadata.Tree{
			"signal_duration": metadata.Tree{"type": "number"},
			"sampling_rate":   metadata.Tree{"type": "number"},
			"start_time":      metadata.Tree{"type": "number"},
			"pulse_duration":  metadata.Tree{"type": "number"},
			"ttl_times": metadata.Tree{
				"type": "object",
				"additionalProperties": metadata.Tree{
					"type":  "array",
					"items": metadata.Tree{"type": "number"},
				},
			},
		},
		"required":             []any{"signal_duration", "ttl_times"},
		"additionalProperties": false,
	}
}

// Register binds the mock source into a format registry.
func Register(r *convert.Registry) error {
	return r.Register(Format, SourceSchema(), func(source convert.SourceData) (convert.DataInterface, error) {
		cfg := MockConfig{
			SignalDuration: utils.ToFloat64(source["signal_duration"]),
			SamplingRate:   utils.ToFloat64(source["sampling_rate"]),
			StartTime:      utils.ToFloat64(source["start_time"]),
			PulseDuration:  utils.ToFloat64(source["pulse_duration"]),
		}
		if raw, ok := source["ttl_times"].(map[string]any); ok {
			cfg.TTLTimes = make(map[string][]float64, len(raw))
			for name, times := range raw {
				cfg.TTLTimes[name] = utils.ToFloat64Slice(times)
			}
		}
		return NewMock(cfg)
	})
}

// ChannelNames returns the channel names, sorted.
func (i *Interface) ChannelNames() []string {
	return append([]string(nil), i.order...)
}

// SamplingRate returns the channel sampling rate in Hz.
func (i *Interface) SamplingRate() float64 {
	return i.rate
}

// EventTimesFromTTL extracts pulse onset times from the named channel
// using the given threshold. The result is the synchronization pulse
// train other interfaces align against.
func (i *Interface) EventTimesFromTTL(channel string, threshold float64) (timeline.Series, error) {
	samples, ok := i.channels[channel]
	if !ok {
		return nil, &timeline.MissingChannelError{Channel: channel, Available: i.ChannelNames()}
	}
	return timeline.ExtractRisingEdges(samples, i.rate, i.startTime, threshold), nil
}

func (i *Interface) GetMetadata() metadata.Tree {
	return metadata.Tree{
		"Ecephys": metadata.Tree{
			"Device": []any{
				metadata.Tree{"name": "NIDQBoard", "description": "Auxiliary synchronization board", "manufacturer": "National Instruments"},
			},
		},
	}
}

func (i *Interface) GetMetadataSchema() metadata.Tree {
	return metadata.Tree{
		"type": "object",
		"properties": metadata.Tree{
			"Ecephys": metadata.Tree{"type": "object"},
		},
	}
}

// AddToSession writes one Events container per channel holding its pulse
// train. The extraction threshold may be overridden with the "threshold"
// option.
func (i *Interface) AddToSession(ctx context.Context, session *archive.Session, md metadata.Tree, opts convert.Options) error {
	threshold := DefaultThreshold
	if v, ok := opts["threshold"]; ok {
		threshold = utils.ToFloat64(v)
	}
	for _, name := range i.order {
		pulses, err := i.EventTimesFromTTL(name, threshold)
		if err != nil {
			return err
		}
		err = session.AddContainer(archive.Container{
			Name: fmt.Sprintf("TTL %s", name),
			Kind: archive.KindEvents,
			Data: map[string]any{
				"timestamps":    []float64(pulses),
				"sampling_rate": i.rate,
			},
		})
		if err != nil {
			return err
		}
	}
	return nil
}
