package events

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"nwbridge/core/archive"
	"nwbridge/core/convert"
	"nwbridge/core/metadata"
	"nwbridge/core/timeline"
	"nwbridge/core/utils"
)

// Format is the registry identifier for this interface.
const Format = "BehaviorEvents"

// DefaultContainerName is used unless conversion options override it.
const DefaultContainerName = "BehaviorEvents"

// Interface adapts a discrete behavior-event stream: a single series of
// event onset times on the acquisition system's own clock.
type Interface struct {
	times timeline.Series
}

// New builds an interface directly from event times, e.g. when a
// synchronization workflow upstream already produced them.
func New(eventTimes []float64) *Interface {
	return &Interface{times: timeline.Series(eventTimes).Copy()}
}

// NewFromFile reads event times from a text file, one per line.
func NewFromFile(path string) (*Interface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open event file: %w", err)
	}
	defer f.Close()

	var times timeline.Series
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		times = append(times, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &Interface{times: times}, nil
}

// SourceSchema declares the source-data parameters this interface accepts:
// either inline event times or a file path.
func SourceSchema() metadata.Tree {
	return metadata.Tree{
		"type": "object",
		"properties": metadata.Tree{
			"event_times": metadata.Tree{"type": "array", "items": metadata.Tree{"type": "number"}},
			"file_path":   metadata.Tree{"type": "string"},
		},
		"additionalProperties": false,
	}
}

// Register binds this interface into a format registry.
func Register(r *convert.Registry) error {
	return r.Register(Format, SourceSchema(), func(source convert.SourceData) (convert.DataInterface, error) {
		if path, ok := source["file_path"]; ok {
			return NewFromFile(utils.ToString(path))
		}
		if raw, ok := source["event_times"]; ok {
			return New(utils.ToFloat64Slice(raw)), nil
		}
		return nil, convert.Configf("%s requires event_times or file_path", Format)
	})
}

// GetTimestamps returns the current event times.
func (i *Interface) GetTimestamps() timeline.Series {
	return i.times.Copy()
}

// AlignTimestamps replaces the event times with an index-aligned
// replacement of equal length.
func (i *Interface) AlignTimestamps(aligned timeline.Series) error {
	if err := timeline.ValidateReplacement(i.times, aligned); err != nil {
		return err
	}
	i.times = aligned.Copy()
	return nil
}

// AlignByInterpolation maps the event times through the piecewise-linear
// function defined by the knot pairs.
func (i *Interface) AlignByInterpolation(aligned, unaligned timeline.Series) error {
	mapping, err := timeline.NewMapping(aligned, unaligned)
	if err != nil {
		return err
	}
	i.times = mapping.Apply(i.times)
	return nil
}

func (i *Interface) GetMetadata() metadata.Tree {
	return metadata.Tree{}
}

func (i *Interface) GetMetadataSchema() metadata.Tree {
	return metadata.Tree{
		"type": "object",
		"properties": metadata.Tree{
			"Behavior": metadata.Tree{"type": "object"},
		},
	}
}

// AddToSession writes the event series as an Events container. The
// container name may be overridden with the "container_name" option.
func (i *Interface) AddToSession(ctx context.Context, session *archive.Session, md metadata.Tree, opts convert.Options) error {
	name := DefaultContainerName
	if v, ok := opts["container_name"]; ok {
		name = utils.ToString(v)
	}
	return session.AddContainer(archive.Container{
		Name: name,
		Kind: archive.KindEvents,
		Data: map[string]any{"timestamps": []float64(i.times.Copy())},
	})
}
