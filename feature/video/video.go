package video

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"nwbridge/core/archive"
	"nwbridge/core/convert"
	"nwbridge/core/metadata"
	"nwbridge/core/naming"
	"nwbridge/core/utils"
)

// Format is the registry identifier for this interface.
const Format = "Video"

// Interface adapts one or more behavior video files. Videos are written
// as image-series containers holding external file references; the actual
// frames are never copied.
type Interface struct {
	filePaths []string
}

// New builds the interface over the given video files.
func New(filePaths []string) (*Interface, error) {
	if len(filePaths) == 0 {
		return nil, convert.Configf("%s requires at least one file path", Format)
	}
	return &Interface{filePaths: append([]string(nil), filePaths...)}, nil
}

// SourceSchema declares the source-data parameters this interface accepts.
func SourceSchema() metadata.Tree {
	return metadata.Tree{
		"type": "object",
		"properties": metadata.Tree{
			"file_paths": metadata.Tree{
				"type":     "array",
				"items":    metadata.Tree{"type": "string"},
				"minItems": 1,
			},
		},
		"required":             []any{"file_paths"},
		"additionalProperties": false,
	}
}

// Register binds this interface into a format registry.
func Register(r *convert.Registry) error {
	return r.Register(Format, SourceSchema(), func(source convert.SourceData) (convert.DataInterface, error) {
		return New(utils.ToStringSlice(source["file_paths"]))
	})
}

// FilePaths returns the video paths in order.
func (i *Interface) FilePaths() []string {
	return append([]string(nil), i.filePaths...)
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

// AddToSession writes the videos as image-series containers.
//
// Options:
//   - "external_mode" (bool, default true): opt into merging videos whose
//     container names collide into one container aggregating their file
//     references. Outside external mode, a collision fails the write.
//   - "container_names" ([]string): one proposed name per video; defaults
//     to "Video <file stem>".
//   - "starting_times" ([]float64): one starting time per written
//     container. Mandatory when several videos stay separate; a count
//     mismatch is a configuration error.
func (i *Interface) AddToSession(ctx context.Context, session *archive.Session, md metadata.Tree, opts convert.Options) error {
	externalMode := true
	if v, ok := opts["external_mode"]; ok {
		externalMode = utils.ToBool(v)
	}

	names := utils.ToStringSlice(opts["container_names"])
	if names == nil {
		names = make([]string, len(i.filePaths))
		for idx, path := range i.filePaths {
			names[idx] = "Video " + stem(path)
		}
	}
	if len(names) != len(i.filePaths) {
		return convert.Configf("%d container names for %d videos", len(names), len(i.filePaths))
	}

	items := make([]naming.Item, len(i.filePaths))
	for idx, path := range i.filePaths {
		items[idx] = naming.Item{Name: names[idx], Refs: []string{path}}
	}
	containers, err := naming.PlanContainers(items, naming.Options{ExternalMode: externalMode})
	if err != nil {
		return err
	}
	merged := len(containers) < len(i.filePaths)

	startingTimes := utils.ToFloat64Slice(opts["starting_times"])
	if !merged {
		switch {
		case startingTimes == nil && len(containers) == 1:
			startingTimes = []float64{0}
		case startingTimes == nil:
			return convert.Configf("starting_times required for %d separate videos", len(containers))
		case len(startingTimes) != len(containers):
			return convert.Configf("%d starting times for %d videos", len(startingTimes), len(containers))
		}
	}

	for idx, c := range containers {
		data := map[string]any{"external_file": c.Refs}
		if !merged {
			data["starting_time"] = startingTimes[idx]
		} else if startingTimes != nil {
			data["starting_times"] = startingTimes
		}
		err := session.AddContainer(archive.Container{
			Name: c.Name,
			Kind: archive.KindImageSeries,
			Data: data,
		})
		if err != nil {
			return fmt.Errorf("video container %q: %w", c.Name, err)
		}
	}
	return nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
