package recording

import (
	"context"
	"encoding/json"

	"nwbridge/core/archive"
	"nwbridge/core/convert"
	"nwbridge/core/metadata"
	"nwbridge/core/utils"
)

// Format is the registry identifier for this interface.
const Format = "Recording"

// Interface is a thin adapter over an extracellular recording folder. The
// heavy lifting (reading the binary stream) belongs to the external
// archival writer; this interface contributes device metadata and an
// external reference to the data.
type Interface struct {
	folderPath  string
	stream      string
	rate        float64
	numChannels int
	seriesKey   string
}

// New describes a recording folder. seriesKey names the electrical series
// container (e.g. "ElectricalSeriesAP").
func New(folderPath, stream string, rate float64, numChannels int, seriesKey string) (*Interface, error) {
	if folderPath == "" {
		return nil, convert.Configf("%s requires folder_path", Format)
	}
	if seriesKey == "" {
		seriesKey = "ElectricalSeries"
	}
	return &Interface{
		folderPath:  folderPath,
		stream:      stream,
		rate:        rate,
		numChannels: numChannels,
		seriesKey:   seriesKey,
	}, nil
}

// SourceSchema declares the source-data parameters this interface accepts.
func SourceSchema() metadata.Tree {
	return metadata.Tree{
		"type": "object",
		"properties": metadata.Tree{
			"folder_path":   metadata.Tree{"type": "string"},
			"stream":        metadata.Tree{"type": "string"},
			"sampling_rate": metadata.Tree{"type": "number"},
			"channel_count": metadata.Tree{"type": "integer"},
			"es_key":        metadata.Tree{"type": "string"},
		},
		"required":             []any{"folder_path"},
		"additionalProperties": false,
	}
}

// Register binds this interface into a format registry.
func Register(r *convert.Registry) error {
	return r.Register(Format, SourceSchema(), func(source convert.SourceData) (convert.DataInterface, error) {
		return New(
			utils.ToString(source["folder_path"]),
			utils.ToString(source["stream"]),
			utils.ToFloat64(source["sampling_rate"]),
			utils.ToInt(source["channel_count"]),
			utils.ToString(source["es_key"]),
		)
	})
}

func (i *Interface) GetMetadata() metadata.Tree {
	description, _ := json.Marshal(map[string]any{"stream": i.stream})
	return metadata.Tree{
		"Ecephys": metadata.Tree{
			"Device": []any{
				metadata.Tree{
					"name":        "RecordingProbe",
					"description": string(description),
				},
			},
			i.seriesKey: metadata.Tree{
				"name":        i.seriesKey,
				"description": "Raw acquisition traces.",
			},
		},
	}
}

func (i *Interface) GetMetadataSchema() metadata.Tree {
	return metadata.Tree{
		"type": "object",
		"properties": metadata.Tree{
			"Ecephys": metadata.Tree{
				"type":     "object",
				"required": []any{"Device"},
			},
		},
	}
}

// AddToSession writes the electrical series container referencing the
// source folder.
func (i *Interface) AddToSession(ctx context.Context, session *archive.Session, md metadata.Tree, opts convert.Options) error {
	return session.AddContainer(archive.Container{
		Name: i.seriesKey,
		Kind: archive.KindElectricalSeries,
		Data: map[string]any{
			"folder_path":   i.folderPath,
			"stream":        i.stream,
			"sampling_rate": i.rate,
			"channel_count": i.numChannels,
		},
	})
}
