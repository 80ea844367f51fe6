package intervals

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"nwbridge/core/archive"
	"nwbridge/core/convert"
	"nwbridge/core/metadata"
	"nwbridge/core/timeline"
	"nwbridge/core/utils"
)

// Format is the registry identifier for this interface.
const Format = "CsvTimeIntervals"

// DefaultColumn is the series AlignTimestamps targets when no column is
// named.
const DefaultColumn = "start_time"

// DefaultContainerName is used unless conversion options override it.
const DefaultContainerName = "trials"

// Interface adapts a CSV table of per-trial time columns (start_time,
// stop_time, ...). Every column is a timestamp series on the tracking
// system's clock and can be aligned independently or all at once.
type Interface struct {
	filePath string
	order    []string
	columns  map[string]timeline.Series
}

// New reads the CSV table at filePath. The first row is the header; every
// cell must parse as a float.
func New(filePath string) (*Interface, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open interval table: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%s: empty interval table", filePath)
	}

	header := records[0]
	columns := make(map[string]timeline.Series, len(header))
	for _, name := range header {
		columns[name] = timeline.Series{}
	}
	for rowIndex, row := range records[1:] {
		if len(row) != len(header) {
			return nil, fmt.Errorf("%s row %d: %d cells, want %d", filePath, rowIndex+2, len(row), len(header))
		}
		for colIndex, cell := range row {
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d column %q: %w", filePath, rowIndex+2, header[colIndex], err)
			}
			columns[header[colIndex]] = append(columns[header[colIndex]], value)
		}
	}

	return &Interface{filePath: filePath, order: header, columns: columns}, nil
}

// SourceSchema declares the source-data parameters this interface accepts.
func SourceSchema() metadata.Tree {
	return metadata.Tree{
		"type": "object",
		"properties": metadata.Tree{
			"file_path": metadata.Tree{"type": "string"},
		},
		"required":             []any{"file_path"},
		"additionalProperties": false,
	}
}

// Register binds this interface into a format registry.
func Register(r *convert.Registry) error {
	return r.Register(Format, SourceSchema(), func(source convert.SourceData) (convert.DataInterface, error) {
		return New(utils.ToString(source["file_path"]))
	})
}

// Columns returns the column names in file order.
func (i *Interface) Columns() []string {
	return append([]string(nil), i.order...)
}

// GetTimestamps returns the default column's series.
func (i *Interface) GetTimestamps() timeline.Series {
	return i.columns[DefaultColumn].Copy()
}

// ColumnTimestamps returns the named column's series.
func (i *Interface) ColumnTimestamps(column string) (timeline.Series, error) {
	series, ok := i.columns[column]
	if !ok {
		return nil, i.unknownColumn(column)
	}
	return series.Copy(), nil
}

// AlignTimestamps replaces the default column with an index-aligned
// replacement of equal length.
func (i *Interface) AlignTimestamps(aligned timeline.Series) error {
	return i.AlignColumn(DefaultColumn, aligned)
}

// AlignColumn replaces the named column with an index-aligned replacement
// of equal length.
func (i *Interface) AlignColumn(column string, aligned timeline.Series) error {
	current, ok := i.columns[column]
	if !ok {
		return i.unknownColumn(column)
	}
	if err := timeline.ValidateReplacement(current, aligned); err != nil {
		return fmt.Errorf("column %q: %w", column, err)
	}
	i.columns[column] = aligned.Copy()
	return nil
}

// AlignByInterpolation maps every column through the piecewise-linear
// function defined by the knot pairs.
func (i *Interface) AlignByInterpolation(aligned, unaligned timeline.Series) error {
	mapping, err := timeline.NewMapping(aligned, unaligned)
	if err != nil {
		return err
	}
	for name, series := range i.columns {
		i.columns[name] = mapping.Apply(series)
	}
	return nil
}

func (i *Interface) GetMetadata() metadata.Tree {
	return metadata.Tree{}
}

func (i *Interface) GetMetadataSchema() metadata.Tree {
	return metadata.Tree{
		"type": "object",
		"properties": metadata.Tree{
			"TimeIntervals": metadata.Tree{"type": "object"},
		},
	}
}

// AddToSession writes the table as a TimeIntervals container. The
// container name may be overridden with the "container_name" option.
func (i *Interface) AddToSession(ctx context.Context, session *archive.Session, md metadata.Tree, opts convert.Options) error {
	name := DefaultContainerName
	if v, ok := opts["container_name"]; ok {
		name = utils.ToString(v)
	}
	data := make(map[string]any, len(i.columns))
	for _, column := range i.order {
		data[column] = []float64(i.columns[column].Copy())
	}
	return session.AddContainer(archive.Container{
		Name: name,
		Kind: archive.KindTimeIntervals,
		Data: data,
	})
}

func (i *Interface) unknownColumn(column string) error {
	return convert.Configf("unknown column %q in %s (have %v)", column, i.filePath, i.order)
}
