package convert

import (
	"context"

	"nwbridge/core/archive"
	"nwbridge/core/metadata"
	"nwbridge/core/timeline"
)

// SourceData maps constructor parameter names to file/folder paths or
// primitive values. It is validated against the interface's source schema
// before construction.
type SourceData map[string]any

// Options are per-interface conversion options passed through to
// AddToSession (e.g. external mode or starting times for video).
type Options map[string]any

// DataInterface is the shared capability set every modality adapter
// exposes to the composition layer.
type DataInterface interface {
	// GetMetadata returns the metadata this interface contributes.
	GetMetadata() metadata.Tree
	// GetMetadataSchema describes the metadata this interface produces,
	// as a JSON-Schema-like tree.
	GetMetadataSchema() metadata.Tree
	// AddToSession writes the interface's containers into the session
	// using the already-merged metadata and per-interface options.
	AddToSession(ctx context.Context, session *archive.Session, md metadata.Tree, opts Options) error
}

// TemporalAligner is the optional capability of interfaces that own a
// timestamp series. Alignment mutates the interface's internal series in
// place; reapplying composes further.
type TemporalAligner interface {
	// GetTimestamps returns the interface's current timestamp series.
	GetTimestamps() timeline.Series
	// AlignTimestamps replaces the series with an externally computed,
	// index-aligned replacement of equal length.
	AlignTimestamps(aligned timeline.Series) error
	// AlignByInterpolation maps the series through the piecewise-linear
	// function built from the given knot pairs.
	AlignByInterpolation(aligned, unaligned timeline.Series) error
}
