// Package convert composes heterogeneous data interfaces into one
// conversion run.
//
// A data interface adapts one acquisition modality (trial intervals,
// behavior events, a synchronization channel, video) to a shared
// capability set: metadata retrieval, a metadata schema, and writing its
// containers into an archive session. Interfaces that carry timestamps
// additionally implement TemporalAligner.
//
// Two compositions exist:
//
//   - Converter: a fixed, ordered list of role-to-interface bindings; each
//     role appears exactly once.
//   - Pipe: an anonymous ordered list of interfaces with no role labels.
//
// Both merge member metadata with metadata.DeepUpdate, later members
// overriding earlier ones at identical paths.
//
// The Registry maps format identifiers to constructors, resolved at
// startup. Each registration carries a JSON-Schema source-data schema;
// Build validates the caller's source data against it before the
// constructor runs, so misconfiguration fails before any I/O.
package convert
