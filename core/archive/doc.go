// Package archive assembles one session's containers and hands them to a
// Writer for persistence.
//
// The real archival serialization (NWB/HDF5) is delegated to external
// tooling and is out of scope here; FileWriter persists a JSON rendition
// of the assembled session so the pipeline has a concrete, inspectable
// output to write, upload, and rename. The Session enforces the namespace
// invariant: no two containers in one file share a name.
package archive
