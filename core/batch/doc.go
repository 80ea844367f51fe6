// Package batch runs whole conversion specifications: YAML files that
// declare metadata, data interfaces and sessions in a cascading
// global, experiment, session hierarchy.
//
// A specification is validated against an embedded JSON schema before
// anything touches the filesystem. The Runner then converts every
// session, resolves placeholder output names from session metadata
// after the batch completes, and optionally records each run in the
// catalog database and uploads the archives to object storage.
package batch
