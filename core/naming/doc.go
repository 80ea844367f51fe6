// Package naming assigns unique container names inside one output file's
// namespace and renames placeholder-named batch outputs after the fact.
//
// # Container Planning
//
// When several logical units (tracks, video files) are written into one
// namespace, each proposed name must be unique. Colliding names are only
// legal when the caller explicitly opts into external-reference mode, in
// which case all colliding units merge into a single container that
// aggregates their references. A collision outside that mode fails with a
// ConflictError before anything is written.
//
// # Batch Renaming
//
// Sessions that lack enough metadata to name their output file get a
// deterministic placeholder name. Once the whole batch has run, a global
// uniqueness pass derives descriptive names from the metadata of every
// produced file and renames the placeholders. An empty or colliding
// derived name is an UnresolvedNameError for that file.
package naming
