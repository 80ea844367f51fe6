// Package metadata provides the nested metadata tree and the deep-merge
// rules used across the conversion pipeline.
//
// Metadata arrives from several sources with strictly increasing
// precedence: the interfaces themselves, then global, experiment, and
// session overrides from a batch specification, then explicit per-call
// overrides. DeepUpdate implements the merge used at every layer, so a
// chain of merges behaves exactly like a single merge of the
// highest-precedence source over all the rest.
package metadata
