// Package recording is the thin adapter over extracellular recording
// folders; it contributes device metadata and an external data reference.
package recording
