// Package utils provides scalar coercion helpers shared across the
// pipeline. Source data and conversion options arrive from YAML as loosely
// typed values (ints where floats are expected, []any where []float64 or
// []string is expected); these helpers normalize them.
package utils
