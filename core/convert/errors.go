package convert

import "fmt"

// ConfigurationError reports invalid configuration: a schema validation
// failure, a missing required parameter, or a mismatched per-item
// parameter count. It is surfaced before any I/O happens.
type ConfigurationError struct {
	// Reason describes what was wrong.
	Reason string
	// Err optionally carries the underlying validation error.
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Configf builds a ConfigurationError from a format string.
func Configf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}
