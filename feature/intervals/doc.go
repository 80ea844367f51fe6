// Package intervals adapts CSV trial tables whose columns are timestamp
// series (start_time, stop_time, ...) on the tracking system's clock.
package intervals
