// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and integrates seamlessly with the Fiber web
// framework used by the catalog API.
//
// # Context Awareness
//
// The WithRayID helper extracts the request ID from a Fiber context and
// attaches it to the log entry, ensuring that all logs related to a specific
// API request can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("conversion started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("handler failed", zap.Error(err))
package logger
