// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber web framework.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID stored by the rayid middleware and attaches it to the
// log entry, so every line emitted while serving one request can be correlated.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (collectors) or console (terminals)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Reload complete", zap.Int("matches", n))
package logger
