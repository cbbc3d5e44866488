// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and is shared by the CLI pipeline and the
// summary HTTP server.
//
// # Context Awareness
//
// Export runs are identified by a run ID. The WithRunID helper attaches that ID
// to the logger so every warning produced while a run degrades (skipped
// categories, dropped rows) can be correlated with its summary. For the HTTP
// server, WithRequestID performs the same job per request using the Fiber
// context.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log = logger.WithRunID(log, run.ID)
//	log.Warn("category skipped", zap.String("category", cat))
package logger
