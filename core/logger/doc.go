// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs
// production). When no format is configured, console output is used on a terminal and JSON
// everywhere else.
//
// # Context Awareness
//
// Builds process many releases concurrently, so log lines are tagged rather than interleaved
// blindly. WithRun attaches the build run id and WithRelease attaches the product, version and
// sequence of the release being processed.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json, console, or empty for auto-detection
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log = logger.WithRun(log, runID)
//	logger.WithRelease(log, release).Info("Release folded")
package logger
