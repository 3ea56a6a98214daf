package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across py2rs.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Inputs
	FieldFile  = "file"
	FieldFiles = "files"
	FieldLine  = "line"

	// Translation
	FieldNodeKind   = "node_kind"
	FieldErrorKind  = "error_kind"
	FieldSignatures = "signatures"
	FieldMarkers    = "markers"
	FieldFragments  = "fragments"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts
	FieldCount   = "count"
	FieldWorkers = "workers"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Watcher struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewWatcher() *Watcher {
//	    return &Watcher{
//	        logger: logger.ComponentLogger("driver.watch"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
// Example:
//
//	fileLogger := logger.ChildLogger(baseLogger, "file", path)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
