package logging

import "github.com/vvka-141/snowbatch/pkg/snowbatch"

// NullLogger discards everything. Handy as the logger for load service tests
// that only care about executed statements, not output.
type NullLogger struct{}

// NewNullLogger creates a new NullLogger.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

// Verbose is a no-op.
func (l *NullLogger) Verbose(format string, args ...interface{}) {}

// Info is a no-op.
func (l *NullLogger) Info(format string, args ...interface{}) {}

// Error is a no-op.
func (l *NullLogger) Error(format string, args ...interface{}) {}

var _ snowbatch.Logger = (*NullLogger)(nil)
