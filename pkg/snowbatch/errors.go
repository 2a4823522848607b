package snowbatch

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := loader.Run(ctx, config)
//	if errors.Is(err, snowbatch.ErrLoadFailed) {
//	    // The file for the failed table is still in the pending prefix
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates the Snowflake connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrApprovalDenied indicates the user denied approval for the load.
	ErrApprovalDenied = errors.New("approval denied")

	// ErrLoadFailed indicates a COPY INTO or stage operation failed.
	ErrLoadFailed = errors.New("load failed")

	// ErrNoData indicates the local data directory does not exist.
	ErrNoData = errors.New("data directory not found")

	// ErrUnknownTable indicates a requested table is not in the configured list.
	ErrUnknownTable = errors.New("unknown table")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Check for sentinel errors
	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrUnknownTable):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	case errors.Is(err, ErrLoadFailed):
		return ExitLoadFailed
	case errors.Is(err, ErrNoData):
		return ExitNoData
	}

	// Check for common connection error patterns
	errStr := err.Error()
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
