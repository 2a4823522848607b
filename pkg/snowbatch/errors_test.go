package snowbatch_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vvka-141/snowbatch/pkg/snowbatch"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, snowbatch.ExitSuccess},
		{"general error", errors.New("something went wrong"), snowbatch.ExitGeneralError},
		{"invalid config", snowbatch.ErrInvalidConfig, snowbatch.ExitConfigError},
		{"unknown table", snowbatch.ErrUnknownTable, snowbatch.ExitConfigError},
		{"connection failed", snowbatch.ErrConnectionFailed, snowbatch.ExitConnectionError},
		{"approval denied", snowbatch.ErrApprovalDenied, snowbatch.ExitApprovalDenied},
		{"load failed", snowbatch.ErrLoadFailed, snowbatch.ExitLoadFailed},
		{"no data", snowbatch.ErrNoData, snowbatch.ExitNoData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := snowbatch.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeForError_WrappedSentinels(t *testing.T) {
	err := fmt.Errorf("COPY INTO \"users\" failed: %w", snowbatch.ErrLoadFailed)
	if got := snowbatch.ExitCodeForError(err); got != snowbatch.ExitLoadFailed {
		t.Errorf("ExitCodeForError(wrapped) = %d, want %d", got, snowbatch.ExitLoadFailed)
	}
}

func TestExitCodeForError_ConnectionPatterns(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"failed to connect", errors.New("failed to connect to account xy12345")},
		{"connection refused", errors.New("dial tcp: connection refused")},
		{"no such host", errors.New("dial tcp: lookup bad.host: no such host")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := snowbatch.ExitCodeForError(tt.err); got != snowbatch.ExitConnectionError {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, snowbatch.ExitConnectionError)
			}
		})
	}
}
