package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForcedApprover_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	approver := NewForcedApprover(false)
	approved, err := approver.RequestApproval(ctx, "ANALYTICS", 3)

	assert.False(t, approved)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInteractiveApprover_ExactMatchApproves(t *testing.T) {
	approver := &InteractiveApprover{in: strings.NewReader("ANALYTICS\n")}

	approved, err := approver.RequestApproval(context.Background(), "ANALYTICS", 2)

	require.NoError(t, err)
	assert.True(t, approved)
}

func TestInteractiveApprover_TrimsWhitespace(t *testing.T) {
	approver := &InteractiveApprover{in: strings.NewReader("  ANALYTICS  \n")}

	approved, err := approver.RequestApproval(context.Background(), "ANALYTICS", 1)

	require.NoError(t, err)
	assert.True(t, approved)
}

func TestInteractiveApprover_MismatchDenies(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{name: "wrong name", input: "PRODUCTION\n"},
		{name: "wrong case", input: "analytics\n"},
		{name: "empty input", input: "\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			approver := &InteractiveApprover{in: strings.NewReader(tc.input)}

			approved, err := approver.RequestApproval(context.Background(), "ANALYTICS", 1)

			require.NoError(t, err)
			assert.False(t, approved)
		})
	}
}

func TestInteractiveApprover_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	// Reader that never produces a line, so the prompt blocks until cancel.
	approver := &InteractiveApprover{in: blockingReader{}}

	approved, err := approver.RequestApproval(ctx, "ANALYTICS", 1)

	assert.False(t, approved)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type blockingReader struct{}

func (blockingReader) Read(p []byte) (int, error) {
	select {} // block forever
}
