package ui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/vvka-141/snowbatch/pkg/snowbatch"
)

// ForcedApprover implements the Approver interface for forced (non-interactive)
// approval. It displays a countdown and automatically approves after the
// countdown, used when the --force flag is provided.
type ForcedApprover struct {
	verbose bool
}

// NewForcedApprover creates a new ForcedApprover.
func NewForcedApprover(verbose bool) snowbatch.Approver {
	return &ForcedApprover{verbose: verbose}
}

// RequestApproval displays a countdown and automatically approves after the countdown.
func (a *ForcedApprover) RequestApproval(ctx context.Context, dbName string, tableCount int) (bool, error) {
	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "⚠️  About to bulk-load %d table(s) into database '%s'\n", tableCount, dbName)
	fmt.Fprintln(os.Stderr, "Loaded rows are appended to the target tables and are NOT rolled back on later failures.")

	countdownSeconds := int(snowbatch.DefaultForceApprovalCountdown.Seconds())
	for i := countdownSeconds; i > 0; i-- {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
			fmt.Fprintf(os.Stderr, "\rStarting in: %d seconds... (Press Ctrl+C to cancel)", i)
			time.Sleep(1 * time.Second)
		}
	}

	fmt.Fprintf(os.Stderr, "\r✓ Proceeding with batch load...                                      \n")
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ snowbatch.Approver = (*ForcedApprover)(nil)
