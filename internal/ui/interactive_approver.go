package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/snowbatch/pkg/snowbatch"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. It prompts the user to type the target database
// name to confirm the load.
type InteractiveApprover struct {
	verbose bool
	in      io.Reader
}

// NewInteractiveApprover creates a new InteractiveApprover reading from stdin.
func NewInteractiveApprover(verbose bool) snowbatch.Approver {
	return &InteractiveApprover{verbose: verbose, in: os.Stdin}
}

// RequestApproval prompts the user to type the database name to confirm.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, dbName string, tableCount int) (bool, error) {
	fmt.Fprintf(os.Stderr, "\n⚠️  You are about to bulk-load %d table(s) into database '%s'\n", tableCount, dbName)
	fmt.Fprintln(os.Stderr, "Loaded rows are appended to the target tables and are NOT rolled back on later failures.")
	fmt.Fprintf(os.Stderr, "\nTo confirm, type the database name '%s' and press Enter: ", dbName)

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.in)
		input, err := reader.ReadString('\n')
		if err != nil {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		if input == dbName {
			fmt.Fprintln(os.Stderr, "✓ Confirmed. Proceeding with batch load...")
			return true, nil
		}
		fmt.Fprintf(os.Stderr, "✗ Input '%s' does not match database name '%s'. Operation cancelled.\n", input, dbName)
		return false, nil
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ snowbatch.Approver = (*InteractiveApprover)(nil)
