package snowbatch

import "context"

// Approver handles user interaction for approval workflows. A batch load
// appends rows to production tables, so the run must be confirmed before the
// first statement executes.
//
// Implementations:
//   - ForcedApprover: Shows countdown and automatically approves
//   - InteractiveApprover: Prompts user to type the database name for confirmation
type Approver interface {
	// RequestApproval prompts for confirmation before loading into the
	// target database.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - dbName: Name of the target database
	//   - tableCount: Number of tables about to be processed
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, dbName string, tableCount int) (bool, error)
}
