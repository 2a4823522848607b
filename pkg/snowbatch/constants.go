package snowbatch

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Load run completed (skipped tables allowed)
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitConnectionError = 11 // Failed to connect to Snowflake
	ExitApprovalDenied  = 12 // User denied load approval
	ExitLoadFailed      = 13 // COPY INTO or stage operation failed
	ExitNoData          = 14 // Local data directory not found
)

const (
	// DefaultStageName is the internal stage used when the config omits one.
	DefaultStageName = "MIGRATION_LOAD_STAGE"

	// StagePrefixPending holds files that are staged but not yet loaded.
	StagePrefixPending = "not_processed"

	// StagePrefixDone holds files whose load has been acknowledged.
	StagePrefixDone = "processed"

	// DataFileSuffix is the expected extension of local table archives.
	DataFileSuffix = ".csv.gz"

	// DefaultOnError is the per-row error tolerance passed to COPY INTO.
	DefaultOnError = "CONTINUE"

	// DefaultForceApprovalCountdown is the countdown duration before force
	// approval proceeds.
	DefaultForceApprovalCountdown = 5 * time.Second

	// DefaultRetryInitialDelay is the default initial delay before the first
	// connection retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between connection
	// retry attempts.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMaxAttempts is the default maximum number of connection
	// retry attempts. Statement execution is never retried.
	DefaultRetryMaxAttempts = 3

	// DefaultTimeout bounds a whole load run. Catastrophic failure
	// protection, not per-statement timeout control.
	DefaultTimeout = 30 * time.Minute
)

// ValidOnErrorModes are the COPY INTO ON_ERROR values snowbatch accepts.
var ValidOnErrorModes = []string{"CONTINUE", "ABORT_STATEMENT", "SKIP_FILE"}
