package snowbatch

import (
	"errors"
	"fmt"
	"time"
)

// ConnectionConfig represents resolved Snowflake connection parameters.
type ConnectionConfig struct {
	Account   string
	User      string
	Password  string
	Warehouse string
	Database  string
	Schema    string
	Role      string

	// AppName is reported to Snowflake as the client application.
	AppName string

	// LoginTimeout bounds the driver's login handshake. Zero uses the
	// driver default.
	LoginTimeout time.Duration
}

// Validate checks if the ConnectionConfig has all fields required to build a DSN.
// It returns a multi-error if multiple validation failures occur.
func (c *ConnectionConfig) Validate() error {
	var errs []error

	if c.Account == "" {
		errs = append(errs, fmt.Errorf("account is required: %w", ErrInvalidConfig))
	}
	if c.User == "" {
		errs = append(errs, fmt.Errorf("user is required: %w", ErrInvalidConfig))
	}
	if c.Database == "" {
		errs = append(errs, fmt.Errorf("database is required: %w", ErrInvalidConfig))
	}
	if c.Schema == "" {
		errs = append(errs, fmt.Errorf("schema is required: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// LoadConfig contains all parameters needed for one batch load run.
type LoadConfig struct {
	// Connection holds the resolved Snowflake connection parameters.
	Connection ConnectionConfig

	// Tables are the table names to process, in order.
	Tables []string

	// DataDir is the local directory holding <table>.csv.gz archives.
	DataDir string

	// Stage is the internal stage name. Defaults to DefaultStageName.
	Stage string

	// OnError is the COPY INTO ON_ERROR mode. Defaults to DefaultOnError.
	OnError string

	// Force bypasses the interactive approval prompt.
	Force bool

	// Timeout is the global timeout for the entire run.
	Timeout time.Duration

	// Verbose enables detailed logging.
	Verbose bool
}

// Validate checks if the LoadConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *LoadConfig) Validate() error {
	var errs []error

	if err := c.Connection.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(c.Tables) == 0 {
		errs = append(errs, fmt.Errorf("at least one table is required: %w", ErrInvalidConfig))
	}

	if c.DataDir == "" {
		errs = append(errs, fmt.Errorf("data directory is required: %w", ErrInvalidConfig))
	}

	if c.OnError != "" && !isValidOnError(c.OnError) {
		errs = append(errs, fmt.Errorf("invalid ON_ERROR mode %q (valid: %v): %w",
			c.OnError, ValidOnErrorModes, ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

func isValidOnError(mode string) bool {
	for _, m := range ValidOnErrorModes {
		if m == mode {
			return true
		}
	}
	return false
}

// TableJob describes the work for a single table: where its archive lives
// locally and where it lands in the stage. Jobs are derived per run from the
// configuration and never persisted.
type TableJob struct {
	// Table is the target table name.
	Table string

	// LocalPath is the absolute path of the local <table>.csv.gz archive.
	LocalPath string

	// PendingPath is the stage location before the load, e.g.
	// "@MIGRATION_LOAD_STAGE/not_processed/users.csv.gz".
	PendingPath string

	// DonePath is the stage location after a successful load.
	DonePath string

	// FileExists reports whether LocalPath existed when the plan was built.
	FileExists bool
}

// TableStatus is the outcome of a single table within a run.
type TableStatus int

const (
	StatusLoaded TableStatus = iota
	StatusSkipped
	StatusFailed
)

// String returns a human-readable representation of the TableStatus.
func (s TableStatus) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// TableResult pairs a table with its outcome.
type TableResult struct {
	Table  string
	Status TableStatus
	Err    error
}

// LoadReport summarizes a completed (or aborted) run.
type LoadReport struct {
	// RunID identifies the run; it is also set as the Snowflake QUERY_TAG.
	RunID string

	// Results holds per-table outcomes in processing order. Tables after an
	// aborting failure do not appear.
	Results []TableResult
}

// Counts returns the number of loaded, skipped, and failed tables.
func (r *LoadReport) Counts() (loaded, skipped, failed int) {
	for _, res := range r.Results {
		switch res.Status {
		case StatusLoaded:
			loaded++
		case StatusSkipped:
			skipped++
		case StatusFailed:
			failed++
		}
	}
	return loaded, skipped, failed
}
