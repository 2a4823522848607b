package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/snowflakedb/gosnowflake"

	"github.com/vvka-141/snowbatch/internal/retry"
	"github.com/vvka-141/snowbatch/pkg/snowbatch"
)

// StandardConnector implements the Connector interface for username/password
// authentication with automatic retry on transient failures.
type StandardConnector struct {
	config        *snowbatch.ConnectionConfig
	retryExecutor *retry.Executor
}

// NewStandardConnector creates a new StandardConnector with the given configuration.
// Retry behavior uses snowbatch defaults: DefaultRetryMaxAttempts attempts,
// exponential backoff starting at DefaultRetryInitialDelay, max DefaultRetryMaxDelay.
func NewStandardConnector(config *snowbatch.ConnectionConfig) *StandardConnector {
	classifier := retry.NewSnowflakeErrorClassifier()
	strategy := retry.NewExponentialBackoff(snowbatch.DefaultRetryMaxAttempts,
		retry.WithInitialDelay(snowbatch.DefaultRetryInitialDelay),
		retry.WithMaxDelay(snowbatch.DefaultRetryMaxDelay),
	)

	executor := retry.NewExecutor(classifier, strategy)

	return &StandardConnector{
		config:        config,
		retryExecutor: executor,
	}
}

// Connect opens a database handle and verifies it with a ping, retrying on
// transient failures.
//
// The handle is pinned to a single connection. Session state set at the start
// of a run (USE SCHEMA, QUERY_TAG) must apply to every subsequent statement,
// and Snowflake session parameters do not propagate across pooled connections.
func (c *StandardConnector) Connect(ctx context.Context) (*sql.DB, error) {
	var db *sql.DB
	dsn := BuildDSN(c.config)

	err := c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		var err error
		db, err = sql.Open("snowflake", dsn)
		if err != nil {
			return wrapConnectionError(err, c.config.Account)
		}

		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)

		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return wrapConnectionError(err, c.config.Account)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return db, nil
}

// NewConnector is a factory function that creates a Connector for the given
// configuration. Kept as a factory so services can inject test doubles.
func NewConnector(config *snowbatch.ConnectionConfig) (snowbatch.Connector, error) {
	return NewStandardConnector(config), nil
}

// wrapConnectionError wraps raw driver connection errors with actionable guidance.
func wrapConnectionError(err error, account string) error {
	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "no such host"):
		return fmt.Errorf("cannot resolve Snowflake account %q (check the account identifier, e.g. 'xy12345.eu-west-1'): %w: %w",
			account, err, snowbatch.ErrConnectionFailed)
	case strings.Contains(errStr, "incorrect username or password"):
		return fmt.Errorf("authentication rejected for account %q (check SNOWFLAKE_USER / SNOWFLAKE_PASSWORD): %w: %w",
			account, err, snowbatch.ErrConnectionFailed)
	case strings.Contains(errStr, "timeout"):
		return fmt.Errorf("connection to account %q timed out (check network access and proxy settings): %w: %w",
			account, err, snowbatch.ErrConnectionFailed)
	default:
		return fmt.Errorf("failed to connect to account %q: %w: %w",
			account, err, snowbatch.ErrConnectionFailed)
	}
}

// Verify StandardConnector implements the Connector interface at compile time
var _ snowbatch.Connector = (*StandardConnector)(nil)
