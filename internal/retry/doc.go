// Package retry provides automatic retry logic with exponential backoff
// for transient Snowflake connection failures.
//
// Retry applies only to establishing the connection. PUT, COPY INTO and
// REMOVE statements are never retried: a failed load aborts the run and the
// staged file stays in the pending prefix for inspection.
//
// # Example Usage
//
//	classifier := retry.NewSnowflakeErrorClassifier()
//	strategy := retry.NewExponentialBackoff(3)
//	executor := retry.NewExecutor(classifier, strategy)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return connect(ctx)
//	})
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. Use WithOnRetry() to create
// independent configurations per goroutine.
package retry
