package snowbatch

import "time"

// ErrorClassifier determines whether an error is transient (retryable)
// or fatal (non-retryable). Used only for connection establishment;
// stage and COPY statements are never retried.
type ErrorClassifier interface {
	IsTransient(err error) bool
}

// BackoffStrategy controls the timing of retry attempts.
type BackoffStrategy interface {
	// NextDelay returns the delay before the given retry attempt (0-based).
	NextDelay(attempt int) time.Duration

	// MaxAttempts returns the maximum number of retry attempts.
	// Negative means unlimited.
	MaxAttempts() int
}
