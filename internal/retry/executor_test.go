package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClassifier treats every error as transient or fatal based on a flag.
type stubClassifier struct {
	transient bool
}

func (s *stubClassifier) IsTransient(err error) bool {
	return s.transient
}

func fastBackoff(maxAttempts int) *ExponentialBackoff {
	return NewExponentialBackoff(maxAttempts,
		WithInitialDelay(time.Millisecond),
		WithMaxDelay(2*time.Millisecond),
		WithJitterFunc(func() float64 { return 0.5 }),
	)
}

func TestNewExecutor_NilDeps(t *testing.T) {
	assert.Panics(t, func() { NewExecutor(nil, fastBackoff(1)) })
	assert.Panics(t, func() { NewExecutor(&stubClassifier{}, nil) })
}

func TestExecute_SuccessFirstAttempt(t *testing.T) {
	executor := NewExecutor(&stubClassifier{transient: true}, fastBackoff(3))

	calls := 0
	err := executor.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestExecute_FatalErrorNoRetry(t *testing.T) {
	executor := NewExecutor(&stubClassifier{transient: false}, fastBackoff(3))

	calls := 0
	fatal := errors.New("authentication failed")
	err := executor.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return fatal
	})

	assert.Equal(t, fatal, err)
	assert.Equal(t, 1, calls)
}

func TestExecute_TransientErrorRetriesUntilSuccess(t *testing.T) {
	executor := NewExecutor(&stubClassifier{transient: true}, fastBackoff(5))

	calls := 0
	err := executor.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecute_ExhaustsAttempts(t *testing.T) {
	executor := NewExecutor(&stubClassifier{transient: true}, fastBackoff(2))

	calls := 0
	transient := errors.New("connection refused")
	err := executor.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return transient
	})

	assert.Equal(t, transient, err)
	// 1 initial attempt + 2 retries
	assert.Equal(t, 3, calls)
}

func TestExecute_ContextCancelled(t *testing.T) {
	executor := NewExecutor(&stubClassifier{transient: true}, fastBackoff(100))

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := executor.Execute(ctx, func(ctx context.Context) error {
		calls++
		cancel()
		return errors.New("connection refused")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestWithOnRetry_DoesNotModifyReceiver(t *testing.T) {
	base := NewExecutor(&stubClassifier{transient: true}, fastBackoff(1))
	assert.Nil(t, base.onRetry)

	var attempts []int
	derived := base.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		attempts = append(attempts, attempt)
	})

	assert.Nil(t, base.onRetry)
	require.NotNil(t, derived.onRetry)

	_ = derived.Execute(context.Background(), func(ctx context.Context) error {
		return errors.New("connection refused")
	})
	assert.Equal(t, []int{0}, attempts)
}
