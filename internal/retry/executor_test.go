package retry

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockOperation fails with a transient gateway error until failUntil.
type mockOperation struct {
	invocations int
	failUntil   int
	fatalErr    error
}

func (m *mockOperation) execute(ctx context.Context) error {
	m.invocations++
	if m.invocations < m.failUntil {
		return &StatusError{URL: "https://gw/ipfs/cid/1.json", StatusCode: http.StatusServiceUnavailable}
	}
	if m.invocations == m.failUntil && m.fatalErr != nil {
		return m.fatalErr
	}
	return nil
}

func fastBackoff(maxAttempts int) *ExponentialBackoff {
	return NewExponentialBackoff(maxAttempts, WithInitialDelay(time.Millisecond), WithJitter(0))
}

func TestExecutor_SuccessOnFirstAttempt(t *testing.T) {
	executor := NewExecutor(NewHTTPErrorClassifier(), fastBackoff(3))
	op := &mockOperation{failUntil: 1}

	require.NoError(t, executor.Execute(context.Background(), op.execute))
	assert.Equal(t, 1, op.invocations)
}

func TestExecutor_SuccessAfterRetries(t *testing.T) {
	executor := NewExecutor(NewHTTPErrorClassifier(), fastBackoff(5))
	op := &mockOperation{failUntil: 4}

	require.NoError(t, executor.Execute(context.Background(), op.execute))
	assert.Equal(t, 4, op.invocations)
}

func TestExecutor_FatalErrorNoRetry(t *testing.T) {
	executor := NewExecutor(NewHTTPErrorClassifier(), fastBackoff(5))
	fatal := &StatusError{URL: "u", StatusCode: http.StatusNotFound}
	op := &mockOperation{failUntil: 1, fatalErr: fatal}

	err := executor.Execute(context.Background(), op.execute)
	assert.Same(t, fatal, err)
	assert.Equal(t, 1, op.invocations)
}

func TestExecutor_ExhaustsAttempts(t *testing.T) {
	executor := NewExecutor(NewHTTPErrorClassifier(), fastBackoff(2))
	op := &mockOperation{failUntil: 100}

	err := executor.Execute(context.Background(), op.execute)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 3, op.invocations, "initial attempt plus two retries")
}

func TestExecutor_OnRetryCallback(t *testing.T) {
	var attempts []int
	base := NewExecutor(NewHTTPErrorClassifier(), fastBackoff(5))
	executor := base.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		attempts = append(attempts, attempt)
	})
	op := &mockOperation{failUntil: 3}

	require.NoError(t, executor.Execute(context.Background(), op.execute))
	assert.Equal(t, []int{0, 1}, attempts)
	assert.Nil(t, base.onRetry, "WithOnRetry must not modify the receiver")
}

func TestExecutor_ContextCancelledDuringBackoff(t *testing.T) {
	strategy := NewExponentialBackoff(5, WithInitialDelay(time.Hour), WithMaxDelay(time.Hour), WithJitter(0))
	executor := NewExecutor(NewHTTPErrorClassifier(), strategy)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	op := &mockOperation{failUntil: 100}
	err := executor.Execute(ctx, op.execute)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, op.invocations)
}

func TestNewExecutor_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewExecutor(nil, fastBackoff(1)) })
	assert.Panics(t, func() { NewExecutor(NewHTTPErrorClassifier(), nil) })
}
