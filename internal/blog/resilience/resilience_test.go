package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBackend = errors.New("backend unavailable")

func TestCircuitBreaker_Transitions(t *testing.T) {
	ctx := context.Background()
	current := time.Unix(1_700_000_000, 0)

	cb := NewCircuitBreaker("cache", CircuitBreakerConfig{ErrorThreshold: 2, Timeout: time.Second, SuccessThreshold: 2})
	cb.now = func() time.Time { return current }

	fail := func() error { return errBackend }
	ok := func() error { return nil }

	assert.ErrorIs(t, cb.Execute(ctx, fail), errBackend)
	assert.Equal(t, StateClosed, cb.GetState())
	assert.ErrorIs(t, cb.Execute(ctx, fail), errBackend)
	assert.Equal(t, StateOpen, cb.GetState())

	assert.ErrorIs(t, cb.Execute(ctx, ok), ErrCircuitOpen)

	current = current.Add(time.Second)
	require.NoError(t, cb.Execute(ctx, ok))
	assert.Equal(t, StateHalfOpen, cb.GetState())

	require.NoError(t, cb.Execute(ctx, ok))
	assert.Equal(t, StateClosed, cb.GetState())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	ctx := context.Background()
	current := time.Unix(1_700_000_000, 0)

	cb := NewCircuitBreaker("cache", CircuitBreakerConfig{ErrorThreshold: 1, Timeout: time.Second, SuccessThreshold: 1})
	cb.now = func() time.Time { return current }

	_ = cb.Execute(ctx, func() error { return errBackend })
	require.Equal(t, StateOpen, cb.GetState())

	current = current.Add(2 * time.Second)
	_ = cb.Execute(ctx, func() error { return errBackend })
	assert.Equal(t, StateOpen, cb.GetState())
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	ctx := context.Background()
	cb := NewCircuitBreaker("cache", CircuitBreakerConfig{ErrorThreshold: 2, Timeout: time.Second, SuccessThreshold: 1})

	_ = cb.Execute(ctx, func() error { return errBackend })
	_ = cb.Execute(ctx, func() error { return nil })
	_ = cb.Execute(ctx, func() error { return errBackend })

	assert.Equal(t, StateClosed, cb.GetState())
}

func TestRetry_Execute(t *testing.T) {
	ctx := context.Background()
	cfg := RetryConfig{MaxAttempts: 3, InitialBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond, BackoffFactor: 2}

	t.Run("succeeds after failure", func(t *testing.T) {
		calls := 0
		err := NewRetry("test", cfg).Execute(ctx, func() error {
			calls++
			if calls < 2 {
				return errBackend
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := NewRetry("test", cfg).Execute(ctx, func() error {
			calls++
			return errBackend
		})
		assert.ErrorIs(t, err, errBackend)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry canceled context errors", func(t *testing.T) {
		calls := 0
		err := NewRetry("test", cfg).Execute(ctx, func() error {
			calls++
			return context.Canceled
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops waiting when context is done", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		slow := RetryConfig{MaxAttempts: 3, InitialBackoff: time.Hour, MaxBackoff: time.Hour, BackoffFactor: 1}

		err := NewRetry("test", slow).Execute(cctx, func() error {
			cancel()
			return errBackend
		})
		assert.ErrorIs(t, err, ErrContextCanceled)
	})
}

func TestExecute_Generic(t *testing.T) {
	ctx := context.Background()
	r := NewServiceResilience("cache", DefaultCircuitBreakerConfig(), RetryConfig{MaxAttempts: 1})

	v, err := Execute(ctx, r, func() (string, error) { return "hit", nil })
	require.NoError(t, err)
	assert.Equal(t, "hit", v)

	v, err = Execute(ctx, r, func() (string, error) { return "partial", errBackend })
	assert.ErrorIs(t, err, errBackend)
	assert.Empty(t, v)
	assert.Equal(t, "cache", r.Name())
	assert.Equal(t, StateClosed, r.State())
}
