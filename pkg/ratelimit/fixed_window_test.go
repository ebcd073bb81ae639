package ratelimit_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copymakerhq/copymaker/pkg/ratelimit"
)

func newLimiter(t *testing.T, limit int, window time.Duration) *ratelimit.FixedWindow {
	t.Helper()
	store := ratelimit.NewMemoryStore()
	t.Cleanup(store.Close)
	limiter, err := ratelimit.NewFixedWindow(store, limit, window)
	require.NoError(t, err)
	return limiter
}

func TestNewFixedWindow(t *testing.T) {
	t.Parallel()

	store := ratelimit.NewMemoryStore()
	t.Cleanup(store.Close)

	_, err := ratelimit.NewFixedWindow(nil, 5, time.Minute)
	require.ErrorIs(t, err, ratelimit.ErrStoreRequired)

	_, err = ratelimit.NewFixedWindow(store, 0, time.Minute)
	require.ErrorIs(t, err, ratelimit.ErrInvalidLimit)

	_, err = ratelimit.NewFixedWindow(store, 5, 0)
	require.ErrorIs(t, err, ratelimit.ErrInvalidWindow)
}

func TestFixedWindow_Allow(t *testing.T) {
	t.Parallel()

	t.Run("admits up to the limit then denies", func(t *testing.T) {
		t.Parallel()
		limiter := newLimiter(t, 3, time.Minute)
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			result, err := limiter.Allow(ctx, "acc-1")
			require.NoError(t, err)
			assert.True(t, result.Allowed, "request %d", i)
			assert.Equal(t, 3, result.Limit)
			assert.Equal(t, 2-i, result.Remaining)
		}

		result, err := limiter.Allow(ctx, "acc-1")
		require.NoError(t, err)
		assert.False(t, result.Allowed)
		assert.Zero(t, result.Remaining)
		assert.Positive(t, result.RetryAfter())
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()
		limiter := newLimiter(t, 1, time.Minute)
		ctx := context.Background()

		first, err := limiter.Allow(ctx, "acc-1")
		require.NoError(t, err)
		assert.True(t, first.Allowed)

		other, err := limiter.Allow(ctx, "acc-2")
		require.NoError(t, err)
		assert.True(t, other.Allowed)
	})

	t.Run("window expiry refreshes the allowance", func(t *testing.T) {
		t.Parallel()
		limiter := newLimiter(t, 1, 30*time.Millisecond)
		ctx := context.Background()

		result, err := limiter.Allow(ctx, "acc-1")
		require.NoError(t, err)
		assert.True(t, result.Allowed)

		result, err = limiter.Allow(ctx, "acc-1")
		require.NoError(t, err)
		assert.False(t, result.Allowed)

		time.Sleep(50 * time.Millisecond)

		result, err = limiter.Allow(ctx, "acc-1")
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	})

	t.Run("empty key is rejected", func(t *testing.T) {
		t.Parallel()
		limiter := newLimiter(t, 1, time.Minute)

		_, err := limiter.Allow(context.Background(), "")
		require.ErrorIs(t, err, ratelimit.ErrKeyRequired)
	})

	t.Run("concurrent requests never exceed the limit", func(t *testing.T) {
		t.Parallel()
		limiter := newLimiter(t, 10, time.Minute)
		ctx := context.Background()

		var wg sync.WaitGroup
		var mu sync.Mutex
		allowed := 0
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				result, err := limiter.Allow(ctx, "acc-1")
				require.NoError(t, err)
				if result.Allowed {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 10, allowed)
	})
}

func TestFixedWindow_Reset(t *testing.T) {
	t.Parallel()

	limiter := newLimiter(t, 1, time.Minute)
	ctx := context.Background()

	_, err := limiter.Allow(ctx, "acc-1")
	require.NoError(t, err)

	denied, err := limiter.Allow(ctx, "acc-1")
	require.NoError(t, err)
	assert.False(t, denied.Allowed)

	require.NoError(t, limiter.Reset(ctx, "acc-1"))

	again, err := limiter.Allow(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, again.Allowed)
}
