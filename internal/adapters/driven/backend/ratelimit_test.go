package backend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter_Defaults(t *testing.T) {
	r := NewRateLimiter(RateLimitConfig{})
	assert.InDelta(t, DefaultRateLimit.RequestsPerSecond, float64(r.limiter.Limit()), 0.001)
	assert.Equal(t, DefaultRateLimit.BurstSize, r.limiter.Burst())
}

func TestRateLimiter_Burst(t *testing.T) {
	r := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 3})

	for i := 0; i < 3; i++ {
		assert.True(t, r.Allow(), "request %d within burst", i)
	}
	assert.False(t, r.Allow())
}

func TestRateLimiter_Wait(t *testing.T) {
	r := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 100, BurstSize: 1})
	ctx := context.Background()

	require.NoError(t, r.Wait(ctx))
	require.NoError(t, r.Wait(ctx))
}

func TestRateLimiter_RecordRateLimitError(t *testing.T) {
	r := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 100, BurstSize: 10})
	r.RecordRateLimitError(time.Hour)

	assert.False(t, r.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Wait(ctx), context.DeadlineExceeded)
}

func TestRateLimiter_RecordRateLimitError_DefaultBackoff(t *testing.T) {
	r := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 100, BurstSize: 10})
	r.RecordRateLimitError(0)

	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()
	assert.WithinDuration(t, time.Now().Add(defaultBackoff), retryAt, time.Second)
}
