package ratelimiter

import (
	"testing"
	"time"

	"github.com/ether/etherpad-todolist/lib/settings"
	"github.com/stretchr/testify/assert"
)

func TestCheckRateLimit(t *testing.T) {
	limiter := New(settings.RateLimitSettings{Duration: 1, Points: 2})
	current := time.Unix(1000, 0)
	limiter.now = func() time.Time { return current }

	assert.NoError(t, limiter.CheckRateLimit("a"))
	assert.NoError(t, limiter.CheckRateLimit("a"))
	assert.ErrorIs(t, limiter.CheckRateLimit("a"), ErrRateLimitExceeded{})
	assert.NoError(t, limiter.CheckRateLimit("b"))

	current = current.Add(2 * time.Second)
	assert.NoError(t, limiter.CheckRateLimit("a"))

	limiter.Forget("a")
	assert.Empty(t, limiter.RateLimiter["a"])
}

func TestDisabledLimiter(t *testing.T) {
	limiter := New(settings.RateLimitSettings{})
	for i := 0; i < 100; i++ {
		assert.NoError(t, limiter.CheckRateLimit("a"))
	}

	var nilLimiter *RateLimiter
	assert.NoError(t, nilLimiter.CheckRateLimit("a"))
}
