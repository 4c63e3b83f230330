// ABOUTME: This file tests the per-account login rate limiter
// ABOUTME: Verifies burst exhaustion and per-account isolation

package security

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginRateLimiter_BurstThenBlocked(t *testing.T) {
	limiter := NewLoginRateLimiter(3)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("user@babaevent.com"), "attempt %d should pass", i+1)
	}
	assert.False(t, limiter.Allow("user@babaevent.com"), "attempt past the burst must be blocked")
}

func TestLoginRateLimiter_IsolatesAccounts(t *testing.T) {
	limiter := NewLoginRateLimiter(1)

	assert.True(t, limiter.Allow("a@babaevent.com"))
	assert.False(t, limiter.Allow("a@babaevent.com"))

	// A different account has its own budget.
	assert.True(t, limiter.Allow("b@babaevent.com"))
}

func TestLoginRateLimiter_NormalizesEmail(t *testing.T) {
	limiter := NewLoginRateLimiter(1)

	assert.True(t, limiter.Allow("User@BabaEvent.com"))
	assert.False(t, limiter.Allow("  user@babaevent.com  "), "case and spacing must not reset the budget")
}

func TestLoginRateLimiter_ConcurrentAccess(t *testing.T) {
	limiter := NewLoginRateLimiter(5)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			limiter.Allow("concurrent@babaevent.com")
		}()
	}
	wg.Wait()

	assert.False(t, limiter.Allow("concurrent@babaevent.com"))
}
