// ABOUTME: This file implements a local per-account login rate limiter
// ABOUTME: It slows credential stuffing before requests reach the backend

package security

import (
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// LoginRateLimiter throttles login attempts per account on the client side.
// The backend enforces its own limit; this one keeps a misbehaving caller
// from hammering the network at all.
type LoginRateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewLoginRateLimiter creates a limiter allowing attemptsPerMinute login
// attempts per account, with a burst of the same size.
func NewLoginRateLimiter(attemptsPerMinute int) *LoginRateLimiter {
	if attemptsPerMinute <= 0 {
		attemptsPerMinute = 5
	}
	return &LoginRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(float64(attemptsPerMinute) / 60.0),
		burst:    attemptsPerMinute,
	}
}

// Allow reports whether another login attempt for email may proceed now.
func (l *LoginRateLimiter) Allow(email string) bool {
	return l.limiterFor(email).Allow()
}

func (l *LoginRateLimiter) limiterFor(email string) *rate.Limiter {
	key := strings.ToLower(strings.TrimSpace(email))

	l.mu.RLock()
	limiter, exists := l.limiters[key]
	l.mu.RUnlock()
	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring the write lock.
	if limiter, exists := l.limiters[key]; exists {
		return limiter
	}
	limiter = rate.NewLimiter(l.limit, l.burst)
	l.limiters[key] = limiter
	return limiter
}
