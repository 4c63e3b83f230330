// ABOUTME: This file implements in-process metrics for the API client
// ABOUTME: Counters track cache effectiveness and request outcomes

package utils

import (
	"sync"
	"time"
)

// MetricsSnapshot is a point-in-time copy of the client metrics.
type MetricsSnapshot struct {
	Requests         int64     `json:"requests"`
	RequestFailures  int64     `json:"request_failures"`
	CacheHits        int64     `json:"cache_hits"`
	CacheMisses      int64     `json:"cache_misses"`
	SessionRefreshes int64     `json:"session_refreshes"`
	Taken            time.Time `json:"taken"`
}

// HitRatio returns the cache hit ratio, or 0 when nothing was looked up.
func (s MetricsSnapshot) HitRatio() float64 {
	total := s.CacheHits + s.CacheMisses
	if total == 0 {
		return 0
	}
	return float64(s.CacheHits) / float64(total)
}

// ClientMetrics accumulates client-side counters. All methods are safe for
// concurrent use; a nil *ClientMetrics is a valid no-op recorder.
type ClientMetrics struct {
	mu               sync.Mutex
	requests         int64
	requestFailures  int64
	cacheHits        int64
	cacheMisses      int64
	sessionRefreshes int64
}

// NewClientMetrics creates an empty metrics recorder.
func NewClientMetrics() *ClientMetrics {
	return &ClientMetrics{}
}

// RecordRequest counts one network request and whether it failed.
func (m *ClientMetrics) RecordRequest(failed bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests++
	if failed {
		m.requestFailures++
	}
}

// RecordCacheHit counts a read served from cache without a network call.
func (m *ClientMetrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits++
}

// RecordCacheMiss counts a read that had to go to the network.
func (m *ClientMetrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheMisses++
}

// RecordSessionRefresh counts one silent session refresh attempt.
func (m *ClientMetrics) RecordSessionRefresh() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessionRefreshes++
}

// Snapshot returns a copy of the current counters.
func (m *ClientMetrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{Taken: time.Now()}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return MetricsSnapshot{
		Requests:         m.requests,
		RequestFailures:  m.requestFailures,
		CacheHits:        m.cacheHits,
		CacheMisses:      m.cacheMisses,
		SessionRefreshes: m.sessionRefreshes,
		Taken:            time.Now(),
	}
}
