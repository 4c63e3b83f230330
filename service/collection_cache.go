// ABOUTME: This file implements the TTL cache around one fetched collection
// ABOUTME: Concurrent reads coalesce into a single network request

package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/TeBabaEvent/eventclient/models"
	"github.com/TeBabaEvent/eventclient/utils"
)

// CollectionCache caches one fetched collection behind a TTL. A read within
// the TTL returns the cached value without touching the network; concurrent
// reads past the TTL share a single fetch. A forced read always fetches and
// does not join an in-flight request.
type CollectionCache[T any] struct {
	name    string
	ttl     time.Duration
	fetch   func(context.Context) (T, error)
	logger  *slog.Logger
	metrics *utils.ClientMetrics

	flight singleflight.Group

	mu        sync.RWMutex
	value     T
	loaded    bool
	loading   bool
	lastFetch time.Time
	lastErr   error
}

// NewCollectionCache creates a cache for one collection. name identifies the
// cache in logs and keys the request coalescing group.
func NewCollectionCache[T any](name string, ttl time.Duration, fetch func(context.Context) (T, error), logger *slog.Logger, metrics *utils.ClientMetrics) *CollectionCache[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &CollectionCache[T]{
		name:    name,
		ttl:     ttl,
		fetch:   fetch,
		logger:  logger,
		metrics: metrics,
	}
}

// Get returns the collection, fetching when the cache is cold or stale.
// With force set, the fetch happens regardless of freshness and bypasses
// request coalescing.
func (c *CollectionCache[T]) Get(ctx context.Context, force bool) (T, error) {
	if !force {
		if value, ok := c.fresh(); ok {
			c.metrics.RecordCacheHit()
			return value, nil
		}
		c.metrics.RecordCacheMiss()
		return c.coalescedFetch(ctx)
	}

	c.metrics.RecordCacheMiss()
	return c.directFetch(ctx)
}

// fresh returns the cached value when it is loaded and within the TTL.
func (c *CollectionCache[T]) fresh() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.loaded && time.Since(c.lastFetch) < c.ttl {
		return c.value, true
	}
	var zero T
	return zero, false
}

// coalescedFetch shares one network request among concurrent stale readers.
func (c *CollectionCache[T]) coalescedFetch(ctx context.Context) (T, error) {
	result, err, _ := c.flight.Do(c.name, func() (any, error) {
		// Another reader may have completed the fetch while this one
		// waited to enter the flight.
		if value, ok := c.fresh(); ok {
			return value, nil
		}
		return c.runFetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}

// directFetch always goes to the network and never joins an in-flight
// request, so a forced refresh cannot be satisfied by a fetch that started
// before the caller decided to force.
func (c *CollectionCache[T]) directFetch(ctx context.Context) (T, error) {
	value, err := c.runFetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	return value.(T), nil
}

func (c *CollectionCache[T]) runFetch(ctx context.Context) (any, error) {
	c.setLoading(true)
	defer c.setLoading(false)

	value, err := c.fetch(ctx)
	if err != nil {
		// A superseded request is not a failure; stale data stays usable
		// and the error slot is left untouched.
		if !models.IsAborted(err) {
			c.logger.Error("failed to fetch collection", "cache", c.name, "error", err)
			c.setError(err)
		}
		return nil, err
	}

	c.mu.Lock()
	c.value = value
	c.loaded = true
	c.lastFetch = time.Now()
	c.lastErr = nil
	c.mu.Unlock()

	return value, nil
}

// Invalidate marks the cache stale. The data remains readable through Items
// until the next Get replaces it.
func (c *CollectionCache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	c.lastFetch = time.Time{}
}

// Items returns the last fetched value without triggering a fetch.
func (c *CollectionCache[T]) Items() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// IsLoaded reports whether the cache holds a successfully fetched value
// that has not been invalidated.
func (c *CollectionCache[T]) IsLoaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// IsLoading reports whether a fetch is currently in flight.
func (c *CollectionCache[T]) IsLoading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// LastError returns the most recent fetch failure, or nil after a success.
func (c *CollectionCache[T]) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

func (c *CollectionCache[T]) setLoading(loading bool) {
	c.mu.Lock()
	c.loading = loading
	c.mu.Unlock()
}

func (c *CollectionCache[T]) setError(err error) {
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
}
