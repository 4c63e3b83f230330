// ABOUTME: This file implements the paginated collection cache
// ABOUTME: The first page replaces cached items, later pages append

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

// PagedCache caches an append-only paginated listing. Fetching offset zero
// behaves like a TTL collection cache and replaces the items; any later
// offset always hits the network and appends. HasMore tracks whether the
// backend reported further pages.
type PagedCache[T any] struct {
	name    string
	ttl     time.Duration
	limit   int
	fetch   func(ctx context.Context, limit, offset int) (models.Page[T], error)
	logger  *slog.Logger
	metrics *utils.ClientMetrics

	flight singleflight.Group

	mu        sync.RWMutex
	items     []T
	total     int
	hasMore   bool
	loaded    bool
	loading   bool
	lastFetch time.Time
	lastErr   error
}

// NewPagedCache creates a paginated cache fetching limit items per page.
func NewPagedCache[T any](name string, ttl time.Duration, limit int, fetch func(ctx context.Context, limit, offset int) (models.Page[T], error), logger *slog.Logger, metrics *utils.ClientMetrics) *PagedCache[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &PagedCache[T]{
		name:    name,
		ttl:     ttl,
		limit:   limit,
		fetch:   fetch,
		logger:  logger,
		metrics: metrics,
	}
}

// GetFirstPage returns the first page, fetching when cold or stale. With
// force set, the fetch happens regardless of freshness and bypasses request
// coalescing. A successful first-page fetch replaces all cached items.
func (c *PagedCache[T]) GetFirstPage(ctx context.Context, force bool) ([]T, error) {
	if !force {
		c.mu.RLock()
		fresh := c.loaded && time.Since(c.lastFetch) < c.ttl
		items := c.items
		c.mu.RUnlock()
		if fresh {
			c.metrics.RecordCacheHit()
			return items, nil
		}

		c.metrics.RecordCacheMiss()
		result, err, _ := c.flight.Do(c.name, func() (any, error) {
			c.mu.RLock()
			fresh := c.loaded && time.Since(c.lastFetch) < c.ttl
			items := c.items
			c.mu.RUnlock()
			if fresh {
				return items, nil
			}
			return c.fetchFirstPage(ctx)
		})
		if err != nil {
			return nil, err
		}
		return result.([]T), nil
	}

	c.metrics.RecordCacheMiss()
	return c.fetchFirstPage(ctx)
}

// LoadMore fetches the page after the currently cached items and appends
// it. It always goes to the network. The returned slice holds the full
// accumulated listing.
func (c *PagedCache[T]) LoadMore(ctx context.Context) ([]T, error) {
	c.mu.RLock()
	offset := len(c.items)
	c.mu.RUnlock()

	c.setLoading(true)
	defer c.setLoading(false)

	page, err := c.fetch(ctx, c.limit, offset)
	if err != nil {
		if !models.IsAborted(err) {
			c.logger.Error("failed to load page", "cache", c.name, "offset", offset, "error", err)
			c.setError(err)
		}
		return nil, err
	}

	c.mu.Lock()
	c.items = append(c.items, page.Items...)
	c.total = page.Total
	c.hasMore = pageHasMore(page, len(c.items))
	c.loaded = true
	c.lastErr = nil
	items := c.items
	c.mu.Unlock()

	return items, nil
}

func (c *PagedCache[T]) fetchFirstPage(ctx context.Context) ([]T, error) {
	c.setLoading(true)
	defer c.setLoading(false)

	page, err := c.fetch(ctx, c.limit, 0)
	if err != nil {
		if !models.IsAborted(err) {
			c.logger.Error("failed to fetch first page", "cache", c.name, "error", err)
			c.setError(err)
		}
		return nil, err
	}

	c.mu.Lock()
	c.items = page.Items
	c.total = page.Total
	c.hasMore = pageHasMore(page, len(page.Items))
	c.loaded = true
	c.lastFetch = time.Now()
	c.lastErr = nil
	items := c.items
	c.mu.Unlock()

	return items, nil
}

// pageHasMore derives the has-more flag. An explicit flag from the backend
// wins either way; endpoints that omit it get it computed from the running
// count against the reported total.
func pageHasMore[T any](page models.Page[T], accumulated int) bool {
	if page.HasMore != nil {
		return *page.HasMore
	}
	return page.Total > accumulated
}

// Invalidate marks the cache stale; the next GetFirstPage refetches and
// replaces the accumulated items.
func (c *PagedCache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	c.lastFetch = time.Time{}
}

// Items returns the accumulated items without triggering a fetch.
func (c *PagedCache[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.items
}

// Total returns the backend-reported total count of the listing.
func (c *PagedCache[T]) Total() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.total
}

// HasMore reports whether further pages remain.
func (c *PagedCache[T]) HasMore() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hasMore
}

// IsLoading reports whether a fetch is currently in flight.
func (c *PagedCache[T]) IsLoading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// LastError returns the most recent fetch failure, or nil after a success.
func (c *PagedCache[T]) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

func (c *PagedCache[T]) setLoading(loading bool) {
	c.mu.Lock()
	c.loading = loading
	c.mu.Unlock()
}

func (c *PagedCache[T]) setError(err error) {
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
}
