// ABOUTME: This file tests the TTL collection cache
// ABOUTME: Covers hits, expiry, coalescing, forced refresh, and invalidation

package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TeBabaEvent/eventclient/models"
	"github.com/TeBabaEvent/eventclient/utils"
)

func newCountingCache(ttl time.Duration, calls *atomic.Int64) *CollectionCache[[]string] {
	return NewCollectionCache("test", ttl, func(ctx context.Context) ([]string, error) {
		n := calls.Add(1)
		return []string{"fetch", string(rune('0' + n))}, nil
	}, nil, utils.NewClientMetrics())
}

func TestCollectionCache_FreshReadSkipsFetch(t *testing.T) {
	var calls atomic.Int64
	cache := newCountingCache(time.Minute, &calls)

	first, err := cache.Get(context.Background(), false)
	require.NoError(t, err)

	second, err := cache.Get(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), calls.Load(), "a read within the TTL must not fetch")
	assert.True(t, cache.IsLoaded())
}

func TestCollectionCache_ExpiredReadRefetches(t *testing.T) {
	var calls atomic.Int64
	cache := newCountingCache(10*time.Millisecond, &calls)

	_, err := cache.Get(context.Background(), false)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = cache.Get(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestCollectionCache_ConcurrentColdReadsCoalesce(t *testing.T) {
	var calls atomic.Int64
	started := make(chan struct{})
	release := make(chan struct{})

	cache := NewCollectionCache("test", time.Minute, func(ctx context.Context) ([]string, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
		}
		return []string{"data"}, nil
	}, nil, utils.NewClientMetrics())

	var wg sync.WaitGroup
	results := make([][]string, 10)
	errs := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cache.Get(context.Background(), false)
		}(i)
	}

	<-started
	// All ten goroutines are either waiting on the flight or about to
	// join it; releasing the fetch must satisfy every one of them.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < 10; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, []string{"data"}, results[i])
	}
	assert.Equal(t, int64(1), calls.Load(), "concurrent cold reads must share one fetch")
}

func TestCollectionCache_ForceBypassesFreshness(t *testing.T) {
	var calls atomic.Int64
	cache := newCountingCache(time.Minute, &calls)

	_, err := cache.Get(context.Background(), false)
	require.NoError(t, err)

	_, err = cache.Get(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load(), "force must fetch even when fresh")
}

func TestCollectionCache_InvalidateForcesNextRead(t *testing.T) {
	var calls atomic.Int64
	cache := newCountingCache(time.Minute, &calls)

	value, err := cache.Get(context.Background(), false)
	require.NoError(t, err)

	cache.Invalidate()
	assert.False(t, cache.IsLoaded())
	assert.Equal(t, value, cache.Items(), "invalidated data stays readable until replaced")

	_, err = cache.Get(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestCollectionCache_FetchFailureKeepsStaleData(t *testing.T) {
	var fail atomic.Bool
	fetchErr := errors.New("backend down")

	cache := NewCollectionCache("test", 10*time.Millisecond, func(ctx context.Context) ([]string, error) {
		if fail.Load() {
			return nil, fetchErr
		}
		return []string{"good"}, nil
	}, nil, utils.NewClientMetrics())

	_, err := cache.Get(context.Background(), false)
	require.NoError(t, err)

	fail.Store(true)
	time.Sleep(20 * time.Millisecond)

	_, err = cache.Get(context.Background(), false)
	require.Error(t, err)
	assert.Equal(t, []string{"good"}, cache.Items(), "stale data survives a failed refresh")
	assert.ErrorIs(t, cache.LastError(), fetchErr)
}

func TestCollectionCache_AbortedFetchLeavesErrorSlotUntouched(t *testing.T) {
	var fail atomic.Bool
	cache := NewCollectionCache("test", time.Minute, func(ctx context.Context) ([]string, error) {
		if fail.Load() {
			return nil, models.ErrAborted
		}
		return []string{"good"}, nil
	}, nil, utils.NewClientMetrics())

	_, err := cache.Get(context.Background(), false)
	require.NoError(t, err)

	fail.Store(true)
	_, err = cache.Get(context.Background(), true)
	require.Error(t, err)
	assert.True(t, models.IsAborted(err))
	assert.NoError(t, cache.LastError(), "a superseded fetch is not a failure")
}
