// ABOUTME: This file implements the admin dashboard store
// ABOUTME: Admin listings use a longer TTL and per-event stats sit in an LRU

package service

import (
	"context"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/TeBabaEvent/eventclient/config"
	"github.com/TeBabaEvent/eventclient/driver"
	"github.com/TeBabaEvent/eventclient/models"
	"github.com/TeBabaEvent/eventclient/utils"
)

// AdminService serves the admin dashboard. Listings include hidden and
// inactive records, so they are cached separately from the public catalog.
// Per-event stats go through a bounded expiring LRU because an operator
// flips between a handful of events while a festival runs.
type AdminService struct {
	client  *driver.APIClient
	logger  *slog.Logger
	metrics *utils.ClientMetrics

	events  *CollectionCache[[]models.Event]
	artists *CollectionCache[[]models.Artist]
	packs   *CollectionCache[[]models.Pack]
	users   *CollectionCache[[]models.User]
	global  *CollectionCache[*models.GlobalStats]

	eventStats *lru.LRU[string, *models.EventStats]

	// Overlapping background refreshes share one in-progress indicator.
	refreshing *utils.RefCount
}

// NewAdminService wires the admin store.
func NewAdminService(client *driver.APIClient, cfg *config.Config, logger *slog.Logger, metrics *utils.ClientMetrics) *AdminService {
	if logger == nil {
		logger = slog.Default()
	}

	s := &AdminService{
		client:     client,
		logger:     logger,
		metrics:    metrics,
		eventStats: lru.NewLRU[string, *models.EventStats](cfg.Cache.EventStatsSize, nil, cfg.Cache.EventStatsTTL),
	}
	s.refreshing = utils.NewRefCount(
		func() { s.logger.Debug("background refresh started") },
		func() { s.logger.Debug("background refresh drained") },
	)

	ttl := cfg.Cache.AdminTTL
	s.events = NewCollectionCache("admin_events", ttl, func(ctx context.Context) ([]models.Event, error) {
		var events []models.Event
		if err := client.Get(ctx, driver.EndpointEvents+"?include_hidden=true", &events); err != nil {
			return nil, err
		}
		return events, nil
	}, logger, metrics)

	s.artists = NewCollectionCache("admin_artists", ttl, func(ctx context.Context) ([]models.Artist, error) {
		var artists []models.Artist
		if err := client.Get(ctx, driver.EndpointArtists+"?include_hidden=true", &artists); err != nil {
			return nil, err
		}
		return artists, nil
	}, logger, metrics)

	s.packs = NewCollectionCache("admin_packs", ttl, func(ctx context.Context) ([]models.Pack, error) {
		var packs []models.Pack
		if err := client.Get(ctx, driver.EndpointPacks+"?include_inactive=true", &packs); err != nil {
			return nil, err
		}
		return packs, nil
	}, logger, metrics)

	s.users = NewCollectionCache("admin_users", ttl, func(ctx context.Context) ([]models.User, error) {
		var users []models.User
		if err := client.Get(ctx, driver.EndpointAdminUsers, &users); err != nil {
			return nil, err
		}
		return users, nil
	}, logger, metrics)

	s.global = NewCollectionCache("admin_global_stats", ttl, func(ctx context.Context) (*models.GlobalStats, error) {
		var stats models.GlobalStats
		if err := client.Get(ctx, driver.EndpointAdminGlobalStats, &stats); err != nil {
			return nil, err
		}
		return &stats, nil
	}, logger, metrics)

	return s
}

// Events returns the full event listing, hidden events included.
func (s *AdminService) Events(ctx context.Context, force bool) ([]models.Event, error) {
	return s.events.Get(ctx, force)
}

// Artists returns every artist, hidden ones included.
func (s *AdminService) Artists(ctx context.Context, force bool) ([]models.Artist, error) {
	return s.artists.Get(ctx, force)
}

// Packs returns every pack, inactive ones included.
func (s *AdminService) Packs(ctx context.Context, force bool) ([]models.Pack, error) {
	return s.packs.Get(ctx, force)
}

// Users returns the account listing.
func (s *AdminService) Users(ctx context.Context, force bool) ([]models.User, error) {
	return s.users.Get(ctx, force)
}

// GlobalStats returns the platform-wide dashboard summary.
func (s *AdminService) GlobalStats(ctx context.Context, force bool) (*models.GlobalStats, error) {
	return s.global.Get(ctx, force)
}

// EventStats returns the per-event dashboard breakdown. Entries live in a
// bounded LRU with their own TTL; force bypasses the cached entry.
func (s *AdminService) EventStats(ctx context.Context, eventID string, force bool) (*models.EventStats, error) {
	if !force {
		if stats, ok := s.eventStats.Get(eventID); ok {
			s.metrics.RecordCacheHit()
			return stats, nil
		}
	}
	s.metrics.RecordCacheMiss()

	var stats models.EventStats
	if err := s.client.Get(ctx, driver.AdminEventStats(eventID), &stats); err != nil {
		return nil, err
	}
	s.eventStats.Add(eventID, &stats)
	return &stats, nil
}

// RefreshInBackground force-refreshes the admin listings off the caller's
// goroutine. Mutations call it after success so the dashboard converges
// without blocking the mutation response.
func (s *AdminService) RefreshInBackground(kinds ...AdminDataKind) {
	release := s.refreshing.Acquire()
	go func() {
		defer release()
		ctx := context.Background()
		for _, kind := range kinds {
			var err error
			switch kind {
			case AdminEvents:
				_, err = s.events.Get(ctx, true)
			case AdminArtists:
				_, err = s.artists.Get(ctx, true)
			case AdminPacks:
				_, err = s.packs.Get(ctx, true)
			case AdminUsers:
				_, err = s.users.Get(ctx, true)
			case AdminStats:
				_, err = s.global.Get(ctx, true)
			}
			if err != nil && !models.IsAborted(err) {
				s.logger.Warn("background refresh failed", "kind", string(kind), "error", err)
			}
		}
	}()
}

// IsRefreshing reports whether any background refresh is still running.
func (s *AdminService) IsRefreshing() bool {
	return s.refreshing.Active()
}

// AdminDataKind names an admin cache for selective invalidation.
type AdminDataKind string

const (
	AdminEvents  AdminDataKind = "events"
	AdminArtists AdminDataKind = "artists"
	AdminPacks   AdminDataKind = "packs"
	AdminUsers   AdminDataKind = "users"
	AdminStats   AdminDataKind = "stats"
)

// Invalidate marks the named admin caches stale.
func (s *AdminService) Invalidate(kinds ...AdminDataKind) {
	for _, kind := range kinds {
		switch kind {
		case AdminEvents:
			s.events.Invalidate()
		case AdminArtists:
			s.artists.Invalidate()
		case AdminPacks:
			s.packs.Invalidate()
		case AdminUsers:
			s.users.Invalidate()
		case AdminStats:
			s.global.Invalidate()
			s.eventStats.Purge()
		}
	}
}

// InvalidateAll marks every admin cache stale.
func (s *AdminService) InvalidateAll() {
	s.Invalidate(AdminEvents, AdminArtists, AdminPacks, AdminUsers, AdminStats)
}
