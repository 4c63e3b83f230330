// ABOUTME: This file implements the public catalog store (events, artists, packs)
// ABOUTME: Collections sit behind short TTL caches with request coalescing

package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/TeBabaEvent/eventclient/config"
	"github.com/TeBabaEvent/eventclient/driver"
	"github.com/TeBabaEvent/eventclient/models"
	"github.com/TeBabaEvent/eventclient/utils"
)

const pastEventsPageSize = 12

// CatalogService serves the public catalog. Listings are cached behind the
// public TTL; detail lookups try the cached listing first and fall back to
// the detail endpoint.
type CatalogService struct {
	client *driver.APIClient
	logger *slog.Logger

	events     *CollectionCache[[]models.Event]
	featured   *CollectionCache[[]models.Event]
	artists    *CollectionCache[[]models.Artist]
	packs      *CollectionCache[[]models.Pack]
	pastEvents *PagedCache[models.Event]
}

// NewCatalogService wires the catalog store.
func NewCatalogService(client *driver.APIClient, cfg *config.Config, logger *slog.Logger, metrics *utils.ClientMetrics) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}

	s := &CatalogService{
		client: client,
		logger: logger,
	}

	ttl := cfg.Cache.PublicTTL
	s.events = NewCollectionCache("events", ttl, func(ctx context.Context) ([]models.Event, error) {
		var events []models.Event
		if err := client.Get(ctx, driver.EndpointEvents, &events); err != nil {
			return nil, err
		}
		return events, nil
	}, logger, metrics)

	s.featured = NewCollectionCache("featured_events", ttl, func(ctx context.Context) ([]models.Event, error) {
		var events []models.Event
		if err := client.Get(ctx, driver.EndpointFeaturedEvents, &events); err != nil {
			return nil, err
		}
		return events, nil
	}, logger, metrics)

	s.artists = NewCollectionCache("artists", ttl, func(ctx context.Context) ([]models.Artist, error) {
		var artists []models.Artist
		if err := client.Get(ctx, driver.EndpointArtists, &artists); err != nil {
			return nil, err
		}
		return artists, nil
	}, logger, metrics)

	s.packs = NewCollectionCache("packs", ttl, func(ctx context.Context) ([]models.Pack, error) {
		var packs []models.Pack
		if err := client.Get(ctx, driver.EndpointPacks, &packs); err != nil {
			return nil, err
		}
		return packs, nil
	}, logger, metrics)

	s.pastEvents = NewPagedCache("past_events", ttl, pastEventsPageSize, func(ctx context.Context, limit, offset int) (models.Page[models.Event], error) {
		var page models.Page[models.Event]
		if err := client.Get(ctx, driver.PastEvents(limit, offset), &page); err != nil {
			return models.Page[models.Event]{}, err
		}
		return page, nil
	}, logger, metrics)

	return s
}

// Events returns the full event listing.
func (s *CatalogService) Events(ctx context.Context, force bool) ([]models.Event, error) {
	return s.events.Get(ctx, force)
}

// FeaturedEvents returns the homepage highlight listing.
func (s *CatalogService) FeaturedEvents(ctx context.Context, force bool) ([]models.Event, error) {
	return s.featured.Get(ctx, force)
}

// UpcomingEvents returns the cached events that have not yet happened.
func (s *CatalogService) UpcomingEvents(ctx context.Context, force bool) ([]models.Event, error) {
	events, err := s.events.Get(ctx, force)
	if err != nil {
		return nil, err
	}
	upcoming := make([]models.Event, 0, len(events))
	for _, e := range events {
		if e.IsUpcoming() {
			upcoming = append(upcoming, e)
		}
	}
	return upcoming, nil
}

// PastEvents returns the first page of the past-event archive.
func (s *CatalogService) PastEvents(ctx context.Context, force bool) ([]models.Event, error) {
	return s.pastEvents.GetFirstPage(ctx, force)
}

// MorePastEvents appends the next archive page and returns the accumulated
// listing.
func (s *CatalogService) MorePastEvents(ctx context.Context) ([]models.Event, error) {
	return s.pastEvents.LoadMore(ctx)
}

// HasMorePastEvents reports whether further archive pages remain.
func (s *CatalogService) HasMorePastEvents() bool {
	return s.pastEvents.HasMore()
}

// Artists returns the artists visible on the public site. Artists flagged
// hidden by the backend are filtered out.
func (s *CatalogService) Artists(ctx context.Context, force bool) ([]models.Artist, error) {
	artists, err := s.artists.Get(ctx, force)
	if err != nil {
		return nil, err
	}
	visible := make([]models.Artist, 0, len(artists))
	for _, a := range artists {
		if a.Visible() {
			visible = append(visible, a)
		}
	}
	return visible, nil
}

// Packs returns the pack catalog.
func (s *CatalogService) Packs(ctx context.Context, force bool) ([]models.Pack, error) {
	return s.packs.Get(ctx, force)
}

// EventByID resolves one event, serving from the cached listing when the
// event is there and falling back to the detail endpoint otherwise. The
// detail endpoint also serves slugs, so stale deep links keep working.
func (s *CatalogService) EventByID(ctx context.Context, id string) (*models.Event, error) {
	if s.events.IsLoaded() {
		for _, e := range s.events.Items() {
			if e.ID == id || (e.Slug != "" && e.Slug == id) {
				return &e, nil
			}
		}
	}

	var event models.Event
	if err := s.client.Get(ctx, driver.EventByID(id), &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// PreloadAll warms the catalog caches concurrently. Individual failures are
// logged and swallowed; a cold cache is repaired by the next read.
func (s *CatalogService) PreloadAll(ctx context.Context) {
	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if _, err := s.Events(ctx, false); err != nil && !models.IsAborted(err) {
			s.logger.Warn("preload of events failed", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		if _, err := s.Artists(ctx, false); err != nil && !models.IsAborted(err) {
			s.logger.Warn("preload of artists failed", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		if _, err := s.Packs(ctx, false); err != nil && !models.IsAborted(err) {
			s.logger.Warn("preload of packs failed", "error", err)
		}
		return nil
	})

	_ = g.Wait()
	s.logger.Debug("catalog preload finished", "duration_ms", time.Since(start).Milliseconds())
}

// Invalidate marks every catalog cache stale.
func (s *CatalogService) Invalidate() {
	s.events.Invalidate()
	s.featured.Invalidate()
	s.artists.Invalidate()
	s.packs.Invalidate()
	s.pastEvents.Invalidate()
}
