// ABOUTME: This file tests the public catalog store
// ABOUTME: Covers visibility filtering, detail fallback, and preloading

package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TeBabaEvent/eventclient/models"
	"github.com/TeBabaEvent/eventclient/utils"
)

func boolPtr(b bool) *bool { return &b }

func newCatalogFixture(t *testing.T) (*CatalogService, *atomic.Int64, *httptest.Server) {
	t.Helper()

	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/api/events":
			json.NewEncoder(w).Encode([]models.Event{
				{ID: "ev-1", Slug: "baba-night", Title: "Baba Night", Status: models.EventUpcoming},
				{ID: "ev-2", Title: "Last Summer", Status: models.EventPast},
				{ID: "ev-3", Title: "No Status"},
			})
		case "/api/events/ev-9":
			json.NewEncoder(w).Encode(models.Event{ID: "ev-9", Title: "Detail Only"})
		case "/api/artists":
			json.NewEncoder(w).Encode([]models.Artist{
				{ID: "a-1", Name: "Visible"},
				{ID: "a-2", Name: "Hidden", ShowOnWebsite: boolPtr(false)},
				{ID: "a-3", Name: "Explicitly Visible", ShowOnWebsite: boolPtr(true)},
			})
		case "/api/packs":
			json.NewEncoder(w).Encode([]models.Pack{{ID: "p-1", Name: "Standard"}})
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail": "not found"}`))
		}
	}))
	t.Cleanup(server.Close)

	catalog := NewCatalogService(testClient(t, server.URL), testConfig(server.URL), nil, utils.NewClientMetrics())
	return catalog, &hits, server
}

func TestCatalogService_ArtistsFilterHidden(t *testing.T) {
	catalog, _, _ := newCatalogFixture(t)

	artists, err := catalog.Artists(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, artists, 2)
	assert.Equal(t, "Visible", artists[0].Name)
	assert.Equal(t, "Explicitly Visible", artists[1].Name)
}

func TestCatalogService_UpcomingTreatsMissingStatusAsUpcoming(t *testing.T) {
	catalog, _, _ := newCatalogFixture(t)

	upcoming, err := catalog.UpcomingEvents(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "ev-1", upcoming[0].ID)
	assert.Equal(t, "ev-3", upcoming[1].ID)
}

func TestCatalogService_EventByID_ServedFromCachedListing(t *testing.T) {
	catalog, hits, _ := newCatalogFixture(t)

	_, err := catalog.Events(context.Background(), false)
	require.NoError(t, err)
	listHits := hits.Load()

	event, err := catalog.EventByID(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.Equal(t, "Baba Night", event.Title)
	assert.Equal(t, listHits, hits.Load(), "a cached event must not hit the network")

	// Slug lookups hit the same cached listing.
	bySlug, err := catalog.EventByID(context.Background(), "baba-night")
	require.NoError(t, err)
	assert.Equal(t, "ev-1", bySlug.ID)
}

func TestCatalogService_EventByID_FallsBackToDetailEndpoint(t *testing.T) {
	catalog, _, _ := newCatalogFixture(t)

	_, err := catalog.Events(context.Background(), false)
	require.NoError(t, err)

	event, err := catalog.EventByID(context.Background(), "ev-9")
	require.NoError(t, err)
	assert.Equal(t, "Detail Only", event.Title)
}

func TestCatalogService_EventByID_NotFoundSurfacesAPIError(t *testing.T) {
	catalog, _, _ := newCatalogFixture(t)

	_, err := catalog.EventByID(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, models.HTTPStatus(err))
}

func TestCatalogService_PreloadWarmsCachesAndSwallowsFailures(t *testing.T) {
	catalog, hits, _ := newCatalogFixture(t)

	catalog.PreloadAll(context.Background())
	preloadHits := hits.Load()
	assert.Equal(t, int64(3), preloadHits)

	// Preloaded collections serve without further fetches.
	_, err := catalog.Events(context.Background(), false)
	require.NoError(t, err)
	_, err = catalog.Packs(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, preloadHits, hits.Load())
}

func TestCatalogService_PreloadAgainstDeadBackendDoesNotFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	catalog := NewCatalogService(testClient(t, addr), testConfig(addr), nil, utils.NewClientMetrics())

	// Must return without error or panic.
	catalog.PreloadAll(context.Background())
}

func TestCatalogService_InvalidateMarksEverythingStale(t *testing.T) {
	catalog, hits, _ := newCatalogFixture(t)

	_, err := catalog.Events(context.Background(), false)
	require.NoError(t, err)
	before := hits.Load()

	catalog.Invalidate()

	_, err = catalog.Events(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, before+1, hits.Load())
}
