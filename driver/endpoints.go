// ABOUTME: This file centralizes the ticketing API endpoint paths
// ABOUTME: Parameterized endpoints are built through helpers that escape ids

package driver

import (
	"fmt"
	"net/url"
)

// Fixed endpoint paths.
const (
	EndpointLogin   = "/api/auth/login"
	EndpointLogout  = "/api/auth/logout"
	EndpointMe      = "/api/auth/me"
	EndpointRefresh = "/api/auth/refresh"

	EndpointEvents         = "/api/events"
	EndpointFeaturedEvents = "/api/events/featured"
	EndpointPastEvents     = "/api/events/past"

	EndpointArtists = "/api/artists"
	EndpointPacks   = "/api/packs"

	EndpointAdminUsers       = "/api/admin/users"
	EndpointAdminGlobalStats = "/api/admin/stats/global"

	EndpointCheckoutCreate     = "/api/checkout/create"
	EndpointCartCheckoutCreate = "/api/checkout/cart/create"

	EndpointScanValidate = "/api/scan/validate"
)

// EventByID returns the detail endpoint for one event.
func EventByID(id string) string {
	return "/api/events/" + url.PathEscape(id)
}

// PastEvents returns the paginated past-events endpoint.
func PastEvents(limit, offset int) string {
	return fmt.Sprintf("%s?limit=%d&offset=%d", EndpointPastEvents, limit, offset)
}

// ArtistByID returns the detail endpoint for one artist.
func ArtistByID(id string) string {
	return "/api/artists/" + url.PathEscape(id)
}

// PackByID returns the detail endpoint for one pack.
func PackByID(id string) string {
	return "/api/packs/" + url.PathEscape(id)
}

// OrderByNumber returns the public order lookup endpoint.
func OrderByNumber(orderNumber string) string {
	return "/api/orders/" + url.PathEscape(orderNumber)
}

// CheckoutCapture returns the payment capture endpoint for an order.
func CheckoutCapture(orderNumber string) string {
	return "/api/checkout/capture/" + url.PathEscape(orderNumber)
}

// AdminEventStats returns the per-event stats endpoint.
func AdminEventStats(eventID string) string {
	return "/api/admin/stats/events/" + url.PathEscape(eventID)
}

// ScanStats returns the scan progress endpoint for one event.
func ScanStats(eventID string) string {
	return "/api/scan/stats/" + url.PathEscape(eventID)
}

// ScanHistory returns the scan history endpoint. EventID is optional; an
// empty id requests history across all events.
func ScanHistory(eventID string, limit int) string {
	if eventID == "" {
		return fmt.Sprintf("/api/scan/history?limit=%d", limit)
	}
	return fmt.Sprintf("/api/scan/history?event_id=%s&limit=%d", url.QueryEscape(eventID), limit)
}

// EventImage returns the image upload/delete endpoint for one event.
func EventImage(eventID string) string {
	return "/api/events/" + url.PathEscape(eventID) + "/image"
}

// ArtistImage returns the image upload/delete endpoint for one artist.
func ArtistImage(artistID string) string {
	return "/api/artists/" + url.PathEscape(artistID) + "/image"
}
