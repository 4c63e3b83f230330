// ABOUTME: This file defines the public catalog domain models (events, artists, packs)
// ABOUTME: Shapes mirror the JSON returned by the ticketing API list endpoints

package models

// EventStatus describes where an event sits in its lifecycle.
type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventPast      EventStatus = "past"
	EventCancelled EventStatus = "cancelled"
)

// Price is the entry price advertised for an event.
type Price struct {
	From     float64 `json:"from"`
	Currency string  `json:"currency"`
}

// Event is a bookable event in the catalog.
type Event struct {
	ID               string      `json:"id"`
	Slug             string      `json:"slug,omitempty"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Category         string      `json:"category"`
	Date             string      `json:"date"`
	Time             string      `json:"time"`
	Location         string      `json:"location"`
	City             string      `json:"city"`
	Address          string      `json:"address,omitempty"`
	Price            *Price      `json:"price,omitempty"`
	ImageURL         string      `json:"image_url,omitempty"`
	Status           EventStatus `json:"status,omitempty"`
	Featured         bool        `json:"featured,omitempty"`
	Tags             []string    `json:"tags,omitempty"`
	Capacity         int         `json:"capacity,omitempty"`
	AvailableTickets int         `json:"availableTickets,omitempty"`
	Artists          []Artist    `json:"artists,omitempty"`
	Packs            []Pack      `json:"packs,omitempty"`
	CreatedAt        string      `json:"created_at,omitempty"`
	UpdatedAt        string      `json:"updated_at,omitempty"`
}

// IsUpcoming reports whether the event should appear in the upcoming listing.
// Events without an explicit status are treated as upcoming.
func (e *Event) IsUpcoming() bool {
	return e.Status == "" || e.Status == EventUpcoming
}

// Artist is a performer attached to one or more events.
type Artist struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Role          string `json:"role,omitempty"`
	Description   string `json:"description,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
	EventsCount   int    `json:"events_count,omitempty"`
	Instagram     string `json:"instagram,omitempty"`
	Badge         string `json:"badge,omitempty"`
	ShowOnWebsite *bool  `json:"show_on_website,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// Visible reports whether the artist should be rendered on the public site.
// Only an explicit false hides the artist.
func (a *Artist) Visible() bool {
	return a.ShowOnWebsite == nil || *a.ShowOnWebsite
}

// Pack is a ticket tier sold for an event.
type Pack struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Unit        string   `json:"unit,omitempty"`
	Features    []string `json:"features,omitempty"`
	IsActive    bool     `json:"is_active"`
	IsSoldOut   bool     `json:"is_soldout,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
}

// Page is the envelope returned by paginated list endpoints. HasMore is a
// pointer so an endpoint that omits the flag can be told apart from one
// that reports false.
type Page[T any] struct {
	Items   []T   `json:"items"`
	Total   int   `json:"total"`
	Offset  int   `json:"offset"`
	Limit   int   `json:"limit"`
	HasMore *bool `json:"has_more"`
}
