// ABOUTME: This file defines the persistence interfaces for client-side state
// ABOUTME: Implementations store the small flags that survive a restart

package repository

// ClientStateRepository persists the handful of client-side flags that
// outlive a single run: whether a session existed before (gates the silent
// refresh on startup) and the preferred locale.
type ClientStateRepository interface {
	// WasPreviouslyLoggedIn reports whether a login succeeded in a prior run.
	// A missing or unreadable store reads as false.
	WasPreviouslyLoggedIn() bool

	// SetPreviouslyLoggedIn records the login marker.
	SetPreviouslyLoggedIn(loggedIn bool) error

	// Locale returns the stored locale preference, or "" when none is set.
	Locale() string

	// SetLocale records the locale preference.
	SetLocale(locale string) error
}
