// ABOUTME: This file implements an in-memory ClientStateRepository
// ABOUTME: Used in tests and in environments without a writable filesystem

package repository

import "sync"

// InMemoryStateRepository keeps client state in memory only. State does not
// survive a restart, which matches a browser private window.
type InMemoryStateRepository struct {
	mu          sync.RWMutex
	wasLoggedIn bool
	locale      string
}

// NewInMemoryStateRepository creates an empty in-memory state repository.
func NewInMemoryStateRepository() *InMemoryStateRepository {
	return &InMemoryStateRepository{}
}

func (r *InMemoryStateRepository) WasPreviouslyLoggedIn() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.wasLoggedIn
}

func (r *InMemoryStateRepository) SetPreviouslyLoggedIn(loggedIn bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wasLoggedIn = loggedIn
	return nil
}

func (r *InMemoryStateRepository) Locale() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.locale
}

func (r *InMemoryStateRepository) SetLocale(locale string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locale = locale
	return nil
}
