// ABOUTME: This file implements ClientStateRepository over a JSON state file
// ABOUTME: The file is the client-side analogue of browser local storage

package repository

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

type clientState struct {
	WasLoggedIn bool   `json:"was_logged_in"`
	Locale      string `json:"locale,omitempty"`
}

// FileStateRepository stores client state in a small JSON file. Reads fall
// back to zero values when the file is missing or corrupt, so a fresh or
// damaged install behaves like a first run.
type FileStateRepository struct {
	filePath string
	logger   *slog.Logger
	mu       sync.RWMutex
}

// NewFileStateRepository creates a file-backed state repository at filePath.
// It fails when the state directory cannot be created, so callers can fall
// back to in-memory state instead of losing writes silently.
func NewFileStateRepository(filePath string, logger *slog.Logger) (*FileStateRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory %s: %w", filepath.Dir(filePath), err)
	}

	return &FileStateRepository{
		filePath: filePath,
		logger:   logger,
	}, nil
}

// WasPreviouslyLoggedIn reports whether a login succeeded in a prior run.
func (r *FileStateRepository) WasPreviouslyLoggedIn() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.load().WasLoggedIn
}

// SetPreviouslyLoggedIn records the login marker.
func (r *FileStateRepository) SetPreviouslyLoggedIn(loggedIn bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.load()
	state.WasLoggedIn = loggedIn
	return r.save(state)
}

// Locale returns the stored locale preference.
func (r *FileStateRepository) Locale() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.load().Locale
}

// SetLocale records the locale preference.
func (r *FileStateRepository) SetLocale(locale string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.load()
	state.Locale = locale
	return r.save(state)
}

func (r *FileStateRepository) load() clientState {
	var state clientState

	data, err := os.ReadFile(r.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Warn("failed to read state file", "path", r.filePath, "error", err)
		}
		return state
	}
	if err := json.Unmarshal(data, &state); err != nil {
		r.logger.Warn("state file is corrupt, treating as first run", "path", r.filePath, "error", err)
		return clientState{}
	}
	return state
}

func (r *FileStateRepository) save(state clientState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := os.WriteFile(r.filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}
