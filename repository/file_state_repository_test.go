// ABOUTME: This file tests the file-backed client state repository
// ABOUTME: It covers round-trips, missing files, and corrupt content

package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStateRepository_MissingFileReadsAsFirstRun(t *testing.T) {
	repo, err := NewFileStateRepository(filepath.Join(t.TempDir(), "state.json"), nil)
	require.NoError(t, err)

	assert.False(t, repo.WasPreviouslyLoggedIn())
	assert.Empty(t, repo.Locale())
}

func TestFileStateRepository_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	repo, err := NewFileStateRepository(path, nil)
	require.NoError(t, err)

	require.NoError(t, repo.SetPreviouslyLoggedIn(true))
	require.NoError(t, repo.SetLocale("fr"))

	// A fresh repository instance must see the persisted values.
	reloaded, err := NewFileStateRepository(path, nil)
	require.NoError(t, err)
	assert.True(t, reloaded.WasPreviouslyLoggedIn())
	assert.Equal(t, "fr", reloaded.Locale())

	require.NoError(t, reloaded.SetPreviouslyLoggedIn(false))
	assert.False(t, reloaded.WasPreviouslyLoggedIn())
	assert.Equal(t, "fr", reloaded.Locale(), "clearing the login marker must not drop the locale")
}

func TestFileStateRepository_CorruptFileTreatedAsFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	repo, err := NewFileStateRepository(path, nil)
	require.NoError(t, err)
	assert.False(t, repo.WasPreviouslyLoggedIn())

	// Writing must recover the file.
	require.NoError(t, repo.SetPreviouslyLoggedIn(true))
	assert.True(t, repo.WasPreviouslyLoggedIn())
}

func TestFileStateRepository_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")
	repo, err := NewFileStateRepository(path, nil)
	require.NoError(t, err)

	require.NoError(t, repo.SetPreviouslyLoggedIn(true))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStateRepository_UnusableDirectoryFails(t *testing.T) {
	// A regular file where the state directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	_, err := NewFileStateRepository(filepath.Join(blocker, "state.json"), nil)
	assert.Error(t, err)
}

func TestInMemoryStateRepository_RoundTrip(t *testing.T) {
	repo := NewInMemoryStateRepository()

	assert.False(t, repo.WasPreviouslyLoggedIn())
	require.NoError(t, repo.SetPreviouslyLoggedIn(true))
	assert.True(t, repo.WasPreviouslyLoggedIn())

	require.NoError(t, repo.SetLocale("en"))
	assert.Equal(t, "en", repo.Locale())
}
