// ABOUTME: This file tests the admin image upload flow
// ABOUTME: Covers local validation and the multipart round trip

package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TeBabaEvent/eventclient/models"
)

func newUploadFixture(t *testing.T, handler http.HandlerFunc) *UploadService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewUploadService(testClient(t, server.URL), testConfig(server.URL), nil)
}

func TestUploadService_UploadEventImage(t *testing.T) {
	upload := newUploadFixture(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/events/ev-1/image", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("image")
		require.NoError(t, err)
		assert.Equal(t, "poster.png", header.Filename)
		w.Write([]byte(`{"success": true}`))
	})

	ack, err := upload.UploadEventImage(context.Background(), "ev-1", ImageUpload{
		FileName:    "poster.png",
		ContentType: "image/png",
		Size:        1024,
		Content:     strings.NewReader("png bytes"),
	})
	require.NoError(t, err)
	assert.True(t, ack.Success)
}

func TestUploadService_RejectsBadFilesLocally(t *testing.T) {
	var hits atomic.Int64
	upload := newUploadFixture(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})

	tests := []struct {
		name        string
		contentType string
		size        int64
	}{
		{"wrong type", "application/pdf", 1024},
		{"disallowed image type", "image/gif", 1024},
		{"oversized", "image/png", 11 * 1024 * 1024},
		{"empty", "image/png", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := upload.UploadArtistImage(context.Background(), "a-1", ImageUpload{
				FileName:    "file",
				ContentType: tt.contentType,
				Size:        tt.size,
				Content:     strings.NewReader("x"),
			})
			var vErr *models.ValidationError
			require.Error(t, err)
			assert.True(t, errors.As(err, &vErr))
		})
	}

	assert.Zero(t, hits.Load(), "rejected files never leave the machine")
}

func TestUploadService_DeleteEventImage(t *testing.T) {
	upload := newUploadFixture(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/events/ev-1/image", r.URL.Path)
		w.Write([]byte(`{"success": true, "message": "image removed"}`))
	})

	ack, err := upload.DeleteEventImage(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.True(t, ack.Success)
	assert.Equal(t, "image removed", ack.Message)
}
