// ABOUTME: This file implements admin image upload and deletion
// ABOUTME: Type and size are validated locally before any bytes are sent

package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/TeBabaEvent/eventclient/config"
	"github.com/TeBabaEvent/eventclient/driver"
	"github.com/TeBabaEvent/eventclient/models"
	"github.com/TeBabaEvent/eventclient/security"
)

// UploadService handles event and artist image management for the admin
// dashboard. Validation failures are caught locally so an oversized or
// non-image file never leaves the machine.
type UploadService struct {
	client    *driver.APIClient
	validator *security.InputValidator
	logger    *slog.Logger
}

// ImageUpload describes one file handed to the upload service.
type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// NewUploadService wires the upload flow.
func NewUploadService(client *driver.APIClient, cfg *config.Config, logger *slog.Logger) *UploadService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadService{
		client:    client,
		validator: security.NewInputValidator(cfg.Upload.MaxImageBytes, cfg.Upload.AllowedImageTypes),
		logger:    logger,
	}
}

// UploadEventImage replaces the image of one event.
func (s *UploadService) UploadEventImage(ctx context.Context, eventID string, upload ImageUpload) (*models.Ack, error) {
	return s.upload(ctx, driver.EventImage(eventID), upload)
}

// UploadArtistImage replaces the image of one artist.
func (s *UploadService) UploadArtistImage(ctx context.Context, artistID string, upload ImageUpload) (*models.Ack, error) {
	return s.upload(ctx, driver.ArtistImage(artistID), upload)
}

func (s *UploadService) upload(ctx context.Context, path string, upload ImageUpload) (*models.Ack, error) {
	if err := s.validator.ValidateImage(upload.ContentType, upload.Size); err != nil {
		return nil, err
	}

	var ack models.Ack
	if err := s.client.PostMultipart(ctx, path, "image", upload.FileName, upload.Content, nil, &ack); err != nil {
		return nil, err
	}
	s.logger.Info("image uploaded", "path", path, "file", upload.FileName, "bytes", upload.Size)
	return &ack, nil
}

// DeleteEventImage removes the image of one event.
func (s *UploadService) DeleteEventImage(ctx context.Context, eventID string) (*models.Ack, error) {
	var ack models.Ack
	if err := s.client.Delete(ctx, driver.EventImage(eventID), &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// DeleteArtistImage removes the image of one artist.
func (s *UploadService) DeleteArtistImage(ctx context.Context, artistID string) (*models.Ack, error) {
	var ack models.Ack
	if err := s.client.Delete(ctx, driver.ArtistImage(artistID), &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}
