// ABOUTME: This file implements the steward ticket scanner flow
// ABOUTME: A newer scan supersedes the in-flight one instead of queueing

package service

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/TeBabaEvent/eventclient/config"
	"github.com/TeBabaEvent/eventclient/driver"
	"github.com/TeBabaEvent/eventclient/models"
	"github.com/TeBabaEvent/eventclient/security"
)

const scanHistoryPageSize = 50

// ScannerService validates scanned tickets and serves scan progress. Only
// one scanner request runs at a time: starting a new validation, stats, or
// history fetch cancels whichever request is still in flight, because the
// steward is always looking at the latest scan.
type ScannerService struct {
	client    *driver.APIClient
	session   *SessionService
	validator *security.InputValidator
	logger    *slog.Logger

	mu         sync.Mutex
	cancelPrev context.CancelFunc

	stateMu  sync.RWMutex
	lastScan *models.ScanResult
	lastErr  error
	scanning bool
}

// NewScannerService wires the scanner flow.
func NewScannerService(client *driver.APIClient, session *SessionService, cfg *config.Config, logger *slog.Logger) *ScannerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScannerService{
		client:    client,
		session:   session,
		validator: security.NewInputValidator(cfg.Upload.MaxImageBytes, cfg.Upload.AllowedImageTypes),
		logger:    logger,
	}
}

// arm registers a new scanner request, cancelling the previous one. The
// returned context is cancelled when a later request arms or Reset runs.
func (s *ScannerService) arm(ctx context.Context) (context.Context, context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelPrev != nil {
		s.cancelPrev()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancelPrev = cancel
	return ctx, cancel
}

// ValidateTicket submits one scanned QR payload. A 401 triggers one silent
// session refresh and a retry; a second 401 surfaces models.ErrAuthExpired,
// which is a session problem, not a verdict on the ticket. An invalid
// ticket is not an error: the ScanResult carries the rejection.
func (s *ScannerService) ValidateTicket(ctx context.Context, req models.ScanRequest) (*models.ScanResult, error) {
	if err := s.validator.ValidateQRData(req.QRData); err != nil {
		return nil, err
	}

	ctx, cancel := s.arm(ctx)
	defer cancel()

	s.setScanning(true)
	defer s.setScanning(false)

	result, err := s.validateOnce(ctx, req, 0)
	if err != nil {
		// A superseded scan leaves the last verdict on screen.
		if !models.IsAborted(err) {
			s.setResult(nil, err)
		}
		return nil, err
	}

	s.setResult(result, nil)
	return result, nil
}

func (s *ScannerService) validateOnce(ctx context.Context, req models.ScanRequest, retryCount int) (*models.ScanResult, error) {
	var result models.ScanResult
	err := s.client.Post(ctx, driver.EndpointScanValidate, req, &result)
	if err == nil {
		return &result, nil
	}

	if models.HTTPStatus(err) == http.StatusUnauthorized {
		if retryCount == 0 && s.session.RefreshSession(ctx) {
			return s.validateOnce(ctx, req, retryCount+1)
		}
		return nil, models.ErrAuthExpired
	}
	return nil, err
}

// Stats returns the scan progress for one event.
func (s *ScannerService) Stats(ctx context.Context, eventID string) (*models.ScanStats, error) {
	if eventID == "" {
		return nil, models.NewValidationError("event_id", "must not be empty")
	}

	ctx, cancel := s.arm(ctx)
	defer cancel()

	var stats models.ScanStats
	if err := s.client.Get(ctx, driver.ScanStats(eventID), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// History returns recent scans, for one event or across all of them when
// eventID is empty.
func (s *ScannerService) History(ctx context.Context, eventID string) (*models.ScanHistory, error) {
	ctx, cancel := s.arm(ctx)
	defer cancel()

	var history models.ScanHistory
	if err := s.client.Get(ctx, driver.ScanHistory(eventID, scanHistoryPageSize), &history); err != nil {
		return nil, err
	}
	return &history, nil
}

// Reset cancels any in-flight scanner request and clears the last verdict,
// returning the scanner to its idle state.
func (s *ScannerService) Reset() {
	s.mu.Lock()
	if s.cancelPrev != nil {
		s.cancelPrev()
		s.cancelPrev = nil
	}
	s.mu.Unlock()

	s.stateMu.Lock()
	s.lastScan = nil
	s.lastErr = nil
	s.stateMu.Unlock()
}

// LastResult returns the most recent scan verdict, or nil after Reset.
func (s *ScannerService) LastResult() *models.ScanResult {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.lastScan
}

// LastError returns the most recent scanner failure, or nil.
func (s *ScannerService) LastError() error {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.lastErr
}

// IsScanning reports whether a validation is in flight.
func (s *ScannerService) IsScanning() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.scanning
}

func (s *ScannerService) setScanning(scanning bool) {
	s.stateMu.Lock()
	s.scanning = scanning
	s.stateMu.Unlock()
}

func (s *ScannerService) setResult(result *models.ScanResult, err error) {
	s.stateMu.Lock()
	s.lastScan = result
	s.lastErr = err
	s.stateMu.Unlock()
}
