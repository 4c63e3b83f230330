// ABOUTME: This file implements the session coordinator over cookie auth
// ABOUTME: Startup identity checks and silent refresh never surface errors

package service

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/TeBabaEvent/eventclient/config"
	"github.com/TeBabaEvent/eventclient/driver"
	"github.com/TeBabaEvent/eventclient/models"
	"github.com/TeBabaEvent/eventclient/repository"
	"github.com/TeBabaEvent/eventclient/security"
	"github.com/TeBabaEvent/eventclient/utils"
)

// SessionService coordinates the authenticated session: login and logout,
// the startup identity check, and silent refresh when the session cookie
// expires mid-use. Auth state transitions never propagate as errors; the
// caller observes them through User and IsAuthenticated.
type SessionService struct {
	client    *driver.APIClient
	stateRepo repository.ClientStateRepository
	validator *security.InputValidator
	limiter   *security.LoginRateLimiter
	logger    *slog.Logger
	metrics   *utils.ClientMetrics

	startupTimeout time.Duration

	// Concurrent refresh attempts collapse into one request.
	refreshFlight singleflight.Group

	mu          sync.RWMutex
	user        *models.User
	initialized bool
}

// NewSessionService wires the session coordinator.
func NewSessionService(client *driver.APIClient, stateRepo repository.ClientStateRepository, cfg *config.Config, logger *slog.Logger, metrics *utils.ClientMetrics) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		client:         client,
		stateRepo:      stateRepo,
		validator:      security.NewInputValidator(cfg.Upload.MaxImageBytes, cfg.Upload.AllowedImageTypes),
		limiter:        security.NewLoginRateLimiter(cfg.Auth.LoginAttemptsPerMinute),
		logger:         logger,
		metrics:        metrics,
		startupTimeout: cfg.Auth.StartupCheckTimeout,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with email and password. Failures never come back as
// errors; the tagged LoginResult tells the UI which message to show.
func (s *SessionService) Login(ctx context.Context, email, password string) models.LoginResult {
	if err := s.validator.ValidateLoginInput(email, password); err != nil {
		return models.LoginResult{Kind: models.LoginErrorInvalidCredentials, Message: err.Error()}
	}
	if !s.limiter.Allow(email) {
		return models.LoginResult{Kind: models.LoginErrorRateLimited, Message: "too many login attempts, try again later"}
	}

	var user models.User
	err := s.client.Post(ctx, driver.EndpointLogin, loginRequest{Email: email, Password: password}, &user)
	if err != nil {
		return s.classifyLoginFailure(err)
	}

	s.mu.Lock()
	s.user = &user
	s.initialized = true
	s.mu.Unlock()

	if err := s.stateRepo.SetPreviouslyLoggedIn(true); err != nil {
		s.logger.Warn("failed to persist login marker", "error", err)
	}

	s.logger.Info("login successful", "user_id", user.ID, "role", user.Role)
	return models.LoginResult{Success: true}
}

func (s *SessionService) classifyLoginFailure(err error) models.LoginResult {
	switch status := models.HTTPStatus(err); {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return models.LoginResult{Kind: models.LoginErrorInvalidCredentials, Message: "invalid email or password"}
	case status == http.StatusTooManyRequests:
		return models.LoginResult{Kind: models.LoginErrorRateLimited, Message: "too many login attempts, try again later"}
	case status >= 500:
		return models.LoginResult{Kind: models.LoginErrorServer, Message: "the server is unavailable, try again later"}
	case models.IsAborted(err):
		return models.LoginResult{Kind: models.LoginErrorGeneric, Message: "login was interrupted"}
	default:
		return models.LoginResult{Kind: models.LoginErrorGeneric, Message: "login failed"}
	}
}

// Logout ends the session. The server call is best effort; local state is
// cleared regardless so the user is signed out even when offline.
func (s *SessionService) Logout(ctx context.Context) {
	if err := s.client.Post(ctx, driver.EndpointLogout, nil, nil); err != nil && !models.IsAborted(err) {
		s.logger.Warn("logout request failed, clearing local session anyway", "error", err)
	}

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err := s.stateRepo.SetPreviouslyLoggedIn(false); err != nil {
		s.logger.Warn("failed to clear login marker", "error", err)
	}
}

// CheckAuth establishes the session state at application start. It asks the
// backend who the cookie belongs to, attempting one silent refresh on a 401
// when a previous run had logged in. The check is bounded by the startup
// timeout and never returns an error: an unreachable backend reads as
// signed out. After CheckAuth returns, IsInitialized reports true.
func (s *SessionService) CheckAuth(ctx context.Context) bool {
	defer s.markInitialized()

	ctx, cancel := context.WithTimeout(ctx, s.startupTimeout)
	defer cancel()

	return s.fetchIdentity(ctx, 0)
}

// fetchIdentity resolves the current identity, silently refreshing at most
// once on a 401.
func (s *SessionService) fetchIdentity(ctx context.Context, retryCount int) bool {
	var user models.User
	err := s.client.Get(ctx, driver.EndpointMe, &user)
	if err == nil {
		s.mu.Lock()
		s.user = &user
		s.mu.Unlock()
		return true
	}

	if models.HTTPStatus(err) == http.StatusUnauthorized {
		// Only bother refreshing when a session plausibly exists.
		if retryCount == 0 && s.stateRepo.WasPreviouslyLoggedIn() && s.RefreshSession(ctx) {
			return s.fetchIdentity(ctx, retryCount+1)
		}
		// The session is gone for good. Drop the marker so later
		// startups skip the refresh attempt.
		if s.stateRepo.WasPreviouslyLoggedIn() {
			if perr := s.stateRepo.SetPreviouslyLoggedIn(false); perr != nil {
				s.logger.Warn("failed to clear login marker", "error", perr)
			}
		}
	}

	if !models.IsAborted(err) && models.HTTPStatus(err) == 0 {
		s.logger.Warn("identity check failed, treating as signed out", "error", err)
	}

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	return false
}

// RefreshSession asks the backend to rotate the session cookie. Concurrent
// callers share one refresh request. Returns whether the session is valid
// afterwards; failure clears the local identity.
func (s *SessionService) RefreshSession(ctx context.Context) bool {
	result, _, _ := s.refreshFlight.Do("refresh", func() (any, error) {
		s.metrics.RecordSessionRefresh()

		err := s.client.Post(ctx, driver.EndpointRefresh, nil, nil)
		if err != nil {
			if !models.IsAborted(err) {
				s.logger.Info("session refresh failed", "status", models.HTTPStatus(err))
			}
			s.mu.Lock()
			s.user = nil
			s.mu.Unlock()
			return false, nil
		}

		s.logger.Debug("session refreshed")
		return true, nil
	})
	return result.(bool)
}

func (s *SessionService) markInitialized() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialized = true
}

// User returns the authenticated identity, or nil when signed out.
func (s *SessionService) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated reports whether a user is signed in.
func (s *SessionService) IsAuthenticated() bool {
	return s.User() != nil
}

// IsAdmin reports whether the signed-in user may access admin features.
func (s *SessionService) IsAdmin() bool {
	return s.User().IsAdmin()
}

// CanScan reports whether the signed-in user may operate the scanner.
func (s *SessionService) CanScan() bool {
	return s.User().CanScan()
}

// IsInitialized reports whether the startup identity check has completed.
// Gating on it keeps the UI from flashing a signed-out state during startup.
func (s *SessionService) IsInitialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}
