// ABOUTME: This file defines the error taxonomy shared by all API client components
// ABOUTME: Separates transport, HTTP, aborted, auth-expired and validation failures

package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure categories callers branch on.
var (
	// ErrNetwork indicates a transport-level failure (DNS, connection refused,
	// TLS). The remote API was never reached.
	ErrNetwork = errors.New("connection error")

	// ErrAborted indicates an intentional cancellation: a request-level timeout
	// or a newer request superseding this one. Callers must treat it as a no-op
	// and never log or surface it as a failure.
	ErrAborted = errors.New("request aborted")

	// ErrAuthExpired indicates a 401 that survived a silent refresh attempt.
	// The user has to log in again; this is distinct from the operation itself
	// being rejected.
	ErrAuthExpired = errors.New("session expired")
)

// APIError is the structured error produced for non-2xx HTTP responses.
// Message prefers a server-provided detail/message field over the generic
// status line.
type APIError struct {
	Message string
	Status  int
	RawBody []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// AsAPIError unwraps err into an APIError when one is present in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// HTTPStatus returns the HTTP status carried by err, or 0 when err does not
// wrap an APIError.
func HTTPStatus(err error) int {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Status
	}
	return 0
}

// IsAborted reports whether err represents an intentional cancellation.
// Logging paths use this to filter superseded requests out.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted)
}

// IsNetwork reports whether err represents a transport-level failure.
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// ValidationError reports caller-supplied bad input detected before any
// network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// LoginErrorKind tags login failures so the UI layer can choose a localized
// message without parsing error strings.
type LoginErrorKind string

const (
	LoginErrorNone               LoginErrorKind = ""
	LoginErrorInvalidCredentials LoginErrorKind = "invalid_credentials"
	LoginErrorRateLimited        LoginErrorKind = "too_many_attempts"
	LoginErrorServer             LoginErrorKind = "server_error"
	LoginErrorGeneric            LoginErrorKind = "login_failed"
)

// LoginResult is the tagged result of a login attempt. Login never propagates
// an error to the caller; all failures are reported here.
type LoginResult struct {
	Success bool
	Kind    LoginErrorKind
	Message string
}
