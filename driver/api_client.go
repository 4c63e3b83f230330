// ABOUTME: This file implements the HTTP client wrapper for the ticketing API
// ABOUTME: It handles cookie credentials, timeouts, and error normalization

package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/TeBabaEvent/eventclient/models"
	"github.com/TeBabaEvent/eventclient/utils"
)

const defaultRequestTimeout = 30 * time.Second

// APIClient is the single HTTP gateway to the ticketing backend. Session
// cookies are carried automatically through the client's cookie jar, so
// callers never handle credentials directly.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
	metrics    *utils.ClientMetrics
}

// NewAPIClient creates an API client rooted at baseURL. A zero timeout
// falls back to the default request timeout. Every request outcome is
// counted on metrics; a nil recorder disables counting.
func NewAPIClient(baseURL string, timeout time.Duration, logger *slog.Logger, metrics *utils.ClientMetrics) (*APIClient, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Jar: jar,
		},
		timeout: timeout,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// BaseURL returns the configured API origin.
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// Do sends one JSON request and decodes the response into out (out may be
// nil when the body is irrelevant). Request bodies are JSON-encoded from
// body when body is non-nil.
//
// Errors are normalized: cancellation surfaces as models.ErrAborted,
// transport failures as models.ErrNetwork, and non-2xx statuses as
// *models.APIError carrying the server's detail message when one exists.
func (c *APIClient) Do(ctx context.Context, method, path string, body, out any) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "eventclient/1.0")
	req.Header.Set("X-Request-ID", uuid.New().String())

	return c.send(req, out)
}

// Get issues a GET request for path.
func (c *APIClient) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *APIClient) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *APIClient) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request for path.
func (c *APIClient) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// PostMultipart uploads a single file as multipart form data under
// fieldName. Extra form fields can be passed through fields.
func (c *APIClient) PostMultipart(ctx context.Context, path, fieldName, fileName string, file io.Reader, fields map[string]string, out any) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "eventclient/1.0")
	req.Header.Set("X-Request-ID", uuid.New().String())

	return c.send(req, out)
}

func (c *APIClient) send(req *http.Request, out any) error {
	err := c.roundTrip(req, out)
	// Cancellation is a caller decision, so it counts as a request but
	// never as a failure.
	c.metrics.RecordRequest(err != nil && !models.IsAborted(err))
	return err
}

func (c *APIClient) roundTrip(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Cancellation is reported but never logged.
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return fmt.Errorf("%w: %s %s", models.ErrAborted, req.Method, req.URL.Path)
		}
		c.logger.Error("request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"error", err)
		return fmt.Errorf("%w: %v", models.ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return fmt.Errorf("%w: %s %s", models.ErrAborted, req.Method, req.URL.Path)
		}
		c.logger.Error("failed to read response body",
			"method", req.Method,
			"path", req.URL.Path,
			"error", err)
		return fmt.Errorf("%w: %v", models.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &models.APIError{
			Message: extractErrorMessage(respBody, resp.StatusCode),
			Status:  resp.StatusCode,
			RawBody: respBody,
		}
		if resp.StatusCode >= 500 {
			c.logger.Error("server error response",
				"method", req.Method,
				"path", req.URL.Path,
				"status", resp.StatusCode)
		} else {
			c.logger.Debug("error response",
				"method", req.Method,
				"path", req.URL.Path,
				"status", resp.StatusCode)
		}
		return apiErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		c.logger.Error("failed to decode response",
			"method", req.Method,
			"path", req.URL.Path,
			"error", err)
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// extractErrorMessage pulls a human-readable message out of an error
// response body. The backend uses either {"detail": ...} or
// {"message": ...}; anything else falls back to a generic status line.
func extractErrorMessage(body []byte, status int) string {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Detail != "":
			return payload.Detail
		case payload.Message != "":
			return payload.Message
		case payload.Error != "":
			return payload.Error
		}
	}
	return fmt.Sprintf("HTTP error %d", status)
}
