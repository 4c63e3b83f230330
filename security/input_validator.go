// ABOUTME: This file implements pre-flight validation of caller-supplied input
// ABOUTME: Bad input is rejected locally before any network request is made

package security

import (
	"regexp"
	"strings"

	"github.com/TeBabaEvent/eventclient/models"
)

// InputValidator checks caller-supplied values before they reach the API.
// A validation failure is a *models.ValidationError, never a network error.
type InputValidator struct {
	emailPattern       *regexp.Regexp
	orderNumberPattern *regexp.Regexp

	maxImageBytes     int64
	allowedImageTypes map[string]bool
}

// NewInputValidator creates a validator for the given upload limits.
// allowedImageTypes accepts full MIME types ("image/png") or bare subtype
// names ("png").
func NewInputValidator(maxImageBytes int64, allowedImageTypes []string) *InputValidator {
	allowed := make(map[string]bool, len(allowedImageTypes))
	for _, t := range allowedImageTypes {
		subtype := strings.ToLower(strings.TrimSpace(t))
		subtype = strings.TrimPrefix(subtype, "image/")
		allowed[subtype] = true
	}

	return &InputValidator{
		emailPattern:       regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`),
		orderNumberPattern: regexp.MustCompile(`^[A-Za-z0-9\-]{4,64}$`),
		maxImageBytes:      maxImageBytes,
		allowedImageTypes:  allowed,
	}
}

// ValidateLoginInput checks the email and password of a login attempt.
func (v *InputValidator) ValidateLoginInput(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.NewValidationError("email", "must not be empty")
	}
	if !v.emailPattern.MatchString(email) {
		return models.NewValidationError("email", "must be a valid email address")
	}
	if password == "" {
		return models.NewValidationError("password", "must not be empty")
	}
	return nil
}

// ValidateEmail checks a bare email address (customer contact fields).
func (v *InputValidator) ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.NewValidationError("email", "must not be empty")
	}
	if !v.emailPattern.MatchString(email) {
		return models.NewValidationError("email", "must be a valid email address")
	}
	return nil
}

// ValidateOrderNumber checks an order number before lookup or capture.
func (v *InputValidator) ValidateOrderNumber(orderNumber string) error {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return models.NewValidationError("order_number", "must not be empty")
	}
	if !v.orderNumberPattern.MatchString(orderNumber) {
		return models.NewValidationError("order_number", "contains invalid characters")
	}
	return nil
}

// ValidateQRData checks scanned QR payloads before ticket validation.
func (v *InputValidator) ValidateQRData(qrData string) error {
	qrData = strings.TrimSpace(qrData)
	if qrData == "" {
		return models.NewValidationError("qr_data", "must not be empty")
	}
	if len(qrData) > 4096 {
		return models.NewValidationError("qr_data", "exceeds maximum length")
	}
	return nil
}

// ValidateImage checks an upload's MIME type and size against the configured
// limits. contentType is the full MIME type ("image/png").
func (v *InputValidator) ValidateImage(contentType string, sizeBytes int64) error {
	mediaType := strings.ToLower(strings.TrimSpace(contentType))
	subtype, ok := strings.CutPrefix(mediaType, "image/")
	if !ok {
		return models.NewValidationError("image", "file must be an image")
	}
	if !v.allowedImageTypes[subtype] {
		return models.NewValidationError("image", "unsupported image type: "+subtype)
	}
	if sizeBytes <= 0 {
		return models.NewValidationError("image", "file is empty")
	}
	if sizeBytes > v.maxImageBytes {
		return models.NewValidationError("image", "file exceeds the maximum allowed size")
	}
	return nil
}
