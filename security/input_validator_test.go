// ABOUTME: This file tests input validation and the local login rate limiter
// ABOUTME: Covers login, order number, QR, and image upload validation

package security

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TeBabaEvent/eventclient/models"
)

func newTestValidator() *InputValidator {
	return NewInputValidator(10*1024*1024, []string{"jpeg", "jpg", "png", "webp"})
}

func TestValidateLoginInput(t *testing.T) {
	validator := newTestValidator()

	tests := []struct {
		name      string
		email     string
		password  string
		wantField string
	}{
		{"valid input", "steward@babaevent.com", "secret", ""},
		{"empty email", "", "secret", "email"},
		{"whitespace email", "   ", "secret", "email"},
		{"malformed email", "not-an-email", "secret", "email"},
		{"email without tld", "user@host", "secret", "email"},
		{"empty password", "steward@babaevent.com", "", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateLoginInput(tt.email, tt.password)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var vErr *models.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestValidateOrderNumber(t *testing.T) {
	validator := newTestValidator()

	assert.NoError(t, validator.ValidateOrderNumber("BABA-2026-0042"))
	assert.Error(t, validator.ValidateOrderNumber(""))
	assert.Error(t, validator.ValidateOrderNumber("x"))
	assert.Error(t, validator.ValidateOrderNumber("order number with spaces"))
	assert.Error(t, validator.ValidateOrderNumber("../../etc/passwd"))
}

func TestValidateQRData(t *testing.T) {
	validator := newTestValidator()

	assert.NoError(t, validator.ValidateQRData("TICKET:ev-1:abcdef"))
	assert.Error(t, validator.ValidateQRData(""))
	assert.Error(t, validator.ValidateQRData("  "))

	huge := make([]byte, 5000)
	for i := range huge {
		huge[i] = 'a'
	}
	assert.Error(t, validator.ValidateQRData(string(huge)))
}

func TestValidateImage(t *testing.T) {
	validator := newTestValidator()

	tests := []struct {
		name        string
		contentType string
		size        int64
		wantErr     bool
	}{
		{"png accepted", "image/png", 1024, false},
		{"jpeg accepted", "image/jpeg", 1024, false},
		{"webp accepted", "image/webp", 1024, false},
		{"case insensitive", "IMAGE/PNG", 1024, false},
		{"gif rejected", "image/gif", 1024, true},
		{"pdf rejected", "application/pdf", 1024, true},
		{"empty file rejected", "image/png", 0, true},
		{"oversized rejected", "image/png", 11 * 1024 * 1024, true},
		{"at exact limit accepted", "image/png", 10 * 1024 * 1024, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateImage(tt.contentType, tt.size)
			if tt.wantErr {
				var vErr *models.ValidationError
				require.Error(t, err)
				assert.True(t, errors.As(err, &vErr))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
