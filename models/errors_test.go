package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError_Classification(t *testing.T) {
	apiErr := &APIError{Message: "event not found", Status: 404}
	wrapped := fmt.Errorf("fetching event: %w", apiErr)

	got, ok := AsAPIError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, 404, got.Status)
	assert.Equal(t, 404, HTTPStatus(wrapped))
	assert.Equal(t, 0, HTTPStatus(errors.New("plain")))
}

func TestIsAborted_DistinguishesCancellationFromFailures(t *testing.T) {
	aborted := fmt.Errorf("%w: context deadline exceeded", ErrAborted)
	assert.True(t, IsAborted(aborted))

	assert.False(t, IsAborted(ErrNetwork))
	assert.False(t, IsAborted(&APIError{Message: "boom", Status: 500}))
	assert.False(t, IsAborted(ErrAuthExpired))
}

func TestUser_RoleDerivations(t *testing.T) {
	tests := []struct {
		name     string
		user     *User
		isAdmin  bool
		canScan  bool
	}{
		{"nil user", nil, false, false},
		{"plain user", &User{Role: RoleUser}, false, false},
		{"steward", &User{Role: RoleSteward}, false, true},
		{"admin", &User{Role: RoleAdmin}, true, true},
		{"super admin", &User{Role: RoleSuperAdmin}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isAdmin, tt.user.IsAdmin())
			assert.Equal(t, tt.canScan, tt.user.CanScan())
		})
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, OrderCompleted.IsTerminal())
	assert.True(t, OrderFailed.IsTerminal())
	assert.True(t, OrderCancelled.IsTerminal())
	assert.False(t, OrderPending.IsTerminal())
	assert.False(t, OrderPendingCash.IsTerminal())
}

func TestArtist_Visible(t *testing.T) {
	hidden := false
	shown := true
	assert.True(t, (&Artist{}).Visible())
	assert.True(t, (&Artist{ShowOnWebsite: &shown}).Visible())
	assert.False(t, (&Artist{ShowOnWebsite: &hidden}).Visible())
}
