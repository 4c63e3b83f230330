package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "eventclient", cfg.ServiceName)
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, 2*time.Minute, cfg.Cache.PublicTTL)
	assert.Equal(t, 5*time.Minute, cfg.Cache.AdminTTL)
	assert.Equal(t, 3*time.Second, cfg.Auth.StartupCheckTimeout)
	assert.Equal(t, 3*time.Second, cfg.Checkout.PollInterval)
	assert.Equal(t, 40, cfg.Checkout.PollMaxAttempts)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxImageBytes)
	assert.Contains(t, cfg.Upload.AllowedImageTypes, "image/png")
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("EVENT_API_BASE_URL", "https://api.example.com")
	t.Setenv("EVENT_CACHE_PUBLIC_TTL", "90s")
	t.Setenv("EVENT_CHECKOUT_POLL_MAX_ATTEMPTS", "10")
	t.Setenv("EVENT_UPLOAD_ALLOWED_TYPES", "image/png, image/webp")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, 90*time.Second, cfg.Cache.PublicTTL)
	assert.Equal(t, 10, cfg.Checkout.PollMaxAttempts)
	assert.Equal(t, []string{"image/png", "image/webp"}, cfg.Upload.AllowedImageTypes)
}

func TestLoadConfig_InvalidDurationFallsBackToDefault(t *testing.T) {
	t.Setenv("EVENT_API_REQUEST_TIMEOUT", "not-a-duration")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.API.RequestTimeout)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing base URL", func(c *Config) { c.API.BaseURL = "" }, "EVENT_API_BASE_URL is required"},
		{"bad scheme", func(c *Config) { c.API.BaseURL = "ftp://api" }, "must start with http"},
		{"zero timeout", func(c *Config) { c.API.RequestTimeout = 0 }, "must be positive"},
		{"zero TTL", func(c *Config) { c.Cache.PublicTTL = 0 }, "TTLs must be positive"},
		{"zero poll budget", func(c *Config) { c.Checkout.PollMaxAttempts = 0 }, "polling configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig()
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
