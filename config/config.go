// ABOUTME: This file handles configuration management for the event ticketing client
// ABOUTME: Loads environment variables and validates settings for API access and caching

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the ticketing API client.
type Config struct {
	// Service configuration
	ServiceName string
	LogLevel    string

	// Remote API configuration
	API APIConfig

	// Client-side cache configuration
	Cache CacheConfig

	// Session / auth configuration
	Auth AuthConfig

	// Checkout polling configuration
	Checkout CheckoutConfig

	// Image upload constraints
	Upload UploadConfig
}

// APIConfig holds remote ticketing API settings.
type APIConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// CacheConfig holds TTLs for the resource cache stores.
// Public and admin content carry different freshness requirements.
type CacheConfig struct {
	PublicTTL      time.Duration
	AdminTTL       time.Duration
	EventStatsSize int
	EventStatsTTL  time.Duration
}

// AuthConfig holds session coordinator settings.
type AuthConfig struct {
	// StartupCheckTimeout bounds the identity check at application start so a
	// slow network never blocks the first render.
	StartupCheckTimeout time.Duration
	// StateFilePath is where the client persists its small durable state
	// (previously-logged-in flag, locale preference).
	StateFilePath string
	// LoginAttemptsPerMinute limits local login attempts per account.
	LoginAttemptsPerMinute int
}

// CheckoutConfig holds order status polling settings.
type CheckoutConfig struct {
	PollInterval    time.Duration
	PollMaxAttempts int
}

// UploadConfig holds client-side image upload constraints.
type UploadConfig struct {
	MaxImageBytes     int64
	AllowedImageTypes []string
}

// LoadConfig loads configuration from environment variables. A .env file in
// the working directory is honored when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName: getEnvOrDefault("SERVICE_NAME", "eventclient"),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),

		API: APIConfig{
			BaseURL:        getEnvOrDefault("EVENT_API_BASE_URL", "http://localhost:8000"),
			RequestTimeout: getDurationOrDefault("EVENT_API_REQUEST_TIMEOUT", 30*time.Second),
		},

		Cache: CacheConfig{
			PublicTTL:      getDurationOrDefault("EVENT_CACHE_PUBLIC_TTL", 2*time.Minute),
			AdminTTL:       getDurationOrDefault("EVENT_CACHE_ADMIN_TTL", 5*time.Minute),
			EventStatsSize: getIntOrDefault("EVENT_CACHE_STATS_SIZE", 128),
			EventStatsTTL:  getDurationOrDefault("EVENT_CACHE_STATS_TTL", 5*time.Minute),
		},

		Auth: AuthConfig{
			StartupCheckTimeout:    getDurationOrDefault("EVENT_AUTH_STARTUP_TIMEOUT", 3*time.Second),
			StateFilePath:          getEnvOrDefault("EVENT_CLIENT_STATE_FILE", defaultStateFilePath()),
			LoginAttemptsPerMinute: getIntOrDefault("EVENT_AUTH_LOGIN_ATTEMPTS_PER_MINUTE", 5),
		},

		Checkout: CheckoutConfig{
			PollInterval:    getDurationOrDefault("EVENT_CHECKOUT_POLL_INTERVAL", 3*time.Second),
			PollMaxAttempts: getIntOrDefault("EVENT_CHECKOUT_POLL_MAX_ATTEMPTS", 40),
		},

		Upload: UploadConfig{
			MaxImageBytes:     int64(getIntOrDefault("EVENT_UPLOAD_MAX_IMAGE_MB", 10)) * 1024 * 1024,
			AllowedImageTypes: getListOrDefault("EVENT_UPLOAD_ALLOWED_TYPES", []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("EVENT_API_BASE_URL is required")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("EVENT_API_BASE_URL must start with http:// or https://")
	}
	if c.API.RequestTimeout <= 0 {
		return fmt.Errorf("EVENT_API_REQUEST_TIMEOUT must be positive")
	}
	if c.Cache.PublicTTL <= 0 || c.Cache.AdminTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}
	if c.Checkout.PollInterval <= 0 || c.Checkout.PollMaxAttempts <= 0 {
		return fmt.Errorf("checkout polling configuration must be positive")
	}
	return nil
}

// defaultStateFilePath places the client state file under the user config
// directory, falling back to the working directory.
func defaultStateFilePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + "/eventclient/state.json"
	}
	return ".eventclient-state.json"
}

// getEnvOrDefault returns environment variable value or default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getListOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
