// ABOUTME: This file holds shared fixtures for the service tests
// ABOUTME: Tests run against httptest servers with short cache TTLs

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/TeBabaEvent/eventclient/config"
	"github.com/TeBabaEvent/eventclient/driver"
	"github.com/TeBabaEvent/eventclient/repository"
	"github.com/TeBabaEvent/eventclient/utils"
)

// testConfig returns a config pointed at serverURL with intervals short
// enough for tests.
func testConfig(serverURL string) *config.Config {
	return &config.Config{
		ServiceName: "eventclient-test",
		LogLevel:    "debug",
		API: config.APIConfig{
			BaseURL:        serverURL,
			RequestTimeout: 2 * time.Second,
		},
		Cache: config.CacheConfig{
			PublicTTL:      100 * time.Millisecond,
			AdminTTL:       100 * time.Millisecond,
			EventStatsSize: 8,
			EventStatsTTL:  100 * time.Millisecond,
		},
		Auth: config.AuthConfig{
			StartupCheckTimeout:    time.Second,
			LoginAttemptsPerMinute: 100,
		},
		Checkout: config.CheckoutConfig{
			PollInterval:    5 * time.Millisecond,
			PollMaxAttempts: 5,
		},
		Upload: config.UploadConfig{
			MaxImageBytes:     10 * 1024 * 1024,
			AllowedImageTypes: []string{"image/jpeg", "image/jpg", "image/png", "image/webp"},
		},
	}
}

func testClient(t *testing.T, serverURL string) *driver.APIClient {
	t.Helper()
	client, err := driver.NewAPIClient(serverURL, 2*time.Second, nil, nil)
	require.NoError(t, err)
	return client
}

func testSession(t *testing.T, serverURL string) *SessionService {
	t.Helper()
	cfg := testConfig(serverURL)
	return NewSessionService(testClient(t, serverURL), repository.NewInMemoryStateRepository(), cfg, nil, utils.NewClientMetrics())
}
