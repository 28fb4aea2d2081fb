package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnvBindsOverDefaults(t *testing.T) {
	t.Setenv("PLATFORM_BASE_URL", "https://api.example.com")
	t.Setenv("PLATFORM_API_KEY", "secret")
	t.Setenv("PLATFORM_MAX_WORKERS", "25")
	t.Setenv("PLATFORM_REQUEST_TIMEOUT", "45s")

	cfg, err := LoadConfigFromEnv("")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, 25, cfg.MaxWorkers)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5, cfg.RetryCount) // default, not overridden
}

func TestLoadConfigFromEnvRequiresBaseURL(t *testing.T) {
	t.Setenv("PLATFORM_API_KEY", "secret")

	_, err := LoadConfigFromEnv("")
	require.Error(t, err)
}

func TestLoadConfigFromEnvRequiresCredential(t *testing.T) {
	t.Setenv("PLATFORM_BASE_URL", "https://api.example.com")

	_, err := LoadConfigFromEnv("")
	require.Error(t, err)
}
