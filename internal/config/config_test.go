package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Test case for loading configuration from an empty environment
	// Verifies that the documented defaults apply when nothing is set
	t.Setenv("HEARTBEAT_URLS", "")
	t.Setenv("HEARTBEAT_INTERVAL", "")
	t.Setenv("HEARTBEAT_TIMEOUT", "")
	t.Setenv("HEARTBEAT_INCLUDE_LATENCY", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.PushURLs)
	assert.Equal(t, 60*time.Second, cfg.Interval)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.False(t, cfg.IncludeLatency)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FromEnvironment(t *testing.T) {
	// Test case for loading configuration from explicit environment values
	// Verifies that the comma separated URL list and durations are parsed
	t.Setenv("HEARTBEAT_URLS", "https://kuma.example.com/api/push/a,https://kuma.example.com/api/push/b")
	t.Setenv("HEARTBEAT_INTERVAL", "30s")
	t.Setenv("HEARTBEAT_TIMEOUT", "5s")
	t.Setenv("HEARTBEAT_INCLUDE_LATENCY", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://kuma.example.com/api/push/a",
		"https://kuma.example.com/api/push/b",
	}, cfg.PushURLs)
	assert.Equal(t, 30*time.Second, cfg.Interval)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.IncludeLatency)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestAppConfig_MonitorConfigs(t *testing.T) {
	// Test case for expanding app settings into per-monitor configs
	// Verifies that each URL inherits the shared interval and timeout
	cfg := &AppConfig{
		Interval:       30 * time.Second,
		Timeout:        5 * time.Second,
		IncludeLatency: true,
	}

	configs := cfg.MonitorConfigs([]string{"https://a.example.com", "https://b.example.com"})
	require.Len(t, configs, 2)

	for i, url := range []string{"https://a.example.com", "https://b.example.com"} {
		assert.Equal(t, url, configs[i].PushURL)
		assert.Equal(t, 30*time.Second, configs[i].Interval)
		assert.Equal(t, 5*time.Second, configs[i].Timeout)
		assert.True(t, configs[i].IncludeLatency)
	}
}
