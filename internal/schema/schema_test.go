package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPushStats_AvgDuration(t *testing.T) {
	tests := []struct {
		name     string
		stats    *PushStats
		expected time.Duration
	}{
		// Test case for calculating average duration with no pushes
		// Verifies that zero is returned when nothing has been sent yet
		{
			name: "zero pushes",
			stats: &PushStats{
				TotalPushes:   0,
				TotalDuration: 0,
			},
			expected: 0,
		},
		// Test case for calculating average duration with a single push
		// Verifies that the duration of a single push is returned as is
		{
			name: "single push",
			stats: &PushStats{
				TotalPushes:   1,
				TotalDuration: time.Second,
			},
			expected: time.Second,
		},
		// Test case for calculating average duration with multiple pushes
		// Verifies that the average is correctly calculated over several pushes
		{
			name: "multiple pushes",
			stats: &PushStats{
				TotalPushes:   3,
				TotalDuration: 3 * time.Second,
			},
			expected: time.Second,
		},
		// Test case for calculating average duration with fractional result
		// Verifies that the average is correctly calculated when the result is not a whole number
		{
			name: "fractional duration",
			stats: &PushStats{
				TotalPushes:   2,
				TotalDuration: 3 * time.Second,
			},
			expected: time.Second + 500*time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.stats.AvgDuration())
		})
	}
}

func TestPushStats_SuccessPercentage(t *testing.T) {
	tests := []struct {
		name     string
		stats    *PushStats
		expected int
	}{
		// Test case for calculating success rate with no pushes
		// Verifies that zero is returned when nothing has been sent yet
		{
			name:     "zero pushes",
			stats:    &PushStats{},
			expected: 0,
		},
		// Test case for calculating success rate with all pushes successful
		// Verifies that a fully successful monitor reports 100%
		{
			name: "all successful",
			stats: &PushStats{
				TotalPushes:  4,
				SuccessCount: 4,
			},
			expected: 100,
		},
		// Test case for calculating success rate with partial failures
		// Verifies that the percentage is truncated towards zero
		{
			name: "partial failures",
			stats: &PushStats{
				TotalPushes:  3,
				SuccessCount: 2,
			},
			expected: 66,
		},
		// Test case for calculating success rate with no successes
		// Verifies that a fully failing monitor reports 0%
		{
			name: "all failed",
			stats: &PushStats{
				TotalPushes:  5,
				SuccessCount: 0,
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.stats.SuccessPercentage())
		})
	}
}

func TestMonitorConfig_WithDefaults(t *testing.T) {
	tests := []struct {
		name     string
		config   MonitorConfig
		expected MonitorConfig
	}{
		// Test case for filling all defaulted fields
		// Verifies that interval, timeout and friendly name get their defaults
		{
			name:   "empty config gets defaults",
			config: MonitorConfig{PushURL: "https://kuma.example.com/api/push/abc123"},
			expected: MonitorConfig{
				PushURL:      "https://kuma.example.com/api/push/abc123",
				Interval:     DefaultInterval,
				Timeout:      DefaultTimeout,
				FriendlyName: "kuma.example.com/api/push/abc123",
			},
		},
		// Test case for preserving explicitly configured values
		// Verifies that non-zero fields are never overwritten by defaults
		{
			name: "explicit values preserved",
			config: MonitorConfig{
				PushURL:      "https://kuma.example.com/api/push/abc123",
				Interval:     5 * time.Second,
				Timeout:      2 * time.Second,
				FriendlyName: "my-bot",
			},
			expected: MonitorConfig{
				PushURL:      "https://kuma.example.com/api/push/abc123",
				Interval:     5 * time.Second,
				Timeout:      2 * time.Second,
				FriendlyName: "my-bot",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.WithDefaults())
		})
	}
}

func TestMonitorConfig_Name(t *testing.T) {
	// Test case for deriving the friendly name from the push URL
	// Verifies that the host and path are joined when no name is configured
	cfg := MonitorConfig{PushURL: "https://kuma.example.com/api/push/abc123?status=up"}
	assert.Equal(t, "kuma.example.com/api/push/abc123", cfg.Name())

	// Test case for an explicitly configured friendly name
	// Verifies that the configured name takes precedence over derivation
	cfg.FriendlyName = "my-bot"
	assert.Equal(t, "my-bot", cfg.Name())
}
