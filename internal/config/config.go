// Package config defines the environment configuration for the host binary.
// The library core takes all of its settings at construction time; everything
// here belongs to the CLI host only.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dvdk01/kuma-heartbeat/internal/schema"
)

type AppConfig struct {
	PushURLs       []string      `env:"HEARTBEAT_URLS" envSeparator:","`
	Interval       time.Duration `env:"HEARTBEAT_INTERVAL" envDefault:"60s"`
	Timeout        time.Duration `env:"HEARTBEAT_TIMEOUT" envDefault:"10s"`
	IncludeLatency bool          `env:"HEARTBEAT_INCLUDE_LATENCY" envDefault:"false"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MonitorConfigs expands the app-level settings into one MonitorConfig per
// push URL.
func (c *AppConfig) MonitorConfigs(urls []string) []schema.MonitorConfig {
	configs := make([]schema.MonitorConfig, len(urls))
	for i, url := range urls {
		configs[i] = schema.MonitorConfig{
			PushURL:        url,
			Interval:       c.Interval,
			Timeout:        c.Timeout,
			IncludeLatency: c.IncludeLatency,
		}
	}
	return configs
}
