package schema

import (
	"net/url"
	"time"
)

const (
	DefaultInterval = 60 * time.Second
	DefaultTimeout  = 10 * time.Second
)

// MonitorConfig describes a single push monitor. It is built once and never
// mutated after the scheduler is constructed.
type MonitorConfig struct {
	PushURL        string        `validate:"required,url,http_protocol"`
	Interval       time.Duration `validate:"gt=0"`
	Timeout        time.Duration `validate:"gt=0"`
	FriendlyName   string
	IncludeLatency bool
}

// WithDefaults returns a copy with zero-valued fields filled in.
func (c MonitorConfig) WithDefaults() MonitorConfig {
	if c.Interval == 0 {
		c.Interval = DefaultInterval
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.FriendlyName == "" {
		c.FriendlyName = c.Name()
	}
	return c
}

// Name returns the friendly name, deriving "host/path" from the push URL when
// none was configured.
func (c MonitorConfig) Name() string {
	if c.FriendlyName != "" {
		return c.FriendlyName
	}
	u, err := url.Parse(c.PushURL)
	if err != nil {
		return c.PushURL
	}
	return u.Host + u.Path
}

type PushResult struct {
	Timestamp time.Time
	Duration  time.Duration
	Status    int
	Success   bool
	Error     error
}

type PushStats struct {
	Name          string
	URL           string
	TotalPushes   int
	SuccessCount  int
	MinDuration   time.Duration
	MaxDuration   time.Duration
	TotalDuration time.Duration
	StatusCodes   map[int]int
	LastPush      time.Time
	NextPush      time.Time
}

func (stats *PushStats) AvgDuration() time.Duration {
	if stats.TotalPushes == 0 {
		return 0
	}
	return stats.TotalDuration / time.Duration(stats.TotalPushes)
}

func (stats *PushStats) SuccessPercentage() int {
	if stats.TotalPushes == 0 {
		return 0
	}
	return int(100 * float32(stats.SuccessCount) / float32(stats.TotalPushes))
}
