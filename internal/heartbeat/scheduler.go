package heartbeat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/dvdk01/kuma-heartbeat/internal/schema"
	"github.com/dvdk01/kuma-heartbeat/internal/validator"
)

// ErrAlreadyRunning is returned by Start when the scheduler already has an
// active timer. A scheduler never runs two timers at once.
var ErrAlreadyRunning = errors.New("heartbeat scheduler is already running")

const userAgent = "kuma-heartbeat/1.0 (+https://github.com/dvdk01/kuma-heartbeat)"

// Scheduler pushes a liveness heartbeat to a single Uptime Kuma push monitor
// at a fixed interval. The HTTP client is borrowed from the host and may be
// shared with other schedulers; it must be safe for concurrent use.
type Scheduler struct {
	client    *http.Client
	cfg       schema.MonitorConfig
	hooks     Hooks
	log       *log.Entry
	statsChan chan *schema.PushStats
	latency   *latencyWindow

	mutex sync.RWMutex
	stats *schema.PushStats

	runMutex sync.Mutex
	running  bool
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewScheduler validates cfg (after defaulting) and builds an idle scheduler.
// A nil client falls back to http.DefaultClient.
func NewScheduler(client *http.Client, cfg schema.MonitorConfig, statsChan chan *schema.PushStats, hooks Hooks) (*Scheduler, error) {
	cfg = cfg.WithDefaults()

	if err := validator.NewConfigValidator().ValidateConfig(cfg); err != nil {
		return nil, err
	}

	if client == nil {
		client = http.DefaultClient
	}

	return &Scheduler{
		client:    client,
		cfg:       cfg,
		hooks:     hooks,
		log:       log.WithField("monitor", cfg.FriendlyName),
		statsChan: statsChan,
		latency:   newLatencyWindow(),
		stats: &schema.PushStats{
			Name:        cfg.FriendlyName,
			URL:         cfg.PushURL,
			StatusCodes: make(map[int]int),
			MinDuration: time.Duration(^uint64(0) >> 1), // math.Maxint alternative (to avoid dependency on math package)
		},
	}, nil
}

func (s *Scheduler) Name() string {
	return s.cfg.FriendlyName
}

func (s *Scheduler) Running() bool {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()
	return s.running
}

// Start begins the periodic schedule. The first push fires immediately, then
// once per interval. Returns ErrAlreadyRunning if the timer is already active.
func (s *Scheduler) Start(ctx context.Context) error {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.running = true

	go s.run(runCtx, done)
	return nil
}

// Stop cancels the schedule and aborts any in-flight push, then waits for the
// timer goroutine to exit. After Stop returns no further pushes are issued.
// Safe to call multiple times and before Start.
func (s *Scheduler) Stop() {
	s.runMutex.Lock()
	if !s.running {
		s.runMutex.Unlock()
		return
	}
	cancel, done := s.cancel, s.done
	s.running = false
	s.cancel = nil
	s.done = nil
	s.runMutex.Unlock()

	cancel()
	<-done
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	// Execute initial push immediately without waiting for the first tick
	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick performs one push. Failures are logged and reported via hooks but
// never escape; the next scheduled tick is the only retry.
func (s *Scheduler) tick(ctx context.Context) {
	result := s.push(ctx)
	s.updateStats(result)

	if result.Error != nil {
		s.log.WithError(result.Error).Warn("heartbeat push failed")
		if s.hooks.OnError != nil {
			s.hooks.OnError(result.Error)
		}
	} else {
		s.log.WithField("status", result.Status).Debug("heartbeat pushed")
	}

	if s.hooks.OnPush != nil {
		s.hooks.OnPush(result)
	}

	if s.statsChan != nil {
		select {
		case s.statsChan <- s.Stats():
		default:
		}
	}
}

func (s *Scheduler) push(ctx context.Context) schema.PushResult {
	reqCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	result := schema.PushResult{Timestamp: time.Now()}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, s.cfg.PushURL, nil)
	if err != nil {
		result.Error = err
		return result
	}
	req.Header.Set("User-Agent", userAgent)

	query := req.URL.Query()
	s.applyPushParams(query)
	req.URL.RawQuery = query.Encode()

	start := time.Now()
	resp, err := s.client.Do(req)
	result.Duration = time.Since(start)

	if err != nil {
		result.Error = err
		return result
	}
	defer resp.Body.Close() //nolint

	_, _ = io.Copy(io.Discard, resp.Body)

	result.Status = resp.StatusCode
	result.Success = resp.StatusCode >= 200 && resp.StatusCode < 300
	if !result.Success {
		result.Error = fmt.Errorf("unexpected push status %d", resp.StatusCode)
	}

	return result
}

func (s *Scheduler) applyPushParams(query url.Values) {
	up := true
	if s.hooks.Status != nil {
		up = s.hooks.Status()
	}
	msg := "OK"
	if s.hooks.Message != nil {
		msg = s.hooks.Message()
	}

	if up {
		query.Set("status", "up")
	} else {
		query.Set("status", "down")
	}
	query.Set("msg", msg)

	if s.cfg.IncludeLatency {
		if avg, ok := s.latency.Average(); ok {
			query.Set("ping", strconv.FormatFloat(avg, 'f', 2, 64))
		}
	}
}

func (s *Scheduler) updateStats(result schema.PushResult) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	stats := s.stats
	stats.TotalPushes++

	if result.Success {
		stats.SuccessCount++
		stats.LastPush = result.Timestamp
		stats.NextPush = result.Timestamp.Add(s.cfg.Interval)
	}

	if result.Duration < stats.MinDuration {
		stats.MinDuration = result.Duration
	}
	if result.Duration > stats.MaxDuration {
		stats.MaxDuration = result.Duration
	}

	stats.TotalDuration += result.Duration

	if result.Status > 0 {
		stats.StatusCodes[result.Status]++
	}
}

// RecordLatency feeds one host-side round-trip sample into the window that
// backs the ping query parameter.
func (s *Scheduler) RecordLatency(d time.Duration) {
	s.latency.Record(d)
}

// AverageLatency returns the mean recorded latency in milliseconds, or false
// when no sample has been recorded yet.
func (s *Scheduler) AverageLatency() (float64, bool) {
	return s.latency.Average()
}

// LastPush returns the timestamp of the most recent successful push. The zero
// time means no push has succeeded yet.
func (s *Scheduler) LastPush() time.Time {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.stats.LastPush
}

// NextPush returns the expected time of the next push, derived from the last
// successful one. The zero time means no push has succeeded yet.
func (s *Scheduler) NextPush() time.Time {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.stats.NextPush
}

func (s *Scheduler) Stats() *schema.PushStats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	//Generate deepcopy of stats
	stats := schema.PushStats{
		Name:          s.stats.Name,
		URL:           s.stats.URL,
		TotalPushes:   s.stats.TotalPushes,
		SuccessCount:  s.stats.SuccessCount,
		MinDuration:   s.stats.MinDuration,
		MaxDuration:   s.stats.MaxDuration,
		TotalDuration: s.stats.TotalDuration,
		StatusCodes:   make(map[int]int),
		LastPush:      s.stats.LastPush,
		NextPush:      s.stats.NextPush,
	}

	for code, count := range s.stats.StatusCodes {
		stats.StatusCodes[code] = count
	}

	return &stats
}
