package processor

import (
	"context"
	"net/http"
	"os"
	"sync"

	"github.com/dvdk01/kuma-heartbeat/internal/application"
	"github.com/dvdk01/kuma-heartbeat/internal/heartbeat"
	"github.com/dvdk01/kuma-heartbeat/internal/schema"
	log "github.com/sirupsen/logrus"
)

type processor struct {
	schedulers  []heartbeat.Heartbeat
	application application.Application
	wg          *sync.WaitGroup
	statsChan   chan *schema.PushStats
}

// New builds one scheduler per monitor config, all sharing the given HTTP
// client, and ties them to the display application. Invalid configs fail here.
func New(wg *sync.WaitGroup, client *http.Client, configs []schema.MonitorConfig, hooks heartbeat.Hooks, statsChan chan *schema.PushStats, display application.Application) (*processor, error) {
	schedulers := make([]heartbeat.Heartbeat, len(configs))
	for i, cfg := range configs {
		s, err := heartbeat.NewScheduler(client, cfg, statsChan, hooks)
		if err != nil {
			return nil, err
		}
		schedulers[i] = s
	}
	return &processor{
		schedulers:  schedulers,
		application: display,
		wg:          wg,
		statsChan:   statsChan,
	}, nil
}

// Start runs all schedulers until ctx is cancelled, then stops them and
// renders the final stats. Blocks until shutdown is complete.
func (p *processor) Start(ctx context.Context) {
	for _, s := range p.schedulers {
		if err := s.Start(ctx); err != nil {
			log.WithError(err).Error("failed to start heartbeat scheduler")
			os.Exit(1)
		}
	}

	if err := p.application.Start(ctx); err != nil {
		log.WithError(err).Error("failed to start application")
		os.Exit(1)
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		<-ctx.Done()
		for _, s := range p.schedulers {
			s.Stop()
		}
	}()

	p.wg.Wait()
	stats := make(map[string]*schema.PushStats)
	for _, s := range p.schedulers {
		stat := s.Stats()
		stats[stat.URL] = stat
	}
	p.application.Render(stats)
}
