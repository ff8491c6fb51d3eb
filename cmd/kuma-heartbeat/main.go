package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/dvdk01/kuma-heartbeat/internal/application"
	"github.com/dvdk01/kuma-heartbeat/internal/config"
	"github.com/dvdk01/kuma-heartbeat/internal/heartbeat"
	"github.com/dvdk01/kuma-heartbeat/internal/processor"
	"github.com/dvdk01/kuma-heartbeat/internal/schema"
	"github.com/dvdk01/kuma-heartbeat/internal/validator"
)

func printUsage(programName string) {
	fmt.Fprintf(os.Stderr, "Usage: %s <push-url1> <push-url2> ... <push-urlN>\n", programName)
	fmt.Fprintf(os.Stderr, "Push URLs may also be supplied via HEARTBEAT_URLS (comma separated).\n")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Error("failed to load configuration")
		os.Exit(1)
	}

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	urls := os.Args[1:]
	if len(urls) == 0 {
		urls = cfg.PushURLs
	}
	urls = removeDuplicates(urls)

	if len(urls) == 0 {
		printUsage(os.Args[0])
		os.Exit(1)
	}

	results := validator.NewConfigValidator().ValidateURLs(urls)

	if validator.HasInvalidURLs(results) {
		fmt.Fprintf(os.Stderr, "\nValidation failed: Some push URLs are invalid\n")
		fmt.Fprintf(os.Stderr, "Invalid URLs: %v\n", results.GetInvalidURLs())

		printUsage(os.Args[0])
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	statsChan := make(chan *schema.PushStats, len(urls))
	display := application.NewCLIApplication(statsChan)

	var wg sync.WaitGroup
	proc, err := processor.New(&wg, http.DefaultClient, cfg.MonitorConfigs(urls), heartbeat.Hooks{}, statsChan, display)
	if err != nil {
		log.WithError(err).Error("invalid monitor configuration")
		os.Exit(1)
	}

	proc.Start(ctx)
}

func removeDuplicates(slice []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(slice))

	for _, item := range slice {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}

	return result
}
