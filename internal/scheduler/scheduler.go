package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"StockPilot/internal/service/marketdata"
	applogger "StockPilot/pkg/logger"
)

const warmupTimeout = 60 * time.Second

// Scheduler keeps the hot caches warm so interactive requests rarely pay
// the upstream latency. Summary and market news are refreshed on a cron
// spec; everything else warms on demand.
type Scheduler struct {
	cron    *cron.Cron
	fetcher *marketdata.Fetcher
	log     *applogger.Logger
}

func New(fetcher *marketdata.Fetcher, log *applogger.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		fetcher: fetcher,
		log:     log,
	}
}

// Register wires the warmup job. spec uses the standard 5-field cron
// format, e.g. "*/5 * * * *".
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.warmup); err != nil {
		return fmt.Errorf("register warmup: %w", err)
	}
	return nil
}

// Start launches the cron loop and runs one immediate warmup so the first
// request after boot is already served from cache.
func (s *Scheduler) Start() {
	go s.warmup()
	s.cron.Start()
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) warmup() {
	ctx, cancel := context.WithTimeout(context.Background(), warmupTimeout)
	defer cancel()

	start := time.Now()
	summary := s.fetcher.Summary(ctx)
	news := s.fetcher.MarketNews(ctx)

	s.log.Info("cache warmup finished",
		applogger.Int("indices", len(summary.Indices)),
		applogger.Int("news", len(news)),
		applogger.Duration("took", time.Since(start)))
}
