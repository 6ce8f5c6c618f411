package usecase

import (
	"context"
	"time"

	"StockPilot/internal/domain/models"
	"StockPilot/internal/domain/repository"
	applogger "StockPilot/pkg/logger"
)

// Advisor orchestrates a full consultation: fetch the inputs, run the
// consultant, then stream and persist the result. Publish and persistence
// failures are logged, never surfaced; the advice itself already exists.
type Advisor struct {
	data       MarketData
	consultant *Consultant
	store      repository.AdviceStore
	publisher  repository.AdvicePublisher
	metrics    repository.Metrics
	log        *applogger.Logger
}

// NewAdvisor creates an advisor. store and publisher may be nil when the
// corresponding backends are disabled.
func NewAdvisor(
	data MarketData,
	consultant *Consultant,
	store repository.AdviceStore,
	publisher repository.AdvicePublisher,
	metrics repository.Metrics,
	log *applogger.Logger,
) *Advisor {
	return &Advisor{
		data:       data,
		consultant: consultant,
		store:      store,
		publisher:  publisher,
		metrics:    metrics,
		log:        log,
	}
}

// Consult runs the full advisory pipeline for one ticker over a 2-year
// window.
func (a *Advisor) Consult(ctx context.Context, ticker string) models.AdviceResult {
	start := time.Now()

	series := a.data.History(ctx, ticker, repository.P2Y)
	profile := a.data.Profile(ctx, ticker)
	news := a.data.News(ctx, ticker)

	advice := a.consultant.Advise(ticker, series, profile, news)

	a.metrics.RecordAdvice(advice.Action)
	a.metrics.RecordLatency("consult", time.Since(start).Seconds())

	if a.publisher != nil {
		if err := a.publisher.PublishAdvice(ctx, advice); err != nil {
			a.metrics.RecordError("advice_publish")
			a.log.Warn("advice publish failed",
				applogger.String("ticker", ticker), applogger.Error(err))
		}
	}
	if a.store != nil {
		if err := a.store.SaveAdvice(ctx, snapshotOf(advice)); err != nil {
			a.metrics.RecordError("advice_store")
			a.log.Warn("advice snapshot save failed",
				applogger.String("ticker", ticker), applogger.Error(err))
		}
	}
	return advice
}

// History returns recent persisted snapshots for a ticker, newest first.
// Without a store the history is simply empty.
func (a *Advisor) History(ctx context.Context, ticker string, limit int) ([]models.AdviceSnapshot, error) {
	if a.store == nil {
		return nil, nil
	}
	return a.store.RecentAdvice(ctx, ticker, limit)
}

func snapshotOf(advice models.AdviceResult) models.AdviceSnapshot {
	rsi := 0.0
	if advice.Signals.Technical.RSI != nil {
		rsi = *advice.Signals.Technical.RSI
	}
	return models.AdviceSnapshot{
		Ticker:    advice.Ticker,
		Timestamp: time.Now().UTC(),
		Action:    advice.Action,
		Score:     advice.Score,
		RSI:       rsi,
		Trend:     advice.Signals.Technical.Trend,
		Sentiment: advice.Signals.Sentiment.Score,
	}
}
