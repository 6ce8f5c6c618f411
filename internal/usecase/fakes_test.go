package usecase

import (
	"context"
	"time"

	"StockPilot/internal/domain/models"
	"StockPilot/internal/domain/repository"
)

// fakeMarketData serves canned data keyed by ticker. A ticker without an
// entry degrades to the zero value, mirroring the production fetcher.
type fakeMarketData struct {
	histories map[string][]models.PriceBar
	ranges    map[string][]models.PriceBar
	prices    map[string]float64
	profiles  map[string]models.CompanyProfile
	newsItems map[string][]models.NewsItem
	summary   models.MarketSummary
}

func (f *fakeMarketData) History(_ context.Context, ticker string, _ repository.Period) []models.PriceBar {
	return f.histories[ticker]
}

func (f *fakeMarketData) HistoryRange(_ context.Context, ticker string, _, _ time.Time) []models.PriceBar {
	return f.ranges[ticker]
}

func (f *fakeMarketData) LastPrice(_ context.Context, ticker string) float64 {
	return f.prices[ticker]
}

func (f *fakeMarketData) Profile(_ context.Context, ticker string) models.CompanyProfile {
	return f.profiles[ticker]
}

func (f *fakeMarketData) TranslatedProfile(_ context.Context, ticker string) models.CompanyProfile {
	return f.profiles[ticker]
}

func (f *fakeMarketData) News(_ context.Context, ticker string) []models.NewsItem {
	return f.newsItems[ticker]
}

func (f *fakeMarketData) Summary(_ context.Context) models.MarketSummary {
	return f.summary
}

// bars builds a daily series of closes starting at start.
func bars(start time.Time, closes ...float64) []models.PriceBar {
	out := make([]models.PriceBar, len(closes))
	for i, c := range closes {
		out[i] = models.PriceBar{
			Date:  start.AddDate(0, 0, i),
			Open:  c,
			High:  c,
			Low:   c,
			Close: c,
		}
	}
	return out
}

// fakeMetrics satisfies repository.Metrics and counts what it sees.
type fakeMetrics struct {
	fetches   int
	errors    map[string]int
	advices   map[string]int
	hits      int
	misses    int
	latencies []string
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{errors: map[string]int{}, advices: map[string]int{}}
}

func (m *fakeMetrics) RecordFetch(string, string)       { m.fetches++ }
func (m *fakeMetrics) RecordError(kind string)          { m.errors[kind]++ }
func (m *fakeMetrics) RecordCacheHit()                  { m.hits++ }
func (m *fakeMetrics) RecordCacheMiss()                 { m.misses++ }
func (m *fakeMetrics) RecordLastPrice(string, float64)  {}
func (m *fakeMetrics) RecordAdvice(action string)       { m.advices[action]++ }
func (m *fakeMetrics) RecordLatency(op string, _ float64) {
	m.latencies = append(m.latencies, op)
}
