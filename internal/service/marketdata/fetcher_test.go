package marketdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"StockPilot/internal/domain/models"
	"StockPilot/internal/domain/repository"
	applogger "StockPilot/pkg/logger"
)

type stubPrices struct {
	historyCalls int
	series       []models.PriceBar
	historyErr   error
	price        float64
	quotes       map[string]models.IndexQuote
	quoteErr     error
}

func (s *stubPrices) History(context.Context, string, repository.Period) ([]models.PriceBar, error) {
	s.historyCalls++
	return s.series, s.historyErr
}

func (s *stubPrices) HistoryRange(context.Context, string, time.Time, time.Time) ([]models.PriceBar, error) {
	return s.series, s.historyErr
}

func (s *stubPrices) LastPrice(context.Context, string) float64 { return s.price }

func (s *stubPrices) Quote(_ context.Context, symbol string) (models.IndexQuote, error) {
	if s.quoteErr != nil {
		return models.IndexQuote{}, s.quoteErr
	}
	q, ok := s.quotes[symbol]
	if !ok {
		return models.IndexQuote{}, errors.New("no quote")
	}
	return q, nil
}

type stubProfiles struct {
	calls   int
	profile models.CompanyProfile
}

func (s *stubProfiles) Profile(context.Context, string) models.CompanyProfile {
	s.calls++
	return s.profile
}

type stubNews struct{ items []models.NewsItem }

func (s *stubNews) News(context.Context, string) []models.NewsItem { return s.items }

type stubTranslator struct{ prefix string }

func (s *stubTranslator) Translate(_ context.Context, text, _ string) string {
	if s.prefix == "" {
		return text // behaves like a failing translator
	}
	return s.prefix + text
}

type stubMacro struct {
	score float64
	err   error
}

func (s *stubMacro) FearGreedIndex(context.Context) (float64, error) { return s.score, s.err }

type memCompanyCache struct {
	m map[string]models.CompanyProfile
}

func (c *memCompanyCache) GetCompany(_ context.Context, ticker string) (models.CompanyProfile, bool, error) {
	p, ok := c.m[ticker]
	return p, ok, nil
}

func (c *memCompanyCache) PutCompany(_ context.Context, p models.CompanyProfile) error {
	c.m[p.Ticker] = p
	return nil
}

type nopMetrics struct{}

func (nopMetrics) RecordFetch(string, string)      {}
func (nopMetrics) RecordError(string)              {}
func (nopMetrics) RecordCacheHit()                 {}
func (nopMetrics) RecordCacheMiss()                {}
func (nopMetrics) RecordLastPrice(string, float64) {}
func (nopMetrics) RecordAdvice(string)             {}
func (nopMetrics) RecordLatency(string, float64)   {}

func newTestFetcher(prices *stubPrices, profiles *stubProfiles, news *stubNews,
	tr *stubTranslator, macro *stubMacro, companies repository.CompanyCacheStore) *Fetcher {
	ttl := TTLConfig{
		Price:   time.Minute,
		Profile: time.Hour,
		News:    30 * time.Minute,
		Summary: 5 * time.Minute,
	}
	return NewFetcher(prices, profiles, news, tr, macro, companies,
		nopMetrics{}, applogger.Nop(), ttl, "ko")
}

func TestHistoryCachesWithinTTL(t *testing.T) {
	prices := &stubPrices{series: []models.PriceBar{{Close: 100}, {Close: 101}}}
	f := newTestFetcher(prices, &stubProfiles{}, &stubNews{}, &stubTranslator{}, &stubMacro{score: 60}, nil)

	ctx := context.Background()
	first := f.History(ctx, "AAPL", repository.P6Mo)
	second := f.History(ctx, "AAPL", repository.P6Mo)

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("series lengths %d/%d, want 2/2", len(first), len(second))
	}
	if prices.historyCalls != 1 {
		t.Fatalf("provider called %d times, want 1", prices.historyCalls)
	}
}

func TestHistoryFailureDegradesAndRetries(t *testing.T) {
	prices := &stubPrices{historyErr: errors.New("upstream down")}
	f := newTestFetcher(prices, &stubProfiles{}, &stubNews{}, &stubTranslator{}, &stubMacro{score: 60}, nil)

	ctx := context.Background()
	if got := f.History(ctx, "AAPL", repository.P6Mo); got != nil {
		t.Fatalf("got %v, want nil on failure", got)
	}
	f.History(ctx, "AAPL", repository.P6Mo)
	if prices.historyCalls != 2 {
		t.Fatalf("failures must not be cached: %d calls", prices.historyCalls)
	}
}

func TestLastPriceZeroNotCached(t *testing.T) {
	prices := &stubPrices{price: 0}
	f := newTestFetcher(prices, &stubProfiles{}, &stubNews{}, &stubTranslator{}, &stubMacro{score: 60}, nil)

	if got := f.LastPrice(context.Background(), "GHOST"); got != 0 {
		t.Fatalf("price = %v, want 0", got)
	}
	if _, stored := f.cache.Peek("price:GHOST"); stored {
		t.Fatal("zero price was cached")
	}
}

func TestSummaryUsesFearGreedFeed(t *testing.T) {
	prices := &stubPrices{quotes: map[string]models.IndexQuote{
		"^GSPC": {Price: 5000, Change: 10, ChangePercent: 0.2},
		"^VIX":  {Price: 18},
	}}
	f := newTestFetcher(prices, &stubProfiles{}, &stubNews{}, &stubTranslator{}, &stubMacro{score: 72}, nil)

	summary := f.Summary(context.Background())
	if len(summary.Indices) != 2 {
		t.Fatalf("indices = %d, want 2 (failed quotes dropped)", len(summary.Indices))
	}
	if summary.FearGreed.Score != 72 {
		t.Errorf("score = %v, want 72", summary.FearGreed.Score)
	}
	if summary.FearGreed.Label != "Greed" {
		t.Errorf("label = %q", summary.FearGreed.Label)
	}
	if q, ok := summary.Index("^GSPC"); !ok || q.Name != "S&P 500" {
		t.Errorf("S&P quote = %+v ok=%v", q, ok)
	}
}

func TestSummaryFearGreedVIXFallback(t *testing.T) {
	prices := &stubPrices{quotes: map[string]models.IndexQuote{
		"^VIX": {Price: 25},
	}}
	macro := &stubMacro{err: errors.New("cnn unreachable")}
	f := newTestFetcher(prices, &stubProfiles{}, &stubNews{}, &stubTranslator{}, macro, nil)

	summary := f.Summary(context.Background())
	// clamp(100 - (25-10)*100/30) = 50.
	if summary.FearGreed.Score != 50 {
		t.Errorf("score = %v, want 50", summary.FearGreed.Score)
	}
	if summary.FearGreed.Label != "Neutral" {
		t.Errorf("label = %q", summary.FearGreed.Label)
	}
}

func TestTranslatedProfilePersistsToCompanyCache(t *testing.T) {
	profiles := &stubProfiles{profile: models.CompanyProfile{
		Ticker: "AAPL", Name: "Apple Inc.", Sector: "Technology",
		Summary: "Designs smartphones.",
	}}
	store := &memCompanyCache{m: map[string]models.CompanyProfile{}}
	f := newTestFetcher(&stubPrices{}, profiles, &stubNews{}, &stubTranslator{prefix: "KO:"}, &stubMacro{score: 50}, store)

	ctx := context.Background()
	first := f.TranslatedProfile(ctx, "AAPL")
	if first.Summary != "KO:Designs smartphones." {
		t.Fatalf("summary = %q", first.Summary)
	}

	second := f.TranslatedProfile(ctx, "AAPL")
	if second.Summary != first.Summary {
		t.Fatalf("cached summary = %q", second.Summary)
	}
	if profiles.calls != 1 {
		t.Fatalf("profile provider called %d times, want 1", profiles.calls)
	}
}

func TestTranslatedProfileFallsBackToSource(t *testing.T) {
	profiles := &stubProfiles{profile: models.CompanyProfile{
		Ticker: "AAPL", Name: "Apple Inc.", Summary: "Designs smartphones.",
	}}
	// Empty prefix: the translator echoes its input, meaning failure.
	f := newTestFetcher(&stubPrices{}, profiles, &stubNews{}, &stubTranslator{}, &stubMacro{score: 50}, nil)

	got := f.TranslatedProfile(context.Background(), "AAPL")
	if got.Summary != "Designs smartphones." {
		t.Fatalf("summary = %q, want original text", got.Summary)
	}
}

func TestNewsBriefingTopThree(t *testing.T) {
	items := []models.NewsItem{
		{Title: "one"}, {Title: "two"}, {Title: "three"}, {Title: "four"},
	}
	f := newTestFetcher(&stubPrices{}, &stubProfiles{}, &stubNews{items: items},
		&stubTranslator{prefix: "KO:"}, &stubMacro{score: 50}, nil)

	briefing := f.NewsBriefing(context.Background(), "AAPL")
	if len(briefing.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(briefing.Items))
	}
	if briefing.Items[0].Translated != "KO:one" {
		t.Errorf("translated = %q", briefing.Items[0].Translated)
	}
	if briefing.Sentiment.Count != 4 {
		t.Errorf("sentiment count = %d, want 4 (full batch)", briefing.Sentiment.Count)
	}
}

func TestStockEventsNewestFirstCapped(t *testing.T) {
	items := make([]models.NewsItem, 12)
	for i := range items {
		items[i] = models.NewsItem{Title: "headline", Published: time.Now().Format(time.RFC1123)}
	}
	f := newTestFetcher(&stubPrices{}, &stubProfiles{}, &stubNews{items: items},
		&stubTranslator{}, &stubMacro{score: 50}, nil)

	events := f.StockEvents(context.Background(), "AAPL")
	if len(events) != 10 {
		t.Fatalf("events = %d, want 10", len(events))
	}
	for _, e := range events {
		if e.Type != "news" {
			t.Errorf("type = %q", e.Type)
		}
	}
}
