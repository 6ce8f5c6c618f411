package marketdata

import (
	"context"
	"fmt"
	"sync"
	"time"

	"StockPilot/internal/domain/models"
	"StockPilot/internal/domain/repository"
	"StockPilot/internal/domain/service"
	"StockPilot/internal/services/analytics"
	"StockPilot/pkg/cache"
	applogger "StockPilot/pkg/logger"
)

// The fixed instrument set shown on the market summary, in display order.
var summaryIndices = []struct {
	Symbol string
	Name   string
}{
	{"^GSPC", "S&P 500"},
	{"^IXIC", "Nasdaq"},
	{"^DJI", "Dow Jones"},
	{"^KS11", "KOSPI"},
	{"^KQ11", "KOSDAQ"},
	{"GC=F", "Gold"},
	{"CL=F", "WTI Crude Oil"},
	{"KRW=X", "USD/KRW"},
	{"BTC-USD", "Bitcoin"},
	{"^TNX", "10Y Treasury Yield"},
	{"^VIX", "VIX (Volatility)"},
}

const (
	defaultFearGreed = 50.0
	marketNewsQuery  = "주식 시장"
	briefingTopN     = 3
	eventsTopN       = 10

	// Summary text is truncated before translation; on failure a shorter
	// chunk is retried because the public endpoint rejects long inputs
	// far more often than short ones.
	translateChunk      = 1000
	translateChunkRetry = 200
)

// TTLConfig holds the per-category cache lifetimes.
type TTLConfig struct {
	Price   time.Duration
	Profile time.Duration
	News    time.Duration
	Summary time.Duration
}

// Fetcher is the caching data-access layer over the upstream providers.
// Every method degrades to a typed default on upstream failure; the error
// policy of callers is therefore trivial.
type Fetcher struct {
	prices     service.PriceProvider
	profiles   service.ProfileProvider
	news       service.NewsProvider
	translator service.Translator
	macro      service.MacroFeed
	companies  repository.CompanyCacheStore

	cache     *cache.FetchCache
	sentiment *analytics.SentimentAnalyzer
	metrics   repository.Metrics
	log       *applogger.Logger

	ttl    TTLConfig
	locale string
}

func NewFetcher(
	prices service.PriceProvider,
	profiles service.ProfileProvider,
	news service.NewsProvider,
	translator service.Translator,
	macro service.MacroFeed,
	companies repository.CompanyCacheStore,
	metrics repository.Metrics,
	log *applogger.Logger,
	ttl TTLConfig,
	locale string,
) *Fetcher {
	if locale == "" {
		locale = "ko"
	}
	return &Fetcher{
		prices:     prices,
		profiles:   profiles,
		news:       news,
		translator: translator,
		macro:      macro,
		companies:  companies,
		cache:      cache.NewFetchCache(),
		sentiment:  analytics.NewSentimentAnalyzer(),
		metrics:    metrics,
		log:        log,
		ttl:        ttl,
		locale:     locale,
	}
}

// cached wraps the fetch cache with hit/miss accounting.
func (f *Fetcher) cached(key string, ttl time.Duration, produce func() (any, bool)) any {
	miss := false
	v := f.cache.GetOrFetch(key, ttl, func() (any, bool) {
		miss = true
		return produce()
	})
	if miss {
		f.metrics.RecordCacheMiss()
	} else {
		f.metrics.RecordCacheHit()
	}
	return v
}

func (f *Fetcher) History(ctx context.Context, ticker string, period repository.Period) []models.PriceBar {
	key := fmt.Sprintf("history:%s:%s", ticker, period)
	v := f.cached(key, f.ttl.Price, func() (any, bool) {
		f.metrics.RecordFetch("yahoo", ticker)
		series, err := f.prices.History(ctx, ticker, period)
		if err != nil {
			f.metrics.RecordError("history_fetch")
			f.log.Warn("history fetch failed",
				applogger.String("ticker", ticker), applogger.Error(err))
			return []models.PriceBar(nil), false
		}
		return series, len(series) > 0
	})
	series, _ := v.([]models.PriceBar)
	return series
}

// HistoryRange bypasses the cache: windows are arbitrary and rarely repeat.
func (f *Fetcher) HistoryRange(ctx context.Context, ticker string, from, to time.Time) []models.PriceBar {
	f.metrics.RecordFetch("yahoo", ticker)
	series, err := f.prices.HistoryRange(ctx, ticker, from, to)
	if err != nil {
		f.metrics.RecordError("history_fetch")
		f.log.Warn("history range fetch failed",
			applogger.String("ticker", ticker), applogger.Error(err))
		return nil
	}
	return series
}

func (f *Fetcher) LastPrice(ctx context.Context, ticker string) float64 {
	key := "price:" + ticker
	v := f.cached(key, f.ttl.Price, func() (any, bool) {
		f.metrics.RecordFetch("yahoo", ticker)
		price := f.prices.LastPrice(ctx, ticker)
		if price > 0 {
			f.metrics.RecordLastPrice(ticker, price)
		}
		return price, price > 0
	})
	price, _ := v.(float64)
	return price
}

func (f *Fetcher) Profile(ctx context.Context, ticker string) models.CompanyProfile {
	key := "profile:" + ticker
	v := f.cached(key, f.ttl.Profile, func() (any, bool) {
		f.metrics.RecordFetch("yahoo", ticker)
		profile := f.profiles.Profile(ctx, ticker)
		return profile, !profile.IsEmpty()
	})
	profile, _ := v.(models.CompanyProfile)
	return profile
}

// TranslatedProfile serves the profile with its business summary translated
// to the configured locale. Translations are persisted in the company cache
// so each ticker is translated at most once.
func (f *Fetcher) TranslatedProfile(ctx context.Context, ticker string) models.CompanyProfile {
	if f.companies != nil {
		if cached, ok, err := f.companies.GetCompany(ctx, ticker); err == nil && ok {
			f.metrics.RecordCacheHit()
			return cached
		}
	}

	profile := f.Profile(ctx, ticker)
	if profile.Summary != "" {
		profile.Summary = f.translateChunked(ctx, profile.Summary)
	}

	if f.companies != nil && !profile.IsEmpty() {
		if err := f.companies.PutCompany(ctx, profile); err != nil {
			f.log.Warn("company cache write failed",
				applogger.String("ticker", ticker), applogger.Error(err))
		}
	}
	return profile
}

// translateChunked truncates to a translatable size and retries once with a
// much smaller chunk when the full chunk comes back untranslated.
func (f *Fetcher) translateChunked(ctx context.Context, text string) string {
	chunk := truncate(text, translateChunk)
	translated := f.translator.Translate(ctx, chunk, f.locale)
	if translated != chunk {
		return translated
	}
	short := truncate(text, translateChunkRetry)
	translated = f.translator.Translate(ctx, short, f.locale)
	if translated != short {
		return translated
	}
	return text
}

func (f *Fetcher) News(ctx context.Context, ticker string) []models.NewsItem {
	key := "news:" + ticker
	v := f.cached(key, f.ttl.News, func() (any, bool) {
		f.metrics.RecordFetch("news", ticker)
		items := f.news.News(ctx, ticker)
		return items, len(items) > 0
	})
	items, _ := v.([]models.NewsItem)
	return items
}

// Summary fetches the whole index set in parallel plus the Fear & Greed
// gauge. Instruments that fail to quote are simply absent from the result.
func (f *Fetcher) Summary(ctx context.Context) models.MarketSummary {
	v := f.cached("market:summary", f.ttl.Summary, func() (any, bool) {
		summary := f.fetchSummary(ctx)
		return summary, len(summary.Indices) > 0
	})
	summary, _ := v.(models.MarketSummary)
	return summary
}

func (f *Fetcher) fetchSummary(ctx context.Context) models.MarketSummary {
	quotes := make([]models.IndexQuote, len(summaryIndices))
	ok := make([]bool, len(summaryIndices))

	var wg sync.WaitGroup
	for i, idx := range summaryIndices {
		wg.Add(1)
		go func(i int, symbol, name string) {
			defer wg.Done()
			f.metrics.RecordFetch("yahoo", symbol)
			q, err := f.prices.Quote(ctx, symbol)
			if err != nil {
				f.metrics.RecordError("quote_fetch")
				f.log.Debug("index quote failed",
					applogger.String("symbol", symbol), applogger.Error(err))
				return
			}
			q.Symbol = symbol
			q.Name = name
			quotes[i] = q
			ok[i] = true
		}(i, idx.Symbol, idx.Name)
	}
	wg.Wait()

	summary := models.MarketSummary{UpdatedAt: time.Now().UTC()}
	for i := range quotes {
		if ok[i] {
			summary.Indices = append(summary.Indices, quotes[i])
		}
	}
	summary.FearGreed = f.fearGreed(ctx, summary)
	return summary
}

// fearGreed reads the CNN gauge, falling back to a VIX-derived estimate and
// finally to a flat 50.
func (f *Fetcher) fearGreed(ctx context.Context, summary models.MarketSummary) models.FearGreed {
	score, err := f.macro.FearGreedIndex(ctx)
	if err != nil {
		f.metrics.RecordError("fear_greed_fetch")
		f.log.Debug("fear greed fetch failed", applogger.Error(err))
		score = defaultFearGreed
		if vix, found := summary.Index("^VIX"); found && vix.Price > 0 {
			score = clamp(100-(vix.Price-10)*100/30, 0, 100)
		}
	}
	return models.FearGreed{Score: score, Label: fearGreedLabel(score)}
}

// MarketNews serves broad market headlines with titles translated to the
// configured locale.
func (f *Fetcher) MarketNews(ctx context.Context) []models.NewsItem {
	v := f.cached("market:news", f.ttl.News, func() (any, bool) {
		items := f.news.News(ctx, marketNewsQuery)
		for i := range items {
			items[i].Title = f.translator.Translate(ctx, items[i].Title, f.locale)
		}
		return items, len(items) > 0
	})
	items, _ := v.([]models.NewsItem)
	return items
}

// NewsBriefing digests the top market headlines: translated titles plus an
// aggregate sentiment over the full batch.
func (f *Fetcher) NewsBriefing(ctx context.Context, ticker string) models.NewsBriefing {
	items := f.News(ctx, ticker)

	briefing := models.NewsBriefing{
		Sentiment: f.sentiment.Analyze(items),
	}
	top := items
	if len(top) > briefingTopN {
		top = top[:briefingTopN]
	}
	for _, item := range top {
		briefing.Items = append(briefing.Items, models.BriefingItem{
			Title:      item.Title,
			Translated: f.translateChunked(ctx, item.Title),
			Link:       item.Link,
			Published:  item.Published,
		})
	}
	return briefing
}

// StockEvents renders recent headlines as a newest-first event timeline.
func (f *Fetcher) StockEvents(ctx context.Context, ticker string) []models.StockEvent {
	items := f.News(ctx, ticker)
	if len(items) > eventsTopN {
		items = items[:eventsTopN]
	}
	events := make([]models.StockEvent, 0, len(items))
	for _, item := range items {
		events = append(events, models.StockEvent{
			Date:        item.Published,
			Type:        "news",
			Title:       item.Title,
			Description: item.Summary,
		})
	}
	return events
}

func fearGreedLabel(score float64) string {
	switch {
	case score >= 75:
		return "Extreme Greed"
	case score >= 55:
		return "Greed"
	case score >= 45:
		return "Neutral"
	case score >= 25:
		return "Fear"
	default:
		return "Extreme Fear"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
