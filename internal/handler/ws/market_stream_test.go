package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"StockPilot/internal/domain/models"
	"StockPilot/internal/domain/repository"
	"StockPilot/internal/service/marketdata"
	applogger "StockPilot/pkg/logger"
)

type streamPrices struct {
	quoteCalls atomic.Int64
}

func (s *streamPrices) History(context.Context, string, repository.Period) ([]models.PriceBar, error) {
	return nil, nil
}

func (s *streamPrices) HistoryRange(context.Context, string, time.Time, time.Time) ([]models.PriceBar, error) {
	return nil, nil
}

func (s *streamPrices) LastPrice(context.Context, string) float64 { return 0 }

func (s *streamPrices) Quote(_ context.Context, symbol string) (models.IndexQuote, error) {
	s.quoteCalls.Add(1)
	return models.IndexQuote{Symbol: symbol, Price: 100, Change: 1, ChangePercent: 1}, nil
}

type streamProfiles struct{}

func (streamProfiles) Profile(context.Context, string) models.CompanyProfile {
	return models.CompanyProfile{}
}

type streamNews struct{}

func (streamNews) News(context.Context, string) []models.NewsItem { return nil }

type streamTranslator struct{}

func (streamTranslator) Translate(_ context.Context, text, _ string) string { return text }

type streamMacro struct{}

func (streamMacro) FearGreedIndex(context.Context) (float64, error) { return 55, nil }

type streamMetrics struct{}

func (streamMetrics) RecordFetch(string, string) {}
func (streamMetrics) RecordError(string) {}
func (streamMetrics) RecordCacheHit() {}
func (streamMetrics) RecordCacheMiss() {}
func (streamMetrics) RecordLastPrice(string, float64) {}
func (streamMetrics) RecordAdvice(string) {}
func (streamMetrics) RecordLatency(string, float64) {}

// newStreamFetcher builds a fetcher whose summary resolves instantly from
// stubs. Summary TTL is zero so every push hits the providers, which lets
// tests count pushes through the quote call counter.
func newStreamFetcher(prices *streamPrices) *marketdata.Fetcher {
	return marketdata.NewFetcher(
		prices,
		streamProfiles{},
		streamNews{},
		streamTranslator{},
		streamMacro{},
		nil,
		streamMetrics{},
		applogger.Nop(),
		marketdata.TTLConfig{},
		"ko",
	)
}

func dialStream(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/market"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func TestStreamPushesAcrossIntervals(t *testing.T) {
	stream := NewMarketStream(newStreamFetcher(&streamPrices{}), 50*time.Millisecond, applogger.Nop())

	e := echo.New()
	stream.RegisterRoutes(e)
	srv := httptest.NewServer(e)
	defer srv.Close()

	conn := dialStream(t, srv)
	defer conn.Close()

	// The immediate snapshot plus at least two interval pushes must arrive
	// on one connection.
	for i := 1; i <= 3; i++ {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var summary models.MarketSummary
		if err := conn.ReadJSON(&summary); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if len(summary.Indices) == 0 {
			t.Fatalf("frame %d: summary has no indices", i)
		}
	}
}

func TestStreamStopsWhenClientCloses(t *testing.T) {
	prices := &streamPrices{}
	stream := NewMarketStream(newStreamFetcher(prices), 30*time.Millisecond, applogger.Nop())

	e := echo.New()
	stream.RegisterRoutes(e)
	srv := httptest.NewServer(e)
	defer srv.Close()

	conn := dialStream(t, srv)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var summary models.MarketSummary
	if err := conn.ReadJSON(&summary); err != nil {
		t.Fatalf("first frame: %v", err)
	}
	conn.Close()

	// Give the read pump time to notice, then verify the push loop quit.
	time.Sleep(200 * time.Millisecond)
	after := prices.quoteCalls.Load()
	time.Sleep(200 * time.Millisecond)
	if got := prices.quoteCalls.Load(); got != after {
		t.Fatalf("pushes continued after close: %d -> %d quote calls", after, got)
	}
}
