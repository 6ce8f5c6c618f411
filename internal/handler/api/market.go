package api

import (
	"encoding/json"
	"time"

	"github.com/labstack/echo/v4"

	"StockPilot/internal/service/marketdata"
	"StockPilot/internal/service/metrics"
	"StockPilot/internal/usecase"
	xhttp "StockPilot/pkg/http"
	applogger "StockPilot/pkg/logger"

	icache "StockPilot/internal/service/cache"
)

const (
	summaryCacheTTL = 5 * time.Minute
	moversCacheTTL  = 10 * time.Minute
)

// MarketHandler serves the market-wide endpoints: summary, regime, news,
// briefing and movers.
type MarketHandler struct {
	fetcher *marketdata.Fetcher
	regime  *usecase.RegimeClassifier
	scanner *usecase.Scanner
	cache   icache.BytesCache
	log     *applogger.Logger
}

func NewMarketHandler(fetcher *marketdata.Fetcher, regime *usecase.RegimeClassifier,
	scanner *usecase.Scanner, log *applogger.Logger) *MarketHandler {
	metrics.Register()
	return &MarketHandler{fetcher: fetcher, regime: regime, scanner: scanner, log: log}
}

// SetCache injects the optional rendered-response cache.
func (h *MarketHandler) SetCache(c icache.BytesCache) { h.cache = c }

func (h *MarketHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/market")
	g.GET("/summary", h.Summary)
	g.GET("/news", h.News)
	g.GET("/briefing", h.Briefing)
	g.GET("/movers", h.Movers)
	g.GET("/regime", h.Regime)
}

func (h *MarketHandler) Summary(c echo.Context) error {
	defer h.observe("summary", time.Now())

	if body, ok := h.cachedJSON("market:summary:json"); ok {
		return c.JSONBlob(200, body)
	}
	summary := h.fetcher.Summary(c.Request().Context())
	h.storeJSON("market:summary:json", summary, summaryCacheTTL)
	return xhttp.SuccessResponse(c, summary)
}

func (h *MarketHandler) News(c echo.Context) error {
	defer h.observe("market_news", time.Now())
	return xhttp.SuccessResponse(c, h.fetcher.MarketNews(c.Request().Context()))
}

func (h *MarketHandler) Briefing(c echo.Context) error {
	defer h.observe("briefing", time.Now())
	return xhttp.SuccessResponse(c, h.fetcher.NewsBriefing(c.Request().Context(), "^GSPC"))
}

func (h *MarketHandler) Movers(c echo.Context) error {
	defer h.observe("movers", time.Now())

	if body, ok := h.cachedJSON("market:movers:json"); ok {
		return c.JSONBlob(200, body)
	}
	report := h.scanner.Movers(c.Request().Context())
	h.storeJSON("market:movers:json", report, moversCacheTTL)
	return xhttp.SuccessResponse(c, report)
}

func (h *MarketHandler) Regime(c echo.Context) error {
	defer h.observe("regime", time.Now())

	summary := h.fetcher.Summary(c.Request().Context())
	return xhttp.SuccessResponse(c, h.regime.ClassifyFromSummary(summary))
}

func (h *MarketHandler) observe(endpoint string, start time.Time) {
	metrics.AdvisoryLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// cachedJSON returns the pre-rendered envelope for a key, when a byte cache
// is configured and holds a fresh copy.
func (h *MarketHandler) cachedJSON(key string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}
	body, ok, err := h.cache.GetBytes(key)
	if err != nil {
		h.log.Warn("response cache read failed",
			applogger.String("key", key), applogger.Error(err))
		return nil, false
	}
	return body, ok
}

func (h *MarketHandler) storeJSON(key string, data any, ttl time.Duration) {
	if h.cache == nil {
		return
	}
	body, err := json.Marshal(xhttp.APIResponse{Status: 200, Message: "OK", Data: data})
	if err != nil {
		return
	}
	if err := h.cache.SetBytes(key, body, ttl); err != nil {
		h.log.Warn("response cache write failed",
			applogger.String("key", key), applogger.Error(err))
	}
}
