package api

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"StockPilot/internal/domain/models"
	"StockPilot/internal/domain/repository"
	"StockPilot/internal/domain/universe"
	"StockPilot/internal/service/marketdata"
	"StockPilot/internal/service/metrics"
	"StockPilot/internal/usecase"
	xhttp "StockPilot/pkg/http"
	applogger "StockPilot/pkg/logger"
)

// PortfolioHandler serves the watchlist and holdings endpoints plus the
// portfolio-level analyses.
type PortfolioHandler struct {
	watchlist repository.WatchlistStore
	holdings  repository.HoldingStore
	fetcher   *marketdata.Fetcher
	analyzer  *usecase.PortfolioAnalyzer
	log       *applogger.Logger
}

func NewPortfolioHandler(watchlist repository.WatchlistStore, holdings repository.HoldingStore,
	fetcher *marketdata.Fetcher, analyzer *usecase.PortfolioAnalyzer, log *applogger.Logger) *PortfolioHandler {
	metrics.Register()
	return &PortfolioHandler{
		watchlist: watchlist,
		holdings:  holdings,
		fetcher:   fetcher,
		analyzer:  analyzer,
		log:       log,
	}
}

func (h *PortfolioHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/watchlist", h.Watchlist)
	g.POST("/watchlist/:ticker", h.AddWatch)
	g.DELETE("/watchlist/:ticker", h.RemoveWatch)

	g.GET("/portfolio", h.Portfolio)
	g.POST("/portfolio", h.AddHolding)
	g.DELETE("/portfolio/:ticker", h.RemoveHolding)
	g.GET("/portfolio/analyze", h.Analyze)
	g.GET("/portfolio/correlation", h.Correlation)
}

func (h *PortfolioHandler) Watchlist(c echo.Context) error {
	defer h.observe("watchlist", time.Now())
	list, err := h.watchlist.ListWatchlist(c.Request().Context())
	if err != nil {
		metrics.AdvisoryErrors.WithLabelValues("watchlist").Inc()
		h.log.Error("watchlist list error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if list == nil {
		list = []models.WatchlistEntry{}
	}
	return xhttp.SuccessResponse(c, list)
}

func (h *PortfolioHandler) AddWatch(c echo.Context) error {
	defer h.observe("watchlist_add", time.Now())
	ticker := tickerParam(c)
	if ticker == "" {
		return xhttp.BadRequestResponse(c, "ticker required")
	}

	name := ticker
	if stock, ok := universe.Find(ticker); ok {
		name = stock.NameKR
	}
	if err := h.watchlist.AddToWatchlist(c.Request().Context(), ticker, name); err != nil {
		metrics.AdvisoryErrors.WithLabelValues("watchlist_add").Inc()
		h.log.Error("watchlist add error",
			applogger.String("ticker", ticker), applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CreatedResponse(c, models.WatchlistEntry{Ticker: ticker, Name: name})
}

func (h *PortfolioHandler) RemoveWatch(c echo.Context) error {
	defer h.observe("watchlist_remove", time.Now())
	ticker := tickerParam(c)
	if ticker == "" {
		return xhttp.BadRequestResponse(c, "ticker required")
	}
	if err := h.watchlist.RemoveFromWatchlist(c.Request().Context(), ticker); err != nil {
		metrics.AdvisoryErrors.WithLabelValues("watchlist_remove").Inc()
		h.log.Error("watchlist remove error",
			applogger.String("ticker", ticker), applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.NoContentResponse(c)
}

// Portfolio lists holdings enriched with live prices.
func (h *PortfolioHandler) Portfolio(c echo.Context) error {
	defer h.observe("portfolio", time.Now())
	enriched, err := h.enrichedHoldings(c)
	if err != nil {
		metrics.AdvisoryErrors.WithLabelValues("portfolio").Inc()
		h.log.Error("portfolio list error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, enriched)
}

func (h *PortfolioHandler) AddHolding(c echo.Context) error {
	defer h.observe("portfolio_add", time.Now())
	req := &models.AddHoldingRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	holding := models.Holding{
		Ticker:   normalizeTicker(req.Ticker),
		Shares:   req.Shares,
		AvgPrice: req.AvgPrice,
	}
	if err := h.holdings.UpsertHolding(c.Request().Context(), holding); err != nil {
		metrics.AdvisoryErrors.WithLabelValues("portfolio_add").Inc()
		h.log.Error("holding upsert error",
			applogger.String("ticker", holding.Ticker), applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CreatedResponse(c, holding)
}

func (h *PortfolioHandler) RemoveHolding(c echo.Context) error {
	defer h.observe("portfolio_remove", time.Now())
	ticker := tickerParam(c)
	if ticker == "" {
		return xhttp.BadRequestResponse(c, "ticker required")
	}
	if err := h.holdings.RemoveHolding(c.Request().Context(), ticker); err != nil {
		metrics.AdvisoryErrors.WithLabelValues("portfolio_remove").Inc()
		h.log.Error("holding remove error",
			applogger.String("ticker", ticker), applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.NoContentResponse(c)
}

func (h *PortfolioHandler) Analyze(c echo.Context) error {
	defer h.observe("portfolio_analyze", time.Now())
	enriched, err := h.enrichedHoldings(c)
	if err != nil {
		metrics.AdvisoryErrors.WithLabelValues("portfolio_analyze").Inc()
		h.log.Error("portfolio analyze error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, h.analyzer.Analyze(enriched))
}

func (h *PortfolioHandler) Correlation(c echo.Context) error {
	defer h.observe("portfolio_correlation", time.Now())
	holdings, err := h.holdings.ListHoldings(c.Request().Context())
	if err != nil {
		metrics.AdvisoryErrors.WithLabelValues("portfolio_correlation").Inc()
		h.log.Error("correlation list error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	tickers := make([]string, 0, len(holdings))
	for _, holding := range holdings {
		tickers = append(tickers, holding.Ticker)
	}
	return xhttp.SuccessResponse(c, h.analyzer.Correlation(tickers))
}

// enrichedHoldings joins stored positions with live prices, fetched in
// parallel. A ticker whose price fails enriches to zero-valued fields.
func (h *PortfolioHandler) enrichedHoldings(c echo.Context) ([]models.EnrichedHolding, error) {
	ctx := c.Request().Context()
	holdings, err := h.holdings.ListHoldings(ctx)
	if err != nil {
		return nil, err
	}

	enriched := make([]models.EnrichedHolding, len(holdings))
	var wg sync.WaitGroup
	for i, holding := range holdings {
		wg.Add(1)
		go func(i int, holding models.Holding) {
			defer wg.Done()
			price := h.fetcher.LastPrice(ctx, holding.Ticker)
			costBasis := holding.Shares * holding.AvgPrice
			value := holding.Shares * price
			enriched[i] = models.EnrichedHolding{
				Ticker:       holding.Ticker,
				Shares:       holding.Shares,
				AvgPrice:     holding.AvgPrice,
				CurrentPrice: price,
				CurrentValue: value,
				CostBasis:    costBasis,
				ProfitLoss:   value - costBasis,
			}
		}(i, holding)
	}
	wg.Wait()
	return enriched, nil
}

func (h *PortfolioHandler) observe(endpoint string, start time.Time) {
	metrics.AdvisoryLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
