package api

import (
	"errors"
	"strings"
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

const searchLimit = 10

// StockHandler serves the per-ticker endpoints: detail, news, events,
// competitors, volatility analysis and universe search.
type StockHandler struct {
	fetcher     *marketdata.Fetcher
	seasonality *usecase.SeasonalityAnalyzer
	volatility  *usecase.VolatilityInferer
	scanner     *usecase.Scanner
	log         *applogger.Logger
}

func NewStockHandler(fetcher *marketdata.Fetcher, seasonality *usecase.SeasonalityAnalyzer,
	volatility *usecase.VolatilityInferer, scanner *usecase.Scanner, log *applogger.Logger) *StockHandler {
	metrics.Register()
	return &StockHandler{
		fetcher:     fetcher,
		seasonality: seasonality,
		volatility:  volatility,
		scanner:     scanner,
		log:         log,
	}
}

func (h *StockHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/stock/:ticker", h.Detail)
	g.GET("/stock/:ticker/news", h.News)
	g.GET("/stock/:ticker/events", h.Events)
	g.GET("/stock/:ticker/competitors", h.Competitors)
	g.GET("/search", h.Search)
	g.GET("/analyze/volatility/:ticker", h.Volatility)
}

func normalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func tickerParam(c echo.Context) string {
	return normalizeTicker(c.Param("ticker"))
}

// Detail joins the live price, the translated profile, recent history and
// the long-horizon seasonality into one view.
func (h *StockHandler) Detail(c echo.Context) error {
	defer h.observe("stock_detail", time.Now())
	ticker := tickerParam(c)
	if ticker == "" {
		return xhttp.BadRequestResponse(c, "ticker required")
	}
	ctx := c.Request().Context()

	detail := models.StockDetail{
		Ticker:      ticker,
		Price:       h.fetcher.LastPrice(ctx, ticker),
		Profile:     h.fetcher.TranslatedProfile(ctx, ticker),
		History:     h.history(c, ticker),
		Seasonality: h.seasonality.Analyze(h.fetcher.History(ctx, ticker, repository.P5Y)),
	}
	return xhttp.SuccessResponse(c, detail)
}

// history resolves the chart window: an explicit from/to range wins over
// the named period.
func (h *StockHandler) history(c echo.Context, ticker string) []models.PriceBar {
	ctx := c.Request().Context()
	if raw := c.QueryParam("from"); raw != "" {
		from := xhttp.ParseTimeDefault(raw, time.Now().AddDate(0, -6, 0))
		to := xhttp.ParseTimeDefault(c.QueryParam("to"), time.Now())
		return h.fetcher.HistoryRange(ctx, ticker, from, to)
	}
	period := repository.NormalizePeriod(c.QueryParam("period"))
	return h.fetcher.History(ctx, ticker, period)
}

func (h *StockHandler) News(c echo.Context) error {
	defer h.observe("stock_news", time.Now())
	ticker := tickerParam(c)
	if ticker == "" {
		return xhttp.BadRequestResponse(c, "ticker required")
	}
	return xhttp.SuccessResponse(c, h.fetcher.News(c.Request().Context(), ticker))
}

func (h *StockHandler) Events(c echo.Context) error {
	defer h.observe("stock_events", time.Now())
	ticker := tickerParam(c)
	if ticker == "" {
		return xhttp.BadRequestResponse(c, "ticker required")
	}
	return xhttp.SuccessResponse(c, h.fetcher.StockEvents(c.Request().Context(), ticker))
}

func (h *StockHandler) Competitors(c echo.Context) error {
	defer h.observe("competitors", time.Now())
	ticker := tickerParam(c)
	if ticker == "" {
		return xhttp.BadRequestResponse(c, "ticker required")
	}
	return xhttp.SuccessResponse(c, h.scanner.Competitors(c.Request().Context(), ticker))
}

func (h *StockHandler) Search(c echo.Context) error {
	defer h.observe("search", time.Now())
	query := strings.TrimSpace(c.QueryParam("query"))
	if query == "" {
		return xhttp.BadRequestResponse(c, "query required")
	}

	results := make([]models.SearchResult, 0, searchLimit)
	for _, stock := range universe.Search(query, searchLimit) {
		results = append(results, models.SearchResult{
			Ticker: stock.Ticker,
			Name:   stock.Name,
			NameKR: stock.NameKR,
			Sector: stock.Sector,
		})
	}
	return xhttp.SuccessResponse(c, results)
}

// Volatility explains the latest daily move from a 5-day window plus the
// current news batch.
func (h *StockHandler) Volatility(c echo.Context) error {
	defer h.observe("volatility", time.Now())
	ticker := tickerParam(c)
	if ticker == "" {
		return xhttp.BadRequestResponse(c, "ticker required")
	}
	ctx := c.Request().Context()

	series := h.fetcher.History(ctx, ticker, repository.P5D)
	news := h.fetcher.News(ctx, ticker)

	cause, err := h.volatility.Infer(ticker, series, news)
	if err != nil {
		if errors.Is(err, usecase.ErrInsufficientData) {
			metrics.AdvisoryErrors.WithLabelValues("volatility").Inc()
			return xhttp.AppErrorResponse(c,
				xhttp.NotFoundErrorf("no recent price data for %s", ticker))
		}
		h.log.Error("volatility inference error",
			applogger.String("ticker", ticker), applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, cause)
}

func (h *StockHandler) observe(endpoint string, start time.Time) {
	metrics.AdvisoryLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
