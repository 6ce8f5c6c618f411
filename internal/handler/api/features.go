package api

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"StockPilot/internal/domain/models"
	"StockPilot/internal/domain/repository"
	"StockPilot/internal/service/metrics"
	"StockPilot/internal/usecase"
	xhttp "StockPilot/pkg/http"
	applogger "StockPilot/pkg/logger"
)

// FeaturesHandler serves the engagement features: persona battle, smart
// calendar and the time machine.
type FeaturesHandler struct {
	battle      *usecase.BattleSimulator
	calendar    *usecase.Calendar
	timeMachine *usecase.TimeMachine
	watchlist   repository.WatchlistStore
	log         *applogger.Logger
}

func NewFeaturesHandler(battle *usecase.BattleSimulator, calendar *usecase.Calendar,
	timeMachine *usecase.TimeMachine, watchlist repository.WatchlistStore,
	log *applogger.Logger) *FeaturesHandler {
	metrics.Register()
	return &FeaturesHandler{
		battle:      battle,
		calendar:    calendar,
		timeMachine: timeMachine,
		watchlist:   watchlist,
		log:         log,
	}
}

func (h *FeaturesHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/battle", h.Battle)
	g.GET("/calendar/smart", h.SmartCalendar)
	g.POST("/time-machine", h.TimeMachine)
}

func (h *FeaturesHandler) Battle(c echo.Context) error {
	defer h.observe("battle", time.Now())
	return xhttp.SuccessResponse(c, h.battle.Run(c.Request().Context()))
}

// SmartCalendar builds the upcoming-events view. Watchlist read failures
// reduce the calendar to macro and expiry events instead of failing it.
func (h *FeaturesHandler) SmartCalendar(c echo.Context) error {
	defer h.observe("calendar", time.Now())

	var tickers []string
	entries, err := h.watchlist.ListWatchlist(c.Request().Context())
	if err != nil {
		h.log.Warn("calendar watchlist read failed", applogger.Error(err))
	} else {
		for _, e := range entries {
			tickers = append(tickers, e.Ticker)
		}
	}
	return xhttp.SuccessResponse(c, h.calendar.Build(tickers))
}

func (h *FeaturesHandler) TimeMachine(c echo.Context) error {
	defer h.observe("time_machine", time.Now())
	req := &models.TimeMachineRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	req.Ticker = normalizeTicker(req.Ticker)

	result, err := h.timeMachine.Compute(c.Request().Context(), *req)
	if err != nil {
		if errors.Is(err, usecase.ErrPriceNotFound) {
			return xhttp.AppErrorResponse(c,
				xhttp.NotFoundErrorf("no trading data for %s around %s", req.Ticker, req.Date))
		}
		metrics.AdvisoryErrors.WithLabelValues("time_machine").Inc()
		h.log.Error("time machine error",
			applogger.String("ticker", req.Ticker), applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, result)
}

func (h *FeaturesHandler) observe(endpoint string, start time.Time) {
	metrics.AdvisoryLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
