package api

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"StockPilot/internal/domain/models"
	"StockPilot/internal/service/metrics"
	"StockPilot/internal/usecase"
	xhttp "StockPilot/pkg/http"
	applogger "StockPilot/pkg/logger"
)

const defaultHistoryLimit = 20

// ConsultHandler serves the advisory endpoints: consultation, persisted
// history, recommendations and the chat guide.
type ConsultHandler struct {
	advisor *usecase.Advisor
	scanner *usecase.Scanner
	chat    *usecase.ChatGuide
	log     *applogger.Logger
}

func NewConsultHandler(advisor *usecase.Advisor, scanner *usecase.Scanner,
	chat *usecase.ChatGuide, log *applogger.Logger) *ConsultHandler {
	metrics.Register()
	return &ConsultHandler{advisor: advisor, scanner: scanner, chat: chat, log: log}
}

func (h *ConsultHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/consult/:ticker", h.Consult)
	g.GET("/consult/:ticker/history", h.History)
	g.GET("/recommendations", h.Recommendations)
	g.POST("/chat/guide", h.ChatGuide)
}

func (h *ConsultHandler) Consult(c echo.Context) error {
	defer h.observe("consult", time.Now())
	ticker := tickerParam(c)
	if ticker == "" {
		return xhttp.BadRequestResponse(c, "ticker required")
	}
	return xhttp.SuccessResponse(c, h.advisor.Consult(c.Request().Context(), ticker))
}

func (h *ConsultHandler) History(c echo.Context) error {
	defer h.observe("consult_history", time.Now())
	ticker := tickerParam(c)
	if ticker == "" {
		return xhttp.BadRequestResponse(c, "ticker required")
	}

	limit := xhttp.ParseIntDefault(strings.TrimSpace(c.QueryParam("limit")), defaultHistoryLimit)
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	history, err := h.advisor.History(c.Request().Context(), ticker, limit)
	if err != nil {
		metrics.AdvisoryErrors.WithLabelValues("consult_history").Inc()
		h.log.Error("advice history error",
			applogger.String("ticker", ticker), applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if history == nil {
		history = []models.AdviceSnapshot{}
	}
	return xhttp.SuccessResponse(c, history)
}

func (h *ConsultHandler) Recommendations(c echo.Context) error {
	defer h.observe("recommendations", time.Now())
	return xhttp.SuccessResponse(c, h.scanner.Recommendations(c.Request().Context()))
}

func (h *ConsultHandler) ChatGuide(c echo.Context) error {
	defer h.observe("chat_guide", time.Now())
	req := &models.ChatRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.chat.Reply(c.Request().Context(), *req))
}

func (h *ConsultHandler) observe(endpoint string, start time.Time) {
	metrics.AdvisoryLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
