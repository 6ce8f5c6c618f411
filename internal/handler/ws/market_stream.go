package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"StockPilot/internal/service/marketdata"
	applogger "StockPilot/pkg/logger"
)

const writeTimeout = 10 * time.Second

// MarketStream pushes the market summary to connected clients on a fixed
// interval. One goroutine per connection; a failed write closes it.
type MarketStream struct {
	fetcher  *marketdata.Fetcher
	interval time.Duration
	upgrader websocket.Upgrader
	log      *applogger.Logger
}

func NewMarketStream(fetcher *marketdata.Fetcher, interval time.Duration, log *applogger.Logger) *MarketStream {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &MarketStream{
		fetcher:  fetcher,
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The API is already CORS-open; the stream follows suit.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log,
	}
}

func (s *MarketStream) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/market", s.Serve)
}

// Serve upgrades the connection and pushes until the client goes away. It
// blocks for the lifetime of the connection: net/http cancels the request
// context as soon as the handler returns, upgraded or not, so the loop
// cannot be handed off to a goroutine keyed on that context.
func (s *MarketStream) Serve(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	s.log.Info("market stream client connected",
		applogger.String("remote", conn.RemoteAddr().String()))

	s.push(conn)
	return nil
}

func (s *MarketStream) push(conn *websocket.Conn) {
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Read pump: drains incoming frames so close messages are processed,
	// and signals when the peer is gone.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// First snapshot immediately, then on every tick.
	for {
		summary := s.fetcher.Summary(ctx)
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(summary); err != nil {
			s.log.Debug("market stream client gone",
				applogger.String("remote", conn.RemoteAddr().String()),
				applogger.Error(err))
			return
		}

		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}
