package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"StockPilot/internal/domain/repository"
	internalrepo "StockPilot/internal/repository"
	"StockPilot/internal/scheduler"
	"StockPilot/pkg/config"
	xhttp "StockPilot/pkg/http"
	pkgkafka "StockPilot/pkg/kafka"
	applogger "StockPilot/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Components bundles everything the app owns: route handlers plus the
// shutdown-ordered backends. Scheduler, AdviceStore and Producer may be nil
// when the corresponding backend is disabled.
type Components struct {
	Handlers    []xhttp.Handler
	Scheduler   *scheduler.Scheduler
	SQLite      *internalrepo.SQLiteStore
	AdviceStore repository.AdviceStore
	Producer    *pkgkafka.Producer
}

// multiHandler registers every handler's routes on one Echo instance.
type multiHandler []xhttp.Handler

func (m multiHandler) RegisterRoutes(e *echo.Echo) {
	for _, h := range m {
		if h != nil {
			h.RegisterRoutes(e)
		}
	}
}

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	components Components
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, log *applogger.Logger, c Components) *App {
	return &App{
		cfg:        cfg,
		log:        log,
		components: c,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	}
	if a.cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(a.log, time.Second))
	}
	a.httpServer = xhttp.NewServer(multiHandler(a.components.Handlers), opts...)

	if a.components.Scheduler != nil {
		a.components.Scheduler.Start()
		a.log.Info("scheduler started", applogger.String("spec", a.cfg.Scheduler.WarmupSpec))
	}

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("server started",
		applogger.String("env", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
	)

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services: inbound traffic first, then the
// backends that outstanding requests may still touch.
func (a *App) shutdown() error {
	if a.components.Scheduler != nil {
		a.components.Scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if a.components.AdviceStore != nil {
		if err := a.components.AdviceStore.Close(); err != nil {
			a.log.Warn("advice store close error", applogger.Error(err))
		}
	}
	if a.components.Producer != nil {
		if err := a.components.Producer.Close(); err != nil {
			a.log.Warn("kafka producer close error", applogger.Error(err))
		}
	}
	if a.components.SQLite != nil {
		if err := a.components.SQLite.Close(); err != nil {
			a.log.Warn("sqlite close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
