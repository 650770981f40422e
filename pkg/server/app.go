package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"StockDash/internal/domain/repository"
	"StockDash/internal/handler/api"
	"StockDash/internal/usecase"
	"StockDash/pkg/config"
	xhttp "StockDash/pkg/http"
	applogger "StockDash/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	source     repository.TableSource
	dash       *usecase.Dashboard
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, source repository.TableSource, dash *usecase.Dashboard) *App {
	return &App{cfg: cfg, source: source, dash: dash}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l, err := applogger.New(&applogger.Config{
		Level:  a.cfg.Log.Level,
		Format: a.cfg.Log.Format,
		Output: a.cfg.Log.Output,
	})
	if err != nil {
		return err
	}

	// Warm the memoized load so the first request is served from cache.
	// A load failure is user-visible per request, not fatal at startup:
	// the file may be fixed or replaced without a restart.
	if table, err := a.source.Load(ctx); err != nil {
		l.Error("initial data load failed", applogger.Error(err),
			applogger.String("file", a.cfg.Data.File))
	} else {
		l.Info("data loaded", applogger.String("file", a.cfg.Data.File),
			applogger.Int("rows", len(table)))
	}

	handler := api.NewDashboardEchoHandler(l, a.dash)
	a.httpServer = xhttp.NewServer(handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(l),
	)

	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}
	l.Info("dashboard api started", applogger.Int("port", a.cfg.Server.Port))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")

	shutdownCtx, cancelShutdown := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
		return err
	}

	l.Info("shutdown complete")
	return nil
}
