package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/randomtoy/temple-go/internal/adapters/history"
	httpadapter "github.com/randomtoy/temple-go/internal/adapters/http"
	"github.com/randomtoy/temple-go/internal/adapters/offerings"
	"github.com/randomtoy/temple-go/internal/adapters/readings"
	"github.com/randomtoy/temple-go/internal/adapters/templeapi"
	"github.com/randomtoy/temple-go/internal/app"
	"github.com/randomtoy/temple-go/internal/config"
	"github.com/randomtoy/temple-go/internal/ports"
	"github.com/randomtoy/temple-go/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("templed exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, "templed", cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error("flush traces", "error", err)
		}
	}()

	var store ports.ReadingStore
	if cfg.RedisAddr != "" {
		rs, err := readings.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.ReadingTTL)
		if err != nil {
			return err
		}
		defer rs.Close()
		store = rs
		logger.Info("readings stored in redis", "addr", cfg.RedisAddr)
	} else {
		store = readings.NewMemoryStore(cfg.ReadingTTL)
	}

	hist, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return err
	}
	defer hist.Close()

	oracle := templeapi.NewClient(
		&http.Client{Timeout: cfg.APITimeout},
		cfg.APIURL,
		logger,
	)

	svc := app.NewTempleService(oracle, store, hist, offerings.NewEmbeddedCatalog(), logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LocaleMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	httpadapter.NewHandler(svc).Register(e)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", "addr", cfg.HTTPAddr, "api_url", cfg.APIURL)
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
