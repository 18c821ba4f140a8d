package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/peadardefaoite/flights/config"
	"github.com/peadardefaoite/flights/journeys"
	"github.com/peadardefaoite/flights/metrics"
	"github.com/peadardefaoite/flights/ryanair"
	"github.com/peadardefaoite/flights/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	collector := metrics.NewCollector()

	clientOpts := []ryanair.ClientOption{
		ryanair.WithBaseUrl(cfg.RyanairBaseURL),
		ryanair.WithHttpClient(&http.Client{Timeout: cfg.UpstreamTimeout}),
		ryanair.WithLogger(logger),
		ryanair.WithMetrics(collector),
	}
	if cfg.UpstreamRPS > 0 {
		clientOpts = append(clientOpts, ryanair.WithRateLimiter(rate.NewLimiter(rate.Limit(cfg.UpstreamRPS), 1)))
	}

	client := ryanair.NewClient(clientOpts...)

	search := journeys.NewSearch(
		client,
		journeys.WithOperator(cfg.Operator),
		journeys.WithMinConnectionTime(cfg.MinConnectionTime),
		journeys.WithLogger(logger),
	)

	e := echo.New()
	e.HideBanner = true
	e.Use(
		web.RequestIDMiddleware(),
		web.ErrorLogAndMaskMiddleware(logger),
	)

	handler := web.NewInterconnectionsHandler(search, collector)
	e.GET("/api/v1/interconnections", handler.Interconnections)
	e.GET("/health", web.Health)
	e.GET("/metrics", echo.WrapHandler(collector.Handler()))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", slog.Int("port", cfg.HTTPPort))

		if err := e.Start(fmt.Sprintf(":%d", cfg.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
