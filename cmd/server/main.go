package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/UnknownOlympus/ecefconv/internal/api"
	"github.com/UnknownOlympus/ecefconv/internal/config"
	"github.com/UnknownOlympus/ecefconv/internal/logger"
	"github.com/UnknownOlympus/ecefconv/internal/metrics"
	"github.com/UnknownOlympus/ecefconv/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// main is the entry point of the conversion server.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	log := logger.Setup(cfg.Env, os.Stdout)

	// Create a separate registry for metrics.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	converter := service.NewConverter(log, appMetrics)

	srv := api.NewServer(api.Options{
		Addr:         cfg.Addr(),
		RateLimit:    cfg.RateLimit,
		RateBurst:    cfg.RateBurst,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, log, converter, appMetrics, reg)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	log.InfoContext(ctx, "Application started. Press Ctrl+C to stop.", "addr", cfg.Addr())

	// Wait for a shutdown signal or a listener failure.
	select {
	case <-ctx.Done():
		log.InfoContext(ctx, "Shutdown signal received. Stopping application...")
	case err := <-serverErr:
		log.Error("HTTP server failed", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
		return
	}

	log.Info("Application stopped gracefully.")
}
