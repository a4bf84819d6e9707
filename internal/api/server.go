package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/UnknownOlympus/ecefconv/internal/metrics"
	"github.com/UnknownOlympus/ecefconv/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Converter is the conversion pipeline served by the API.
type Converter interface {
	Convert(ctx context.Context, req service.Request) (service.Result, error)
	Validate(ctx context.Context, req service.Request) error
}

// Options configures the HTTP server.
type Options struct {
	Addr         string        // Listen address, e.g. ":8080".
	RateLimit    float64       // Sustained API requests per second.
	RateBurst    int           // Token bucket size.
	ReadTimeout  time.Duration // Maximum duration for reading a request.
	WriteTimeout time.Duration // Maximum duration before timing out writes of the response.
}

// Server holds the HTTP server and its dependencies.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates a configured HTTP server exposing the conversion API, health probes
// and the Prometheus metrics gathered from gatherer.
func NewServer(
	opts Options,
	logger *slog.Logger,
	converter Converter,
	appMetrics *metrics.Metrics,
	gatherer prometheus.Gatherer,
) *Server {
	h := &handler{log: logger, converter: converter}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", healthz)
	mux.HandleFunc("GET /readyz", readyz)
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("POST /api/v1/convert", h.convert)
	mux.HandleFunc("POST /api/v1/validate", h.validate)
	mux.HandleFunc("GET /api/v1/examples", h.examples)

	// Build middleware chain: metrics -> logging -> rate limit -> mux.
	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateBurst)
	var chain http.Handler = mux
	chain = rateLimitMiddleware(limiter, appMetrics)(chain)
	chain = loggingMiddleware(logger)(chain)
	chain = metricsMiddleware(appMetrics)(chain)

	return &Server{
		httpServer: &http.Server{
			Addr:              opts.Addr,
			Handler:           chain,
			ReadTimeout:       opts.ReadTimeout,
			ReadHeaderTimeout: opts.ReadTimeout,
			WriteTimeout:      opts.WriteTimeout,
			IdleTimeout:       120 * time.Second,
		},
		logger: logger,
	}
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.logger.Info("Starting HTTP server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// healthz returns 200 "ok\n" unconditionally.
func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// readyz returns 200 "ready\n". The converter has no external dependencies, so it is ready once serving.
func readyz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready\n"))
}
