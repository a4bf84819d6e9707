package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the Prometheus collectors of the converter and its HTTP API.
type Metrics struct {
	Conversions         *prometheus.CounterVec
	ConversionSeconds   *prometheus.HistogramVec
	ParseErrors         *prometheus.CounterVec
	LatitudeIterations  prometheus.Histogram
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestSeconds  *prometheus.HistogramVec
	RateLimitedRequests prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Conversions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "ecefconv_conversions_total",
			Help: "Total number of conversion requests by direction and outcome.",
		}, []string{"direction", "status"}),
		ConversionSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ecefconv_conversion_duration_seconds",
			Help:    "Duration of parsing and transforming a single conversion request.",
			Buckets: prometheus.ExponentialBuckets(1e-7, 4, 10),
		}, []string{"direction"}),
		ParseErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "ecefconv_parse_errors_total",
			Help: "Total number of rejected input fields by field and failure kind.",
		}, []string{"field", "kind"}),
		LatitudeIterations: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "ecefconv_latitude_iterations",
			Help:    "Number of latitude refinement steps taken by ECEF to geodetic conversions.",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 8, 10, 20, 50, 100},
		}),
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "ecefconv_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"route", "method", "code"}),
		HTTPRequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ecefconv_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		RateLimitedRequests: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "ecefconv_http_rate_limited_total",
			Help: "Total number of HTTP requests rejected by the rate limiter.",
		}),
	}
}

// Known API routes. Anything else is collapsed into "other" to keep label cardinality bounded.
var knownRoutes = map[string]struct{}{
	"/healthz":         {},
	"/readyz":          {},
	"/metrics":         {},
	"/api/v1/convert":  {},
	"/api/v1/validate": {},
	"/api/v1/examples": {},
}

// NormalizeRoute maps a request path to a bounded route label.
func NormalizeRoute(path string) string {
	if _, ok := knownRoutes[path]; ok {
		return path
	}
	return "other"
}
