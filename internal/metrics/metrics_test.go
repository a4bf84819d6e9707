package metrics_test

import (
	"testing"

	"github.com/UnknownOlympus/ecefconv/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	m.Conversions.WithLabelValues("geo2ecef", "success").Inc()
	m.ParseErrors.WithLabelValues("latitude", "out_of_range").Add(2)
	m.LatitudeIterations.Observe(4)
	m.RateLimitedRequests.Inc()

	assert.InDelta(t, 1.0, testutil.ToFloat64(m.Conversions.WithLabelValues("geo2ecef", "success")), 0)
	assert.InDelta(t, 2.0, testutil.ToFloat64(m.ParseErrors.WithLabelValues("latitude", "out_of_range")), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.RateLimitedRequests), 0)

	count, err := testutil.GatherAndCount(reg, "ecefconv_latitude_iterations")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.NewMetrics(reg)

	assert.Panics(t, func() {
		metrics.NewMetrics(reg)
	})
}

func TestNormalizeRoute(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/healthz", "/healthz"},
		{"/readyz", "/readyz"},
		{"/metrics", "/metrics"},
		{"/api/v1/convert", "/api/v1/convert"},
		{"/api/v1/validate", "/api/v1/validate"},
		{"/api/v1/examples", "/api/v1/examples"},
		{"/wp-admin", "other"},
		{"/api/v2/convert", "other"},
		{"/", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, metrics.NormalizeRoute(tt.path))
		})
	}
}
