package api_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/UnknownOlympus/ecefconv/internal/api"
	"github.com/UnknownOlympus/ecefconv/internal/metrics"
	"github.com/UnknownOlympus/ecefconv/internal/models"
	"github.com/UnknownOlympus/ecefconv/internal/service"
	"github.com/UnknownOlympus/ecefconv/test/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func testOptions() api.Options {
	return api.Options{
		Addr:         ":0",
		RateLimit:    1000,
		RateBurst:    1000,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}
}

// newTestServer wires the API to a real converter.
func newTestServer(t *testing.T, opts api.Options) (http.Handler, *metrics.Metrics) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	converter := service.NewConverter(testLogger(), m)
	return api.NewServer(opts, testLogger(), converter, m, reg).Handler(), m
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestConvertEndpoint(t *testing.T) {
	h, m := newTestServer(t, testOptions())

	t.Run("geodetic to ecef", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/v1/convert",
			`{"direction":"geo2ecef","input":["15°13'12.1252\"N","100 12 12.3256 E","5.202"]}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{
			"direction": "geo2ecef",
			"output": ["-1090468.6995", "6058492.9718", "1663606.5484"],
			"joined": "-1090468.6995,6058492.9718,1663606.5484"
		}`, w.Body.String())
	})

	t.Run("ecef to geodetic", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/v1/convert",
			`{"direction":"ecef2geo","input":["-1070053.3249","6068573.9676","1640100.7872"]}`)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeBody(t, w)
		assert.Equal(t, []any{"15.00000000", "100.00000000", "2.5000"}, resp["output"])
		assert.Equal(t, "15.00000000,100.00000000,2.5000", resp["joined"])
		assert.NotZero(t, resp["iterations"])
	})

	t.Run("parse error", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/v1/convert",
			`{"direction":"geo2ecef","input":["95N","100E","0"]}`)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeBody(t, w)
		assert.Equal(t, "latitude", resp["field"])
		assert.Equal(t, "out_of_range", resp["kind"])
		assert.Equal(t, `invalid latitude "95N": value out of range: latitude must be within ±90°`, resp["error"])
	})

	badRequests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"direction":`},
		{"unknown direction", `{"direction":"sideways","input":["1","2","3"]}`},
		{"missing direction", `{"input":["1","2","3"]}`},
		{"too few fields", `{"direction":"ecef2geo","input":["1","2"]}`},
		{"too many fields", `{"direction":"ecef2geo","input":["1","2","3","4"]}`},
		{"unknown property", `{"direction":"ecef2geo","input":["1","2","3"],"datum":"NAD27"}`},
	}
	for _, tt := range badRequests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/api/v1/convert", tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, decodeBody(t, w)["error"])
		})
	}

	t.Run("wrong method", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/v1/convert", "")

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("requests are counted", func(t *testing.T) {
		ok := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/api/v1/convert", http.MethodPost, "200"))
		assert.InDelta(t, 2.0, ok, 0)
	})
}

func TestValidateEndpoint(t *testing.T) {
	h, _ := newTestServer(t, testOptions())

	t.Run("all failing fields are reported", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/v1/validate",
			`{"direction":"geo2ecef","input":["95N","","5 m"]}`)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Valid  bool `json:"valid"`
			Errors []struct {
				Field string `json:"field"`
				Kind  string `json:"kind"`
			} `json:"errors"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.False(t, resp.Valid)
		require.Len(t, resp.Errors, 3)
		assert.Equal(t, "latitude", resp.Errors[0].Field)
		assert.Equal(t, "out_of_range", resp.Errors[0].Kind)
		assert.Equal(t, "longitude", resp.Errors[1].Field)
		assert.Equal(t, "empty_field", resp.Errors[1].Kind)
		assert.Equal(t, "height", resp.Errors[2].Field)
		assert.Equal(t, "numeric_parse", resp.Errors[2].Kind)
	})

	t.Run("valid input", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/v1/validate",
			`{"direction":"ecef2geo","input":["1","2","3"]}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"valid":true}`, w.Body.String())
	})

	t.Run("missing direction", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/v1/validate", `{"input":["1","2","3"]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestExamplesEndpoint(t *testing.T) {
	h, _ := newTestServer(t, testOptions())

	w := do(t, h, http.MethodGet, "/api/v1/examples", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Geodetic [3]string `json:"geodetic"`
		ECEF     [3]string `json:"ecef"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, models.ExampleGeodeticInput, resp.Geodetic)
	assert.Equal(t, models.ExampleECEFInput, resp.ECEF)
}

func TestProbesAndMetrics(t *testing.T) {
	h, _ := newTestServer(t, testOptions())

	tests := []struct {
		path string
		body string
	}{
		{"/healthz", "ok\n"},
		{"/readyz", "ready\n"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(t, h, http.MethodGet, tt.path, "")

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
		})
	}

	t.Run("/metrics", func(t *testing.T) {
		do(t, h, http.MethodGet, "/healthz", "")
		w := do(t, h, http.MethodGet, "/metrics", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `ecefconv_http_requests_total{code="200",method="GET",route="/healthz"}`)
	})
}

func TestRateLimit(t *testing.T) {
	opts := testOptions()
	opts.RateLimit = 0.001
	opts.RateBurst = 1
	h, m := newTestServer(t, opts)
	body := `{"direction":"ecef2geo","input":["1","2","3"]}`

	first := do(t, h, http.MethodPost, "/api/v1/convert", body)
	second := do(t, h, http.MethodPost, "/api/v1/convert", body)
	probe := do(t, h, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
	assert.Equal(t, http.StatusOK, probe.Code)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.RateLimitedRequests), 0)
}

func TestConvertEndpoint_WithMockConverter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	t.Run("request fields are passed through in order", func(t *testing.T) {
		converter := mocks.NewConverter(t)
		h := api.NewServer(testOptions(), testLogger(), converter, m, reg).Handler()
		want := service.Request{Direction: models.ECEF2Geo, Input: [3]string{"x", "y", "z"}}

		converter.On("Convert", mock.Anything, want).
			Return(service.Result{Direction: models.ECEF2Geo, Output: [3]string{"1", "2", "3"}}, nil).
			Once()

		w := do(t, h, http.MethodPost, "/api/v1/convert", `{"direction":"ecef2geo","input":["x","y","z"]}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1,2,3", decodeBody(t, w)["joined"])
	})

	t.Run("unexpected error is hidden", func(t *testing.T) {
		converter := mocks.NewConverter(t)
		h := api.NewServer(testOptions(), testLogger(), converter, m, reg).Handler()

		converter.On("Convert", mock.Anything, mock.AnythingOfType("service.Request")).
			Return(service.Result{}, assert.AnError).
			Once()

		w := do(t, h, http.MethodPost, "/api/v1/convert", `{"direction":"geo2ecef","input":["1","2","3"]}`)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal error", decodeBody(t, w)["error"])
	})
}
