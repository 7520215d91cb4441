package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"contour/pkg/config"
	"contour/pkg/logger"
	"contour/pkg/metrics"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type echoHandler struct{}

func (echoHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/echo", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})
}

func testConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		Location:           time.UTC,
		RateLimitRPS:       100,
		RateLimitBurst:     100,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		RequestTimeout:     time.Second,
		MaxRequestSize:     1024,
		MetricsEnabled:     true,
		Log:                logger.Discard(),
	}
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestApplication_Routes(t *testing.T) {
	a := NewApplication(testConfig(), metrics.New("test"))
	a.SetApp(map[string]Pinger{
		"clinic_api": pingFunc(func(context.Context) error { return nil }),
	}, echoHandler{})
	h := a.Handler()

	assert.Equal(t, http.StatusOK, get(h, "/health").Code)
	assert.Equal(t, http.StatusOK, get(h, "/ready").Code)

	rec := get(h, "/api/v1/echo")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	metricsRec := get(h, "/metrics")
	require.Equal(t, http.StatusOK, metricsRec.Code)
	assert.Contains(t, metricsRec.Body.String(), `test_http_requests_total{method="GET",route="/api/v1/echo",status="200"} 1`)

	assert.Equal(t, http.StatusNotFound, get(h, "/api/v1/nowhere").Code)
}

func TestApplication_ReadyReportsFailingCheck(t *testing.T) {
	a := NewApplication(testConfig(), metrics.New("test"))
	a.SetApp(map[string]Pinger{
		"clinic_api": pingFunc(func(context.Context) error { return nil }),
		"redis":      pingFunc(func(context.Context) error { return errors.New("dial tcp: refused") }),
	}, echoHandler{})

	rec := get(a.Handler(), "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redis":"error"`)
	assert.Contains(t, rec.Body.String(), `"clinic_api":"ok"`)
}
