//go:build unit

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"previsit-intake/internal/handler/httperr"
	"previsit-intake/internal/observability/metrics"
	"previsit-intake/internal/pkg/config"
	"previsit-intake/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(mw...)
	return engine
}

func TestRequireJSON(t *testing.T) {
	engine := newTestEngine()
	engine.POST("/echo", RequireJSON(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	tests := []struct {
		name        string
		contentType string
		want        int
	}{
		{name: "json", contentType: "application/json", want: http.StatusNoContent},
		{name: "json with charset", contentType: "application/json; charset=utf-8", want: http.StatusNoContent},
		{name: "form", contentType: "application/x-www-form-urlencoded", want: http.StatusUnsupportedMediaType},
		{name: "missing", contentType: "", want: http.StatusUnsupportedMediaType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("{}"))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestCustomRecovery(t *testing.T) {
	engine := newTestEngine(CustomRecovery())
	engine.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestErrorHandler_WritesPublicError(t *testing.T) {
	engine := newTestEngine(ErrorHandler())
	engine.GET("/deferred", func(c *gin.Context) {
		_ = c.Error(&gin.Error{
			Err:  errs.ErrBookingNotFound,
			Type: gin.ErrorTypePublic,
			Meta: httperr.NewResponse(c, http.StatusNotFound, "Booking not found", nil),
		})
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/deferred", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body httperr.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Booking not found", body.Error.Message)
}

func TestLoggingMiddleware_RequestID(t *testing.T) {
	logger := NewLogger(config.LogConfig{Level: "error", TimeZone: "UTC", TimeFormat: "2006-01-02"})
	engine := newTestEngine(logger.LoggingMiddleware())

	var seen string
	engine.GET("/ping", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusOK)
	})

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get(requestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(requestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
	})
}

func TestRequestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewHTTPMetrics(reg)
	engine := newTestEngine(RequestMetrics(m))
	engine.GET("/api/report/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/report/evt-1", nil))
	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	// one series for the matched route, one for "unmatched"
	assert.Equal(t, 2, promtest.CollectAndCount(reg, "previsit_http_requests_total"))
}
