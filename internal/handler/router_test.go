//go:build unit

package handler

import (
	"net/http"
	nethttptest "net/http/httptest"
	"testing"

	"previsit-intake/internal/handler/api"
	"previsit-intake/internal/handler/middleware"
	"previsit-intake/internal/observability/metrics"
	"previsit-intake/internal/pkg/clock"
	"previsit-intake/internal/pkg/config"
	"previsit-intake/tests/common/httptest"
	"previsit-intake/tests/common/testutil"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	engine := gin.New()
	NewRouter(engine, config.NewTestConfig(), Observability{
		Logger:   middleware.NewLogger(config.NewTestConfig().Log),
		Metrics:  metrics.NewHTTPMetrics(reg),
		Gatherer: reg,
	}, Handlers{
		Calendar: api.NewCalendarHandler(nil, nil, clock.NewRealClock()),
		PreVisit: api.NewPreVisitHandler(nil, nil, nil, nil, testutil.DiscardLogger()),
		Report:   api.NewReportHandler(nil),
		Workflow: api.NewWorkflowHandler(nil),
	})
	return engine
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.PerformRequest(t, router, http.MethodGet, "/health", nil)

	var body map[string]string
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouter_MetricsExposesHTTPCounters(t *testing.T) {
	router := newTestRouter(t)

	httptest.PerformRequest(t, router, http.MethodGet, "/health", nil)
	rec := httptest.PerformRequest(t, router, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `previsit_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestRouter_PostRequiresJSON(t *testing.T) {
	router := newTestRouter(t)

	paths := []string{
		"/api/calendar/events",
		"/api/calendar/availability/check",
		"/api/pre-visit/answer",
		"/api/pre-visit/generate-report",
		"/api/workflow/process",
	}
	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			rec := httptest.PerformRawRequest(t, router, http.MethodPost, p, "text/plain", "hello")
			httptest.AssertErrorResponse(t, rec, http.StatusUnsupportedMediaType, "application/json")
		})
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.PerformRequest(t, router, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_IncomingRequestIDIsEchoed(t *testing.T) {
	router := newTestRouter(t)

	req, err := http.NewRequest(http.MethodGet, "/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "req-123")
	rec := nethttptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}

func TestRouter_CORSPreflightAllowsConfiguredOrigin(t *testing.T) {
	router := newTestRouter(t)

	req, err := http.NewRequest(http.MethodOptions, "/api/calendar/events", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := nethttptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
