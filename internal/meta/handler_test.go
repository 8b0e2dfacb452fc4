package meta_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/changhyeonkim/sales-crm/internal/meta"
	"github.com/changhyeonkim/sales-crm/internal/shared/middleware"
	"github.com/changhyeonkim/sales-crm/internal/shared/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (s stubPinger) HealthCheck(context.Context) error {
	return s.err
}

func setupRouter(p meta.Pinger) *gin.Engine {
	handler := meta.NewHandler(testutil.NewTestConfig(), p)

	router := testutil.SetupTestRouter()
	router.Use(middleware.Metrics())
	router.GET("/health", handler.Health)
	router.GET("/metrics", handler.Metrics)
	return router
}

func TestHealth_Up(t *testing.T) {
	router := setupRouter(stubPinger{})

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/health"})

	require.Equal(t, http.StatusOK, recorder.Code)
	var body map[string]any
	testutil.ParseResponse(t, recorder, &body)
	assert.Equal(t, "healthy", body["status"])
}

func TestHealth_DatabaseDown(t *testing.T) {
	router := setupRouter(stubPinger{err: errors.New("database is locked")})

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/health"})

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "database is locked")
}

func TestMetrics_ExposesRequestCounters(t *testing.T) {
	// Given: One request went through the metrics middleware
	router := setupRouter(stubPinger{})
	testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/health"})

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/metrics"})

	// Then
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `http_requests_total{method="GET",path="/health",status_code="200"}`)
}
