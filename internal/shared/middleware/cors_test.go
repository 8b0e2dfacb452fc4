package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/changhyeonkim/sales-crm/internal/config"
	"github.com/changhyeonkim/sales-crm/internal/shared/middleware"
	"github.com/changhyeonkim/sales-crm/internal/shared/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func preflight(cfg config.CORSConfig, origin string) *httptest.ResponseRecorder {
	router := testutil.SetupTestRouter()
	router.Use(middleware.CORS(cfg))
	router.GET("/api/v1/customers", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/customers", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestCORS_WildcardOriginDoesNotShareCookie(t *testing.T) {
	// Given
	cfg := testutil.NewTestConfig().CORS

	// When
	recorder := preflight(cfg, "http://app.example")

	// Then
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, strings.ToLower(recorder.Header().Get("Access-Control-Allow-Headers")), "authorization")
}

func TestCORS_ExplicitOriginSharesCookie(t *testing.T) {
	// Given
	cfg := testutil.NewTestConfig().CORS
	cfg.AllowedOrigins = []string{"http://app.example"}

	// When
	allowed := preflight(cfg, "http://app.example")
	denied := preflight(cfg, "http://evil.example")

	// Then
	assert.Equal(t, http.StatusNoContent, allowed.Code)
	assert.Equal(t, "http://app.example", allowed.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", allowed.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, http.StatusForbidden, denied.Code)
}
