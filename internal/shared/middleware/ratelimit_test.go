package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/changhyeonkim/sales-crm/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func limitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func post(router *gin.Engine, ip string) int {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = ip + ":40000"
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder.Code
}

func TestRateLimiter_PerClientIP(t *testing.T) {
	// Given: Two requests per bucket, effectively no refill
	rl := NewRateLimiter(config.RateLimitConfig{Enabled: true, RPS: 0.0001, Burst: 2})
	router := limitedRouter(rl)

	// When / Then
	assert.Equal(t, http.StatusNoContent, post(router, "10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, post(router, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, post(router, "10.0.0.1"))

	// another client has its own bucket
	assert.Equal(t, http.StatusNoContent, post(router, "10.0.0.2"))
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{Enabled: false, RPS: 0.0001, Burst: 1})
	router := limitedRouter(rl)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusNoContent, post(router, "10.0.0.1"))
	}
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(config.RateLimitConfig{Enabled: true, RPS: 0.0001, Burst: 1})
	rl.now = func() time.Time { return now }

	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"))

	// idle long enough: a fresh bucket is created
	now = now.Add(limiterIdleTTL + time.Second)
	assert.True(t, rl.allow("10.0.0.2"))
	assert.Len(t, rl.limiters, 1)
	assert.True(t, rl.allow("10.0.0.1"))
}
