package meta

import (
	"context"
	"net/http"
	"time"

	"github.com/changhyeonkim/sales-crm/internal/config"
	"github.com/changhyeonkim/sales-crm/internal/shared/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const healthCheckTimeout = 5 * time.Second

// Pinger is the part of the database the health check needs
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// Handler handles meta endpoints (health check, metrics)
type Handler struct {
	cfg     *config.Config
	db      Pinger
	metrics http.Handler
}

// NewHandler creates a new meta handler
func NewHandler(cfg *config.Config, db Pinger) *Handler {
	return &Handler{
		cfg:     cfg,
		db:      db,
		metrics: promhttp.Handler(),
	}
}

// Health checks service and database health
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	service := gin.H{
		"name":        h.cfg.App.Name,
		"environment": h.cfg.App.Env,
	}
	start := time.Now()

	if err := h.db.HealthCheck(ctx); err != nil {
		logger.FromContext(ctx).Error("Health check 실패", "error", err)

		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": service,
			"checks": gin.H{
				"database": gin.H{
					"status": "down",
					"error":  err.Error(),
				},
			},
		})
		return
	}

	service["port"] = h.cfg.App.Port
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": service,
		"checks": gin.H{
			"database": gin.H{
				"status":     "up",
				"latency_ms": time.Since(start).Milliseconds(),
			},
		},
	})
}

// Metrics serves the Prometheus exposition of the default registry
func (h *Handler) Metrics(c *gin.Context) {
	h.metrics.ServeHTTP(c.Writer, c.Request)
}
