package bootstrap

import (
	"io"
	"net/http"

	"github.com/changhyeonkim/sales-crm/internal/config"
	sharedError "github.com/changhyeonkim/sales-crm/internal/shared/error"
	"github.com/changhyeonkim/sales-crm/internal/shared/logger"
	"github.com/changhyeonkim/sales-crm/internal/shared/middleware"
	"github.com/gin-gonic/gin"
)

// Bootstrap handles common server setup
type Bootstrap struct {
	cfg *config.Config
}

// NewBootstrap creates a new bootstrap instance
func NewBootstrap(cfg *config.Config) *Bootstrap {
	return &Bootstrap{
		cfg: cfg,
	}
}

// SetupEngine creates and configures a gin engine with common middleware
func (b *Bootstrap) SetupEngine() *gin.Engine {
	// Set Gin mode based on environment
	switch {
	case b.cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case b.cfg.App.Env == "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	// Disable Gin's default logger (using slog)
	gin.DefaultWriter = io.Discard
	gin.DefaultErrorWriter = io.Discard

	// Create engine without default middleware
	engine := gin.New()

	// multipart parts above this spill to temp files
	engine.MaxMultipartMemory = b.cfg.Customer.ImportMaxBytes

	// Order matters: metrics see the final status, the logger sees the request id
	engine.Use(gin.CustomRecovery(b.recoveryHandler))
	engine.Use(middleware.Metrics())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORS(b.cfg.CORS))
	engine.Use(middleware.Timeout(middleware.DefaultTimeout))
	engine.Use(middleware.LoggerMiddleware())

	return engine
}

// recoveryHandler handles panics
func (b *Bootstrap) recoveryHandler(c *gin.Context, recovered any) {
	logger.FromContext(c.Request.Context()).Error("Panic Recovered",
		"error", recovered,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"request_id", middleware.GetRequestID(c),
	)

	resp := sharedError.InternalServerError
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"status":     resp.Status,
		"code":       resp.Code,
		"message":    resp.Message,
		"request_id": middleware.GetRequestID(c),
	})
}
