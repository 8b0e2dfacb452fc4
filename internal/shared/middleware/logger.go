package middleware

import (
	"log/slog"
	"strings"
	"time"

	sharedContext "github.com/changhyeonkim/sales-crm/internal/shared/context"
	"github.com/changhyeonkim/sales-crm/internal/shared/logger"
	"github.com/gin-gonic/gin"
)

// quietPaths are probed constantly; they log at debug level
var quietPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// LoggerMiddleware returns a gin middleware for structured logging with slog
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// Create logger with request_id bound
		reqLogger := slog.Default().With("request_id", GetRequestID(c))

		// Store logger in context for use in handlers/services/repositories
		c.Request = c.Request.WithContext(logger.WithLogger(c.Request.Context(), reqLogger))

		c.Next()

		status := c.Writer.Status()

		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start).String(),
			"ip", c.ClientIP(),
			"userAgent", c.Request.UserAgent(),
		}

		if raw != "" && !strings.Contains(raw, "q=") { // 검색어는 개인정보일 수 있음
			fields = append(fields, "query", raw)
		}

		if userID := c.GetString(sharedContext.UserIDKey); userID != "" {
			fields = append(fields, "user_id", userID)
		}

		if len(c.Errors) > 0 {
			fields = append(fields, "error", c.Errors.String())
		}

		msg := "Request processed"

		switch {
		case status >= 500:
			reqLogger.Error(msg, fields...)
		case status >= 400:
			reqLogger.Warn(msg, fields...)
		case quietPaths[path]:
			reqLogger.Debug(msg, fields...)
		default:
			reqLogger.Info(msg, fields...)
		}
	}
}
