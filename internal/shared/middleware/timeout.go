package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	sharedError "github.com/changhyeonkim/sales-crm/internal/shared/error"

	"github.com/gin-gonic/gin"
)

const DefaultTimeout = 30 * time.Second

// Timeout bounds the request context. Handlers and gorm observe the deadline;
// when it fires before anything was written a 503 is sent.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}

		slog.Warn("Request deadline exceeded",
			"request_id", GetRequestID(c),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"timeout", timeout.String(),
			"status", c.Writer.Status(),
		)

		if !c.Writer.Written() {
			resp := sharedError.InternalServerError
			resp.Status = http.StatusServiceUnavailable
			resp.Message = "요청 처리 시간이 초과되었습니다."
			c.AbortWithStatusJSON(resp.Status, resp)
		}
	}
}

// IsTimeout reports whether the request deadline has passed
func IsTimeout(c *gin.Context) bool {
	return errors.Is(c.Request.Context().Err(), context.DeadlineExceeded)
}
