package middleware

import (
	"log/slog"
	"time"

	"github.com/changhyeonkim/sales-crm/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// apiHeaders replaces a "*" header list. Browsers never let "*" cover Authorization.
var apiHeaders = []string{"Authorization", "Content-Type", RequestIDHeader}

// CORS opens the JSON API to browser clients on other origins.
// The session cookie is only shared with origins listed explicitly.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    []string{RequestIDHeader, "Content-Disposition"}, // CSV 다운로드 파일명
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           time.Duration(cfg.MaxAge) * time.Second,
	}

	if len(corsConfig.AllowHeaders) == 0 || containsWildcard(corsConfig.AllowHeaders) {
		corsConfig.AllowHeaders = apiHeaders
	}

	if containsWildcard(corsConfig.AllowOrigins) {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowOrigins = nil
		if corsConfig.AllowCredentials {
			slog.Warn("CORS 전체 허용 상태에서는 쿠키를 공유하지 않습니다", "origins", cfg.AllowedOrigins)
			corsConfig.AllowCredentials = false
		}
	}

	return cors.New(corsConfig)
}

func containsWildcard(values []string) bool {
	for _, v := range values {
		if v == "*" {
			return true
		}
	}
	return false
}
