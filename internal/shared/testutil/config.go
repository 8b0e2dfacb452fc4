package testutil

import (
	"time"

	"github.com/changhyeonkim/sales-crm/internal/config"
)

// NewTestConfig creates a test configuration
// This removes the need for environment variables during testing
func NewTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name: "sales-crm-test",
			Env:  "test",
			Port: 8080,
		},
		Database: config.DatabaseConfig{
			Path:            ":memory:",
			MaxIdleConns:    1,
			MaxOpenConns:    1,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 10 * time.Minute,
			BusyTimeout:     time.Second,
			IsAutoMigrate:   true,
		},
		JWT: config.JWTConfig{
			Secret:        "test-jwt-secret-key-must-be-at-least-32-characters-long",
			Expiry:        24 * time.Hour,
			RefreshExpiry: 168 * time.Hour,
			CookieName:    "crm_session",
		},
		CORS: config.CORSConfig{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           86400,
		},
		Server: config.ServerConfig{
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			GracefulTimeout: 30 * time.Second,
		},
		RateLimit: config.RateLimitConfig{
			Enabled: false,
			RPS:     1,
			Burst:   5,
		},
		Customer: config.CustomerConfig{
			ImportMaxBytes: 1 << 20,
			PageSize:       50,
			MaxPageSize:    200,
		},
	}
}
