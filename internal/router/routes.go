package router

import (
	"github.com/changhyeonkim/sales-crm/internal/auth"
	"github.com/changhyeonkim/sales-crm/internal/config"
	"github.com/changhyeonkim/sales-crm/internal/customer"
	"github.com/changhyeonkim/sales-crm/internal/meta"
	"github.com/changhyeonkim/sales-crm/internal/shared/database"
	"github.com/changhyeonkim/sales-crm/internal/shared/middleware"
	"github.com/changhyeonkim/sales-crm/internal/shared/token"
	"github.com/changhyeonkim/sales-crm/internal/user"
	"github.com/changhyeonkim/sales-crm/internal/web"
	"github.com/gin-gonic/gin"
)

// Setup configures all application-specific routes using dependency injection
func Setup(router *gin.Engine, cfg *config.Config, db *database.DB) {
	// Meta handler (health check, metrics)
	metaHandler := meta.NewHandler(cfg, db)
	router.GET("/health", metaHandler.Health)
	router.GET("/metrics", metaHandler.Metrics)

	// repository
	userRepository := user.NewUserRepository()
	customerRepository := customer.NewCustomerRepository()

	// shared services
	tokenManager := token.NewJWTManager(cfg)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)

	// service
	authService := auth.NewAuthService(db.DB, userRepository, tokenManager)
	userService := user.NewUserService(db.DB, userRepository)
	customerService := customer.NewCustomerService(db.DB, customerRepository, cfg.Customer)

	// handler
	authHandler := auth.NewAuthHandler(authService, auth.NewSessionCookie(cfg.JWT))
	userHandler := user.NewUserHandler(userService)
	customerHandler := customer.NewCustomerHandler(customerService)
	webHandler := web.NewWebHandler(authService, customerService, customerHandler, cfg)

	// API v1 routes
	authV1 := router.Group("/api/v1/auth")
	authV1.Use(rateLimiter.Middleware())
	{
		authV1.POST("/signup", authHandler.Signup)
		authV1.POST("/login", authHandler.Login)
	}
	router.POST("/api/v1/auth/logout", authHandler.Logout)

	userV1 := router.Group("/api/v1/users")
	userV1.Use(middleware.JWT(tokenManager, cfg.JWT.CookieName))
	{
		userV1.GET("/me", userHandler.GetProfile)
	}

	customerV1 := router.Group("/api/v1/customers")
	customerV1.Use(middleware.JWT(tokenManager, cfg.JWT.CookieName))
	{
		customerV1.POST("", customerHandler.Create)
		customerV1.GET("", customerHandler.List)
		customerV1.POST("/import", customerHandler.Import)
		customerV1.GET("/export", customerHandler.Export)
		customerV1.GET("/:id", customerHandler.Get)
		customerV1.PUT("/:id", customerHandler.Update)
		customerV1.DELETE("/:id", customerHandler.Delete)
	}

	// Browser pages
	router.SetHTMLTemplate(web.Templates())

	router.GET("/login", webHandler.LoginPage)
	router.GET("/signup", webHandler.SignupPage)
	router.POST("/logout", webHandler.Logout)

	credentials := router.Group("")
	credentials.Use(rateLimiter.Middleware())
	{
		credentials.POST("/login", webHandler.Login)
		credentials.POST("/signup", webHandler.Signup)
	}

	pages := router.Group("")
	pages.Use(middleware.WebSession(tokenManager, cfg.JWT.CookieName))
	{
		pages.GET("/", webHandler.Index)
		pages.GET("/customers", webHandler.List)
		pages.POST("/customers", webHandler.Create)
		pages.POST("/customers/import", webHandler.Import)
		pages.GET("/customers/export", webHandler.Export)
		pages.GET("/customers/:id/edit", webHandler.Edit)
		pages.POST("/customers/:id", webHandler.Update)
		pages.POST("/customers/:id/delete", webHandler.Delete)
	}
}
