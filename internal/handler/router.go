package handler

import (
	"devtinder-api/internal/middleware"
	"devtinder-api/internal/store"
	"devtinder-api/pkg/config"
	"devtinder-api/pkg/logger"
	"devtinder-api/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// NewRouter wires middleware and routes onto an Echo instance. The user
// store is injected so tests can run against the in-memory one.
func NewRouter(users store.UserStore, cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestID)
	e.Use(logger.Middleware(logger.GetLogger()))
	e.Use(prometheus.MetricsMiddleware())

	authHandler := NewAuthHandler(users, cfg)
	userHandler := NewUserHandler(users)
	requireAuth := middleware.Auth(users, []byte(cfg.JWT.Secret))

	// Public routes - no authentication required
	e.GET("/", Welcome)
	e.GET("/health", HealthCheck)
	e.GET("/metrics", MetricsHandler)

	auth := e.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, requireAuth)

	// Authenticated routes
	user := e.Group("/user", requireAuth)
	user.GET("/profile", userHandler.Profile)
	user.PATCH("/:id", userHandler.Update)
	user.DELETE("", userHandler.Delete)

	e.GET("/feed", userHandler.Feed, requireAuth)

	return e
}
