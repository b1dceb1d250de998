package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/inkpost/blog-bff/internal/api/handler"
	"github.com/inkpost/blog-bff/internal/api/middleware"
	"github.com/inkpost/blog-bff/internal/core/ports"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb is nil when the memory session backend is in use.
func NewRouter(
	orch ports.Orchestrator,
	auth ports.AuthService,
	upstream handler.Pinger,
	rdb *redis.Client,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("bff_http"))
	e.Use(middleware.Token())

	// --- Auth routes (session issuance, adjacent to the operation catalog) ---
	authHandler := handler.NewAuthHandler(auth)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Operation catalog ---
	opHandler := handler.NewOperationHandler(orch)
	e.POST("/v1/operations/:operation", opHandler.Execute)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(upstream, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
