package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jtrack/tracking-system/internal/api/handler"
	"github.com/jtrack/tracking-system/internal/api/middleware"
	"github.com/jtrack/tracking-system/internal/core/mapping"
	"github.com/jtrack/tracking-system/internal/core/ports"
)

// RouterDeps bundles everything the HTTP surface needs. db, rdb, and
// authService may be nil; the corresponding routes and checks are then
// skipped or left open.
type RouterDeps struct {
	Service     ports.TrackingService
	Assembler   *mapping.Assembler
	Refresher   handler.RefreshRecorder
	AuthService ports.AuthService
	JWTSecret   string
	DB          *mongo.Database
	Redis       *redis.Client
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("tracking_http"))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Auth ---
	if deps.AuthService != nil {
		authHandler := handler.NewAuthHandler(deps.AuthService)
		e.POST("/auth/token", authHandler.Token)
	}

	// --- Tracking routes ---
	trackingHandler := handler.NewTrackingHandler(deps.Service, deps.Assembler, deps.Refresher)

	tracked := e.Group("")
	if deps.JWTSecret != "" {
		tracked.Use(middleware.Auth(deps.JWTSecret))
	}
	tracked.GET("/:carrier/v1/track/:refNum", trackingHandler.Track)
	tracked.POST("/:carrier/v1/map", trackingHandler.MapRaw)

	return e
}
