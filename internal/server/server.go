// Package server provides HTTP server setup and configuration.
package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sebasr/greeting-service/internal/assets"
	"github.com/sebasr/greeting-service/internal/handlers"
	"github.com/sebasr/greeting-service/internal/middleware"
)

const (
	// HealthPath is not request-logged.
	HealthPath = "/api/v1/health"
	// MetricsPath serves the Prometheus exposition.
	MetricsPath = "/metrics"
)

// Dependencies holds all dependencies needed to create a server
type Dependencies struct {
	Resolver handlers.Resolver
	Assets   assets.Store
	Logger   *zap.Logger // optional
}

// New creates a new Gin router with all routes configured
func New(deps *Dependencies) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// gin.Default() adds colored logging; request logs go through zap instead
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger, HealthPath))

	// Add CORS middleware for web client support
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Encoding", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Images are already compressed; promhttp negotiates its own encoding
	router.Use(gzip.Gzip(gzip.DefaultCompression,
		gzip.WithDecompressFn(gzip.DefaultDecompressHandle),
		gzip.WithExcludedPaths([]string{"/static/", MetricsPath}),
	))

	greetingHandler := handlers.NewGreetingHandler(deps.Resolver, logger)
	staticHandler := handlers.NewStaticHandler(deps.Assets)
	healthHandler := handlers.NewHealthHandler(deps.Assets)

	router.GET("/", handlers.IndexHandler)
	router.POST("/generate_message", greetingHandler.Generate)
	router.GET("/static/*filepath", staticHandler.Serve)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthHandler.Check)
	}

	router.GET(MetricsPath, gin.WrapH(promhttp.Handler()))

	return router
}
