// Package api exposes the HTTP surface of the random article service.
package api

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wikiroam/randomarticle/internal/config"
	"github.com/wikiroam/randomarticle/internal/logger"
)

const corsMaxAgeHours = 12

// Router holds the API dependencies
type Router struct {
	handlers *Handlers
	registry *prometheus.Registry
	cfg      *config.Config
	logger   logger.Logger
}

// NewRouter creates a new API router
func NewRouter(handlers *Handlers, registry *prometheus.Registry, cfg *config.Config, log logger.Logger) *Router {
	return &Router{
		handlers: handlers,
		registry: registry,
		cfg:      cfg,
		logger:   log,
	}
}

// Engine builds the gin engine with all routes attached.
func (r *Router) Engine() *gin.Engine {
	if !r.cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	engine.GET("/health", r.handlers.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})))

	v1 := engine.Group("/api/v1")
	{
		v1.GET("/sites/:site/random", r.handlers.ResolveRandom)
	}

	return engine
}

// NewServer wraps the engine in an http.Server with configured timeouts.
func (r *Router) NewServer() *http.Server {
	return &http.Server{
		Addr:         r.cfg.Server.Address,
		Handler:      r.Engine(),
		ReadTimeout:  r.cfg.Server.ReadTimeout,
		WriteTimeout: r.cfg.Server.WriteTimeout,
	}
}

// getCORSOrigins returns the list of allowed CORS origins from environment or defaults
func getCORSOrigins() []string {
	if corsOrigins := os.Getenv("CORS_ORIGINS"); corsOrigins != "" {
		origins := strings.Split(corsOrigins, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		return origins
	}

	return []string{
		"http://localhost:3000", // Reader frontend
	}
}

// corsMiddleware creates a CORS middleware
func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: getCORSOrigins(),
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept-Encoding",
			"Authorization", "accept", "origin", "Cache-Control",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           corsMaxAgeHours * time.Hour,
	})
}
