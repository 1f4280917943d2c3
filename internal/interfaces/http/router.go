package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/moderation/internal/interfaces/http/middleware"
	"github.com/orris-inc/moderation/internal/interfaces/http/routes"
)

// Router represents the HTTP router configuration
type Router struct {
	container *Container
	engine    *gin.Engine
}

func NewRouter(container *Container) *Router {
	return &Router{
		container: container,
		engine:    container.engine,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	c := r.container

	metricsPath := c.cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}

	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.CustomLogger(c.log.Named("http"), "/health", metricsPath))
	r.engine.Use(middleware.Recovery(c.log.Named("recovery")))
	r.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())
	if c.metrics != nil {
		r.engine.Use(c.metrics.Middleware())
		r.engine.GET(metricsPath, gin.WrapH(c.metrics.Handler()))
	}

	r.engine.GET("/health", c.systemHandler.HealthCheck)
	r.engine.GET("/version", c.systemHandler.Version)

	routes.SetupModerationRoutes(r.engine, &routes.ModerationRouteConfig{
		Handler:     c.moderationHandler,
		RateLimiter: c.rateLimiter,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Shutdown flushes the moderation graph and closes infrastructure.
func (r *Router) Shutdown(ctx context.Context) {
	r.container.Shutdown(ctx)
}
