package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/geocrop/internal/adapter/handler"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/middleware"
	"github.com/marcos-nsantos/geocrop/internal/pkg/metrics"
)

type Router struct {
	engine         *gin.Engine
	authHandler    *handler.AuthHandler
	sessionHandler *handler.SessionHandler
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter
	logger         *zap.Logger
}

type RouterConfig struct {
	AuthHandler    *handler.AuthHandler
	SessionHandler *handler.SessionHandler
	AuthMiddleware *middleware.AuthMiddleware
	// RateLimiter is optional.
	RateLimiter *middleware.RateLimiter
	Logger      *zap.Logger
	Environment string
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:         engine,
		authHandler:    cfg.AuthHandler,
		sessionHandler: cfg.SessionHandler,
		authMiddleware: cfg.AuthMiddleware,
		rateLimiter:    cfg.RateLimiter,
		logger:         cfg.Logger,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS())
	r.engine.Use(metrics.Middleware())
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.engine.Group("/api/v1")
	if r.rateLimiter != nil {
		api.Use(r.rateLimiter.Limit())
	}
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", r.authHandler.Login)
		}

		sessions := api.Group("/sessions")
		sessions.Use(r.authMiddleware.RequireAuth())
		{
			sessions.POST("", r.sessionHandler.Create)
			sessions.GET("", r.sessionHandler.List)
			sessions.GET("/:id", r.sessionHandler.Get)
			sessions.DELETE("/:id", r.sessionHandler.Delete)
			sessions.POST("/:id/points", r.sessionHandler.RegisterPoint)
			sessions.GET("/:id/selection", r.sessionHandler.Selection)
			sessions.POST("/:id/reset", r.sessionHandler.Reset)
			sessions.PUT("/:id/targets/:target_id", r.sessionHandler.UpdateTarget)
			sessions.POST("/:id/export", r.sessionHandler.Export)
			sessions.GET("/:id/history", r.sessionHandler.History)
			sessions.GET("/:id/preview", r.sessionHandler.Preview)
		}
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
