// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"resume-ai-api/internal/config"
	"resume-ai-api/internal/interfaces/http/dto"
	"resume-ai-api/internal/interfaces/http/handler"
	"resume-ai-api/internal/interfaces/http/middleware"
	apperrors "resume-ai-api/pkg/errors"
)

// RouterHandlers 路由依赖的处理器
type RouterHandlers struct {
	Health *handler.HealthHandler
	Resume *handler.ResumeHandler
	Model  *handler.ModelHandler
}

// Router HTTP 路由器
type Router struct {
	engine   *gin.Engine
	cfg      *config.Config
	handlers RouterHandlers
	limiter  middleware.RateLimiter
}

// NewWithDeps 创建路由器并注册全部路由
func NewWithDeps(cfg *config.Config, handlers RouterHandlers, limiter middleware.RateLimiter) *Router {
	// 设置 Gin 模式
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := &Router{
		engine:   gin.New(),
		cfg:      cfg,
		handlers: handlers,
		limiter:  limiter,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// systemPaths 不参与追踪与指标统计的路径
func (r *Router) systemPaths() []string {
	return []string{"/health", "/ready", "/live", r.cfg.Observability.Metrics.Path}
}

// setupMiddleware 配置中间件
func (r *Router) setupMiddleware() {
	// 基础中间件
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.CORS(r.cfg.Security.CORS))

	// 追踪中间件
	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name, r.systemPaths()...))
		r.engine.Use(middleware.TraceContext())
	}

	// 指标中间件
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics(r.systemPaths()...))
	}
}

// setupRoutes 配置路由
func (r *Router) setupRoutes() {
	// 系统端点
	r.engine.GET("/health", r.handlers.Health.Health)
	r.engine.GET("/ready", r.handlers.Health.Ready)
	r.engine.GET("/live", r.handlers.Health.Live)

	// Prometheus 指标端点
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	r.engine.NoRoute(func(c *gin.Context) {
		dto.AbortWithAppError(c, apperrors.ErrNotFound.WithDetail(c.Request.Method+" "+c.Request.URL.Path))
	})

	rl := r.cfg.Security.RateLimit
	RegisterAPIRoutes(r.engine.Group("/api"), r.handlers, middleware.RateLimit(middleware.RateLimitConfig{
		Enabled:           rl.Enabled,
		RequestsPerMinute: rl.RequestsPerMinute,
		Burst:             rl.Burst,
	}, r.limiter))
}
