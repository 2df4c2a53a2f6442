// Package middleware 提供 HTTP 中间件
package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"resume-ai-api/internal/interfaces/http/dto"
	apperrors "resume-ai-api/pkg/errors"
	"resume-ai-api/pkg/logger"
	"resume-ai-api/pkg/metrics"
)

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	// Enabled 是否启用限流
	Enabled bool
	// RequestsPerMinute 每个客户端每分钟请求数
	RequestsPerMinute int
	// Burst 突发容量，仅本地限流器使用
	Burst int
	// KeyPrefix 限流 Key 前缀
	KeyPrefix string
}

// RateLimiter 限流器接口
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit 限流中间件，按客户端 IP 和路由计数
func RateLimit(cfg RateLimitConfig, limiter RateLimiter) gin.HandlerFunc {
	// 如果未启用限流，返回空中间件
	if !cfg.Enabled || limiter == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	// 设置默认值
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 10
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "ratelimit"
	}

	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		key := cfg.KeyPrefix + ":" + c.ClientIP() + ":" + path

		allowed, err := limiter.Allow(c.Request.Context(), key, cfg.RequestsPerMinute, time.Minute)
		if err != nil {
			// 限流器故障时放行，避免影响业务
			logger.Warn(c.Request.Context(), "rate limiter unavailable", "error", err.Error())
			c.Next()
			return
		}

		if !allowed {
			metrics.RateLimitRejected.WithLabelValues(path).Inc()
			dto.AbortWithAppError(c, apperrors.ErrTooManyRequests.WithDetail("rate limit exceeded"))
			return
		}

		c.Next()
	}
}

// localLimiterCapacity 本地限流器最多跟踪的 key 数量，超出后淘汰最久未访问的
const localLimiterCapacity = 10000

// LocalRateLimiter 进程内令牌桶限流器，未启用 Redis 时使用
type LocalRateLimiter struct {
	burst int

	mu       sync.Mutex
	limiters *lru.Cache[string, *rate.Limiter]
}

// NewLocalRateLimiter 创建本地限流器
func NewLocalRateLimiter(burst int) *LocalRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	// 容量为正数时不会返回错误
	cache, _ := lru.New[string, *rate.Limiter](localLimiterCapacity)
	return &LocalRateLimiter{
		burst:    burst,
		limiters: cache,
	}
}

// Allow 每个 key 一个令牌桶，速率为 limit/window
func (l *LocalRateLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 || window <= 0 {
		return true, nil
	}

	l.mu.Lock()
	lim, ok := l.limiters.Get(key)
	if !ok {
		lim = rate.NewLimiter(rate.Every(window/time.Duration(limit)), l.burst)
		l.limiters.Add(key, lim)
	}
	l.mu.Unlock()

	return lim.Allow(), nil
}
