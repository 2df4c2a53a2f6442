// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-ai-api/internal/config"
	apperrors "resume-ai-api/pkg/errors"
	"resume-ai-api/pkg/logger"
)

// HealthChecker 可探活的外部依赖
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler 健康检查处理器
type HealthHandler struct {
	redis   HealthChecker
	version string
}

// NewHealthHandler 创建健康检查处理器；redis 为 nil 表示未启用
func NewHealthHandler(cfg *config.Config, redis HealthChecker) *HealthHandler {
	return &HealthHandler{
		redis:   redis,
		version: cfg.App.Version,
	}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type readinessCheck struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// ServiceHealth 面向前端的存活文本
// @Summary 服务状态
// @Tags System
// @Produce plain
// @Success 200 {string} string
// @Router /api/health [get]
func (h *HealthHandler) ServiceHealth(c *gin.Context) {
	c.String(http.StatusOK, "Resume AI Backend is running!")
}

// Health 健康检查接口
// @Summary 健康检查
// @Description 检查服务健康状态
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}

// Ready 就绪检查接口
// @Summary 就绪检查
// @Description 检查服务是否可以接收流量
// @Tags System
// @Produce json
// @Success 200 {object} readinessResponse
// @Failure 503 {object} readinessResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]*readinessCheck{
		"redis": {Status: "disabled"},
	}
	var notReady error

	// Redis（启用时必需）
	if h.redis != nil {
		start := time.Now()
		err := h.redis.HealthCheck(ctx)
		checks["redis"].LatencyMs = time.Since(start).Milliseconds()
		if err != nil {
			checks["redis"].Status = "error"
			checks["redis"].Error = err.Error()
			notReady = err
		} else {
			checks["redis"].Status = "ok"
		}
	}

	resp := readinessResponse{
		Status: "ok",
		Checks: checks,
	}
	if notReady != nil {
		appErr := apperrors.ErrServiceUnavailable.WithError(notReady)
		logger.Warn(ctx, "readiness check failed", "error", appErr.Error())
		resp.Status = "not_ready"
		c.JSON(appErr.HTTPStatus, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Live 存活检查接口
// @Summary 存活检查
// @Description 检查服务是否存活
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
	})
}
