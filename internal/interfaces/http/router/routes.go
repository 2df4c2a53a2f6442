// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes 注册 /api 路由；只有生成接口受限流约束
func RegisterAPIRoutes(api *gin.RouterGroup, h RouterHandlers, rateLimit gin.HandlerFunc) {
	api.GET("/health", h.Health.ServiceHealth)
	api.GET("/models", h.Model.ListModels)
	api.POST("/generate-resume", rateLimit, h.Resume.GenerateResume)
}
