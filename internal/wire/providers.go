package wire

import (
	"resume-ai-api/internal/application/draft"
	"resume-ai-api/internal/application/usage"
	"resume-ai-api/internal/config"
	"resume-ai-api/internal/domain/service"
	"resume-ai-api/internal/infrastructure/persistence/redis"
	"resume-ai-api/internal/interfaces/http/handler"
	"resume-ai-api/internal/interfaces/http/middleware"
	workflowprompt "resume-ai-api/internal/workflow/prompt"
)

// ProvideRedisClient 提供 Redis 客户端；未启用时返回 nil
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideRateLimiter 启用 Redis 时使用分布式滑动窗口，否则退回进程内令牌桶
func ProvideRateLimiter(cfg *config.Config, client *redis.Client) middleware.RateLimiter {
	if client == nil {
		return middleware.NewLocalRateLimiter(cfg.Security.RateLimit.Burst)
	}
	return redis.NewRateLimiter(client)
}

// ProvideHealthChecker 就绪检查依赖；nil 客户端必须返回 nil 接口
func ProvideHealthChecker(client *redis.Client) handler.HealthChecker {
	if client == nil {
		return nil
	}
	return client
}

// ProvideUsageRecorder 提供 LLM 用量记录器
func ProvideUsageRecorder() service.LLMUsageRecorder {
	return usage.NewRecorder()
}

// ProvidePromptComposer 提供指令组装器
func ProvidePromptComposer() *draft.PromptComposer {
	return draft.NewPromptComposer(workflowprompt.NewRegistry())
}

// ProvideSampling 从配置读取采样参数
func ProvideSampling(cfg *config.Config) draft.Sampling {
	g := cfg.Generation
	return draft.Sampling{
		Temperature:     g.Temperature,
		MinTemperature:  g.MinTemperature,
		TemperatureStep: g.TemperatureStep,
		MaxTokens:       g.MaxTokens,
	}
}
