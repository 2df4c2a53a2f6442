//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"github.com/google/wire"

	"resume-ai-api/internal/application/draft"
	"resume-ai-api/internal/config"
	"resume-ai-api/internal/infrastructure/llm"
	"resume-ai-api/internal/interfaces/http/handler"
	"resume-ai-api/internal/interfaces/http/router"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		RedisSet,
		LLMSet,
		DraftSet,
		RouterSet,
	)
	return nil, nil, nil
}

// InitializeGenerator 仅初始化生成链路（用于命令行工具）
func InitializeGenerator(cfg *config.Config) (*draft.Generator, error) {
	wire.Build(
		LLMSet,
		DraftSet,
	)
	return nil, nil
}

// RedisSet Redis 提供者集合；未启用时客户端为 nil
var RedisSet = wire.NewSet(
	ProvideRedisClient,
	ProvideRateLimiter,
	ProvideHealthChecker,
)

// LLMSet 模型目录与各驱动
var LLMSet = wire.NewSet(
	ProvideUsageRecorder,
	llm.NewCatalog,
	llm.NewEinoFactory,
	llm.NewEinoDriver,
	llm.NewOpenAIDriver,
	llm.NewMockDriver,
	llm.NewDefaultRouter,
	wire.Bind(new(draft.Gateway), new(*llm.Router)),
	wire.Bind(new(draft.ModelCatalog), new(*llm.Catalog)),
)

// DraftSet 改写编排
var DraftSet = wire.NewSet(
	ProvidePromptComposer,
	ProvideSampling,
	draft.NewGenerator,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	wire.Bind(new(handler.DraftGenerator), new(*draft.Generator)),
	handler.NewHealthHandler,
	handler.NewResumeHandler,
	handler.NewModelHandler,
	wire.Struct(new(router.RouterHandlers), "*"),
	router.NewWithDeps,
)
