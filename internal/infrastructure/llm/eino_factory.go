package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"resume-ai-api/internal/config"
)

// ChatModelBuilder 根据提供商配置创建 ChatModel
type ChatModelBuilder func(ctx context.Context, name string, cfg config.ProviderConfig) (model.BaseChatModel, error)

// EinoFactory 管理多个 Eino ChatModel 客户端实例
type EinoFactory struct {
	config *config.LLMConfig
	build  ChatModelBuilder
	models map[string]model.BaseChatModel
	mu     sync.RWMutex
}

// NewEinoFactory 创建 Eino LLM 工厂
func NewEinoFactory(cfg *config.Config) *EinoFactory {
	return NewEinoFactoryWithBuilder(cfg, newOpenAIChatModel)
}

// NewEinoFactoryWithBuilder 使用自定义 builder 创建工厂
func NewEinoFactoryWithBuilder(cfg *config.Config, build ChatModelBuilder) *EinoFactory {
	return &EinoFactory{
		config: &cfg.LLM,
		build:  build,
		models: make(map[string]model.BaseChatModel),
	}
}

// Get 获取指定提供商的 ChatModel，首次调用时创建
func (f *EinoFactory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	f.mu.RLock()
	m, ok := f.models[name]
	f.mu.RUnlock()
	if ok {
		return m, nil
	}

	// 惰性加载
	f.mu.Lock()
	defer f.mu.Unlock()

	// 再次检查防止竞态
	if m, ok = f.models[name]; ok {
		return m, nil
	}

	providerCfg, ok := f.config.Providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %s not found in LLM config", name)
	}

	chatModel, err := f.build(ctx, name, providerCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create eino chat model for %s: %w", name, err)
	}

	f.models[name] = chatModel
	return chatModel, nil
}

// newOpenAIChatModel 使用 Eino 的 OpenAI 适配器
func newOpenAIChatModel(ctx context.Context, _ string, cfg config.ProviderConfig) (model.BaseChatModel, error) {
	maxTokens := cfg.MaxTokens
	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		MaxTokens:   &maxTokens,
		Temperature: ptrFloat32(float32(cfg.Temperature)),
		Timeout:     cfg.Timeout,
	})
}

func ptrFloat32(f float32) *float32 {
	return &f
}
