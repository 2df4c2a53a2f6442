package llm

import (
	"context"
	"fmt"

	"resume-ai-api/internal/application/draft"
	"resume-ai-api/internal/config"
	einoobs "resume-ai-api/internal/observability/eino"
	apperrors "resume-ai-api/pkg/errors"
)

// Driver 某一类提供商接入方式
type Driver interface {
	Generate(ctx context.Context, route Route, in draft.Instructions, opts draft.GenerateOptions) (string, error)
}

// Router 按模型目录把请求分发到对应驱动，实现 draft.Gateway
type Router struct {
	catalog *Catalog
	drivers map[string]Driver
}

func NewRouter(catalog *Catalog, drivers map[string]Driver) *Router {
	return &Router{catalog: catalog, drivers: drivers}
}

// NewDefaultRouter 注册全部内置驱动
func NewDefaultRouter(catalog *Catalog, eino *EinoDriver, openaiSDK *OpenAIDriver, mock *MockDriver) *Router {
	return NewRouter(catalog, map[string]Driver{
		config.DriverEino:      eino,
		config.DriverOpenAISDK: openaiSDK,
		config.DriverMock:      mock,
	})
}

func (r *Router) Generate(ctx context.Context, in draft.Instructions, opts draft.GenerateOptions) (string, error) {
	route, ok := r.catalog.Resolve(opts.Model)
	if !ok {
		return "", apperrors.ErrUnsupportedModel.WithDetail(opts.Model)
	}
	drv, ok := r.drivers[route.Driver]
	if !ok || drv == nil {
		return "", apperrors.ErrLLMProviderError.WithError(fmt.Errorf("driver %q not registered", route.Driver))
	}

	ctx = einoobs.WithAttempt(einoobs.WithProvider(ctx, route.Provider), opts.Attempt)
	return drv.Generate(ctx, route, in, opts)
}
