package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"resume-ai-api/internal/application/draft"
	apperrors "resume-ai-api/pkg/errors"
)

// EinoDriver 通过 Eino ChatModel 调用提供商
type EinoDriver struct {
	factory *EinoFactory
}

func NewEinoDriver(factory *EinoFactory) *EinoDriver {
	return &EinoDriver{factory: factory}
}

func (d *EinoDriver) Generate(ctx context.Context, route Route, in draft.Instructions, opts draft.GenerateOptions) (string, error) {
	chatModel, err := d.factory.Get(ctx, route.Provider)
	if err != nil {
		return "", apperrors.ErrLLMProviderError.WithError(err)
	}

	msgs := make([]*schema.Message, 0, 2)
	if strings.TrimSpace(in.System) != "" {
		msgs = append(msgs, schema.SystemMessage(in.System))
	}
	msgs = append(msgs, schema.UserMessage(in.User))

	outMsg, err := chatModel.Generate(ctx, msgs, buildModelOptions(route, opts)...)
	if err != nil {
		return "", apperrors.ErrLLMCallFailed.WithError(err)
	}
	if outMsg == nil || strings.TrimSpace(outMsg.Content) == "" {
		return "", apperrors.ErrLLMCallFailed.WithError(errors.New("empty completion"))
	}
	return outMsg.Content, nil
}

func buildModelOptions(route Route, opts draft.GenerateOptions) []model.Option {
	out := []model.Option{model.WithModel(route.Upstream)}
	if opts.Temperature > 0 {
		out = append(out, model.WithTemperature(opts.Temperature))
	}
	if opts.MaxTokens > 0 {
		out = append(out, model.WithMaxTokens(opts.MaxTokens))
	}
	return out
}
