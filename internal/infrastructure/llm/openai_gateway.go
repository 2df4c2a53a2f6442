package llm

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"resume-ai-api/internal/application/draft"
	"resume-ai-api/internal/domain/service"
	einoobs "resume-ai-api/internal/observability/eino"
	apperrors "resume-ai-api/pkg/errors"
	"resume-ai-api/pkg/logger"
	"resume-ai-api/pkg/metrics"
)

// OpenAIDriver 直接使用官方 openai-go SDK 调用 chat completions
type OpenAIDriver struct {
	recorder service.LLMUsageRecorder

	mu      sync.Mutex
	clients map[string]*openai.Client
}

func NewOpenAIDriver(recorder service.LLMUsageRecorder) *OpenAIDriver {
	return &OpenAIDriver{
		recorder: recorder,
		clients:  make(map[string]*openai.Client),
	}
}

func (d *OpenAIDriver) client(route Route) (*openai.Client, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if c, ok := d.clients[route.Provider]; ok {
		return c, nil
	}
	if strings.TrimSpace(route.Config.APIKey) == "" {
		return nil, errors.New("openai api key missing; provide llm.providers.<name>.api_key")
	}

	// 重试由上层按长度区间统一控制
	opts := []option.RequestOption{
		option.WithAPIKey(route.Config.APIKey),
		option.WithMaxRetries(0),
	}
	if route.Config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(route.Config.BaseURL))
	}
	if route.Config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(route.Config.Timeout))
	}
	c := openai.NewClient(opts...)
	d.clients[route.Provider] = &c
	return &c, nil
}

func (d *OpenAIDriver) Generate(ctx context.Context, route Route, in draft.Instructions, opts draft.GenerateOptions) (string, error) {
	c, err := d.client(route)
	if err != nil {
		return "", apperrors.ErrLLMProviderError.WithError(err)
	}

	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if strings.TrimSpace(in.System) != "" {
		msgs = append(msgs, openai.SystemMessage(in.System))
	}
	msgs = append(msgs, openai.UserMessage(in.User))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(route.Upstream),
		Messages: msgs,
	}
	if opts.Temperature > 0 {
		params.Temperature = openai.Float(float64(opts.Temperature))
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}

	workflow := einoobs.WorkflowFromContext(ctx)
	start := time.Now()
	resp, err := c.Chat.Completions.New(ctx, params)
	elapsed := time.Since(start)
	metrics.LLMCallDuration.WithLabelValues(workflow, route.Provider, route.Upstream).Observe(elapsed.Seconds())
	if err != nil {
		metrics.LLMCallTotal.WithLabelValues(workflow, route.Provider, route.Upstream, "error").Inc()
		return "", apperrors.ErrLLMCallFailed.WithError(err)
	}
	metrics.LLMCallTotal.WithLabelValues(workflow, route.Provider, route.Upstream, "success").Inc()

	if d.recorder != nil {
		if rerr := d.recorder.Record(ctx, service.LLMUsageInput{
			Workflow:         workflow,
			Provider:         route.Provider,
			Model:            route.Upstream,
			Attempt:          opts.Attempt,
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			DurationMs:       int(elapsed.Milliseconds()),
		}); rerr != nil {
			logger.Warn(ctx, "record llm usage failed", "error", rerr.Error())
		}
	}

	if len(resp.Choices) == 0 {
		return "", apperrors.ErrLLMCallFailed.WithError(errors.New("openai: empty choices"))
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", apperrors.ErrLLMCallFailed.WithError(errors.New("openai: empty completion"))
	}
	return content, nil
}
