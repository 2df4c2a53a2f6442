// Package usage 记录 LLM 调用用量
package usage

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"resume-ai-api/internal/domain/service"
	"resume-ai-api/pkg/logger"
	"resume-ai-api/pkg/metrics"
)

// Recorder 把用量写入 token 指标和结构化日志
type Recorder struct{}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Record(ctx context.Context, in service.LLMUsageInput) error {
	if r == nil {
		return nil
	}
	if in.PromptTokens < 0 || in.CompletionTokens < 0 {
		return fmt.Errorf("invalid token usage")
	}

	workflow := labelOrUnknown(in.Workflow)
	provider := labelOrUnknown(in.Provider)
	model := labelOrUnknown(in.Model)

	metrics.LLMTokensUsed.WithLabelValues(workflow, provider, model, "prompt").Add(float64(in.PromptTokens))
	metrics.LLMTokensUsed.WithLabelValues(workflow, provider, model, "completion").Add(float64(in.CompletionTokens))

	logger.Debug(ctx, "llm usage",
		"workflow", workflow,
		"provider", provider,
		"model", model,
		"attempt", strconv.Itoa(in.Attempt),
		"prompt_tokens", in.PromptTokens,
		"completion_tokens", in.CompletionTokens,
		"duration_ms", in.DurationMs,
	)
	return nil
}

func labelOrUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}
	return s
}
