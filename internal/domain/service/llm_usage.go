package service

import "context"

// LLMUsageInput 一次 LLM 调用的可观测数据。
// 说明：位于 domain/service，作为跨层契约，生成服务的各个驱动都通过它上报用量。
type LLMUsageInput struct {
	RequestID string

	Workflow string
	Provider string
	Model    string
	Attempt  int

	PromptTokens     int
	CompletionTokens int
	DurationMs       int
}

// LLMUsageRecorder 记录 LLM 用量。
// 约定：实现应为 best-effort，不应阻塞主流程。
type LLMUsageRecorder interface {
	Record(ctx context.Context, in LLMUsageInput) error
}
