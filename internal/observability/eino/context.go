package eino

import (
	"context"
	"strings"
)

type llmCtxKey string

const (
	llmCtxKeyWorkflow llmCtxKey = "llm_workflow"
	llmCtxKeyProvider llmCtxKey = "llm_provider"
	llmCtxKeyAttempt  llmCtxKey = "llm_attempt"
)

func WithWorkflow(ctx context.Context, workflow string) context.Context {
	if ctx == nil {
		return nil
	}
	w := strings.TrimSpace(workflow)
	if w == "" {
		return ctx
	}
	return context.WithValue(ctx, llmCtxKeyWorkflow, w)
}

func WithProvider(ctx context.Context, provider string) context.Context {
	if ctx == nil {
		return nil
	}
	p := strings.TrimSpace(provider)
	if p == "" {
		return ctx
	}
	return context.WithValue(ctx, llmCtxKeyProvider, p)
}

func WithWorkflowProvider(ctx context.Context, workflow, provider string) context.Context {
	return WithProvider(WithWorkflow(ctx, workflow), provider)
}

// WithAttempt 记录当前是第几次生成尝试
func WithAttempt(ctx context.Context, attempt int) context.Context {
	if ctx == nil || attempt <= 0 {
		return ctx
	}
	return context.WithValue(ctx, llmCtxKeyAttempt, attempt)
}

func WorkflowFromContext(ctx context.Context) string {
	return stringFromContext(ctx, llmCtxKeyWorkflow)
}

func ProviderFromContext(ctx context.Context) string {
	return stringFromContext(ctx, llmCtxKeyProvider)
}

func AttemptFromContext(ctx context.Context) int {
	if ctx == nil {
		return 0
	}
	n, _ := ctx.Value(llmCtxKeyAttempt).(int)
	return n
}

func stringFromContext(ctx context.Context, key llmCtxKey) string {
	if ctx == nil {
		return "unknown"
	}
	s, ok := ctx.Value(key).(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return strings.TrimSpace(s)
}
