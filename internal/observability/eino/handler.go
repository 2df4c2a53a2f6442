package eino

import (
	"context"
	"time"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/model"
	cbtemplate "github.com/cloudwego/eino/utils/callbacks"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"resume-ai-api/internal/domain/service"
	"resume-ai-api/pkg/logger"
	"resume-ai-api/pkg/metrics"
)

// startTimeKey 在 Context 中存储调用开始时间，OnEnd/OnError 时计算耗时
type startTimeKey struct{}

// modelNameKey 在 OnStart 时记录模型名，OnError 拿不到输出配置
type modelNameKey struct{}

// newChatModelCallbackHandler 创建大模型调用的回调处理器
//
// 每次 ChatModel.Generate 都会触发，记录：
//   - 调用次数（成功/失败）
//   - 耗时
//   - Token 消耗（交给 recorder）
//   - 分布式追踪 span
func newChatModelCallbackHandler(recorder service.LLMUsageRecorder) *cbtemplate.ModelCallbackHandler {
	return &cbtemplate.ModelCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *model.CallbackInput) context.Context {
			modelName := modelNameFromInput(input)
			ctx = context.WithValue(ctx, startTimeKey{}, time.Now())
			ctx = context.WithValue(ctx, modelNameKey{}, modelName)

			attrs := []attribute.KeyValue{
				attribute.String("eino.workflow", WorkflowFromContext(ctx)),
				attribute.String("llm.provider", ProviderFromContext(ctx)),
				attribute.String("llm.model", modelName),
				attribute.Int("llm.attempt", AttemptFromContext(ctx)),
			}
			if info != nil {
				attrs = append(attrs,
					attribute.String("eino.node_name", info.Name),
					attribute.String("eino.type", info.Type),
				)
			}

			ctx, _ = otel.Tracer("eino").Start(ctx, "llm.generate", trace.WithAttributes(attrs...))
			return ctx
		},

		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *model.CallbackOutput) context.Context {
			workflow := WorkflowFromContext(ctx)
			provider := ProviderFromContext(ctx)
			modelName := modelNameFromOutput(output)
			if modelName == "" {
				modelName = modelNameFromContext(ctx)
			}
			elapsed := elapsedSeconds(ctx)

			metrics.LLMCallTotal.WithLabelValues(workflow, provider, modelName, "success").Inc()
			if elapsed > 0 {
				metrics.LLMCallDuration.WithLabelValues(workflow, provider, modelName).Observe(elapsed)
			}

			span := trace.SpanFromContext(ctx)
			if output != nil && output.TokenUsage != nil {
				span.SetAttributes(
					attribute.Int("llm.prompt_tokens", output.TokenUsage.PromptTokens),
					attribute.Int("llm.completion_tokens", output.TokenUsage.CompletionTokens),
				)
				if recorder != nil {
					err := recorder.Record(ctx, service.LLMUsageInput{
						RequestID:        requestIDFromContext(ctx),
						Workflow:         workflow,
						Provider:         provider,
						Model:            modelName,
						Attempt:          AttemptFromContext(ctx),
						PromptTokens:     output.TokenUsage.PromptTokens,
						CompletionTokens: output.TokenUsage.CompletionTokens,
						DurationMs:       int(elapsed * 1000),
					})
					if err != nil {
						logger.Warn(ctx, "record llm usage failed", "error", err.Error())
					}
				}
			}
			span.End()
			return ctx
		},

		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			workflow := WorkflowFromContext(ctx)
			provider := ProviderFromContext(ctx)
			modelName := modelNameFromContext(ctx)

			metrics.LLMCallTotal.WithLabelValues(workflow, provider, modelName, "error").Inc()
			if d := elapsedSeconds(ctx); d > 0 {
				metrics.LLMCallDuration.WithLabelValues(workflow, provider, modelName).Observe(d)
			}

			span := trace.SpanFromContext(ctx)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End()
			return ctx
		},
	}
}

// elapsedSeconds 计算 OnStart 到当前的耗时（秒），取不到开始时间时返回 0
func elapsedSeconds(ctx context.Context) float64 {
	start, ok := ctx.Value(startTimeKey{}).(time.Time)
	if !ok || start.IsZero() {
		return 0
	}
	return time.Since(start).Seconds()
}

func modelNameFromInput(in *model.CallbackInput) string {
	if in == nil || in.Config == nil {
		return ""
	}
	return in.Config.Model
}

func modelNameFromOutput(out *model.CallbackOutput) string {
	if out == nil || out.Config == nil {
		return ""
	}
	return out.Config.Model
}

func modelNameFromContext(ctx context.Context) string {
	s, _ := ctx.Value(modelNameKey{}).(string)
	return s
}

func requestIDFromContext(ctx context.Context) string {
	s, _ := ctx.Value(logger.RequestIDKey).(string)
	return s
}
