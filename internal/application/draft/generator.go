package draft

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	einoobs "resume-ai-api/internal/observability/eino"
	apperrors "resume-ai-api/pkg/errors"
	"resume-ai-api/pkg/logger"
	"resume-ai-api/pkg/metrics"
	"resume-ai-api/pkg/tracer"
)

// WorkflowName 观测标签中的工作流名称
const WorkflowName = "draft_generate"

// GenerationFailure 某次尝试调用生成服务失败
type GenerationFailure struct {
	Attempt int
	Cause   error
}

func (e *GenerationFailure) Error() string {
	return fmt.Sprintf("attempt %d: %v", e.Attempt, e.Cause)
}

func (e *GenerationFailure) Unwrap() error { return e.Cause }

// attemptKind 单次尝试的结果类型
type attemptKind int

const (
	attemptAccepted attemptKind = iota
	attemptUnderflow
	attemptOverflow
	attemptFailed
)

func (k attemptKind) String() string {
	switch k {
	case attemptAccepted:
		return "accepted"
	case attemptUnderflow:
		return "underflow"
	case attemptOverflow:
		return "overflow"
	default:
		return "generation_failed"
	}
}

// attemptOutcome 单次尝试的结果；attemptFailed 时只有 cause 有效
type attemptOutcome struct {
	kind      attemptKind
	candidate Candidate
	class     Classification
	cause     error
}

func succeeded(c Candidate, band LengthBand) attemptOutcome {
	class := c.Classify(band)
	return attemptOutcome{kind: kindOf(class), candidate: c, class: class}
}

func kindOf(c Classification) attemptKind {
	switch c {
	case Under:
		return attemptUnderflow
	case Over:
		return attemptOverflow
	default:
		return attemptAccepted
	}
}

// Generator 重试编排：最多 MaxAttempts 次调用，直到候选落入长度区间
type Generator struct {
	gateway  Gateway
	catalog  ModelCatalog
	composer *PromptComposer
	sampling Sampling
}

func NewGenerator(gateway Gateway, catalog ModelCatalog, composer *PromptComposer, sampling Sampling) *Generator {
	if composer == nil {
		composer = NewPromptComposer(nil)
	}
	return &Generator{
		gateway:  gateway,
		catalog:  catalog,
		composer: composer,
		sampling: sampling.withDefaults(),
	}
}

// Generate 执行一次完整的改写。任何情况下都返回结果，失败信息编码在结果中
func (g *Generator) Generate(ctx context.Context, req GenerationRequest) *GenerationResult {
	start := time.Now()
	band := Band(req.TargetLength)

	ctx = context.WithValue(ctx, logger.ModelKey, req.Model)
	ctx = einoobs.WithWorkflow(ctx, WorkflowName)
	ctx, span := tracer.Start(ctx, "draft.Generate", trace.WithAttributes(
		attribute.String("draft.model", req.Model),
		attribute.Int("draft.target_length", req.TargetLength),
		attribute.String("draft.band", band.String()),
	))
	defer span.End()

	res := g.run(ctx, req, band)

	span.SetAttributes(
		attribute.String("draft.outcome", string(res.Outcome)),
		attribute.Int("draft.attempts", res.Attempts),
		attribute.Int("draft.length", res.Length),
	)
	if res.Failed {
		span.SetStatus(codes.Error, res.ErrorCause)
	}

	metrics.DraftGenerationTotal.WithLabelValues(req.Model, string(res.Outcome)).Inc()
	metrics.DraftGenerationDuration.WithLabelValues(req.Model).Observe(time.Since(start).Seconds())
	if res.Attempts > 0 {
		metrics.DraftAttempts.WithLabelValues(string(res.Outcome)).Observe(float64(res.Attempts))
	}

	args := []any{
		"outcome", res.Outcome,
		attemptsAttr(res.Attempts),
		"length", res.Length,
		"band", band.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	}
	switch res.Outcome {
	case OutcomeAccepted:
		logger.Info(ctx, "draft generation finished", args...)
	case OutcomeFailed:
		logger.Error(ctx, "draft generation failed", res.Err, args...)
	default:
		logger.Warn(ctx, "draft generation returned out of band", args...)
	}
	return res
}

func (g *Generator) run(ctx context.Context, req GenerationRequest, band LengthBand) *GenerationResult {
	if g.catalog == nil || !g.catalog.IsSupported(req.Model) {
		logger.Warn(ctx, "unsupported model requested")
		return unsupported(band)
	}
	if g.gateway == nil {
		return failed(band, 0, errors.New("generation gateway not configured"))
	}

	var (
		carry    *attemptOutcome
		first    Classification
		hasFirst bool
	)

	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return failed(band, attempt-1, &GenerationFailure{Attempt: attempt, Cause: err})
		}

		out := g.attempt(ctx, req, band, attempt, carry)
		metrics.DraftAttemptTotal.WithLabelValues(out.kind.String()).Inc()

		if out.kind == attemptFailed {
			logger.Warn(ctx, "draft attempt failed",
				"attempt", attempt,
				"error", out.cause.Error(),
			)
			if attempt == MaxAttempts {
				return failed(band, attempt, &GenerationFailure{Attempt: attempt, Cause: out.cause})
			}
			continue
		}

		class := out.class
		metrics.DraftCandidateLength.WithLabelValues(class.String()).Observe(float64(out.candidate.Length()))
		logger.Debug(ctx, "draft attempt produced candidate",
			"attempt", attempt,
			"length", out.candidate.Length(),
			"classification", class.String(),
		)

		if !hasFirst {
			first, hasFirst = class, true
		}

		if out.kind == attemptAccepted || attempt == MaxAttempts {
			return g.finish(req, band, attempt, first, hasFirst, out.candidate, class)
		}
		carry = &out
	}

	// 循环在最后一次尝试内必然返回
	return failed(band, MaxAttempts, errors.New("attempt loop exited unexpectedly"))
}

// attempt 组装指令并调用一次生成服务；carry 为空时使用初始指令
func (g *Generator) attempt(ctx context.Context, req GenerationRequest, band LengthBand, attempt int, carry *attemptOutcome) attemptOutcome {
	ctx, span := tracer.Start(ctx, "draft.attempt", trace.WithAttributes(
		attribute.Int("draft.attempt", attempt),
	))
	defer span.End()

	var (
		in  Instructions
		err error
	)
	if attempt == 1 || carry == nil {
		in, err = g.composer.Initial(ctx, req, band)
	} else {
		dir := directionFor(carry.class)
		span.SetAttributes(attribute.String("draft.direction", dir.String()))
		in, err = g.composer.Revision(ctx, req, carry.candidate, band, dir, attempt)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return attemptOutcome{kind: attemptFailed, cause: fmt.Errorf("compose prompt: %w", err)}
	}

	opts := g.sampling.optionsFor(req.Model, attempt)
	text, err := g.gateway.Generate(ctx, in, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return attemptOutcome{kind: attemptFailed, cause: err}
	}

	c := NewCandidate(text)
	span.SetAttributes(attribute.Int("draft.length", c.Length()))
	return succeeded(c, band)
}

func (g *Generator) finish(req GenerationRequest, band LengthBand, attempts int, first Classification, hasFirst bool, final Candidate, class Classification) *GenerationResult {
	outcome := OutcomeAccepted
	switch class {
	case Under:
		outcome = OutcomeExhaustedUnderflow
	case Over:
		outcome = OutcomeExhaustedOverflow
	}
	return &GenerationResult{
		Text: final.Text(),
		Notes: annotate(annotation{
			req:      req,
			band:     band,
			attempts: attempts,
			first:    first,
			hasFirst: hasFirst,
			final:    final,
			class:    class,
		}),
		Outcome:  outcome,
		Attempts: attempts,
		Length:   final.Length(),
		Band:     band,
	}
}

func unsupported(band LengthBand) *GenerationResult {
	return &GenerationResult{
		Text:         FailureText,
		Notes:        []string{},
		Failed:       true,
		ErrorMessage: MessageUnsupported,
		ErrorCause:   MessageUnsupported,
		Err:          apperrors.ErrUnsupportedModel,
		Outcome:      OutcomeFailed,
		Band:         band,
	}
}

func failed(band LengthBand, attempts int, cause error) *GenerationResult {
	return &GenerationResult{
		Text:         FailureText,
		Notes:        []string{},
		Failed:       true,
		ErrorMessage: MessageGenerationFail,
		ErrorCause:   cause.Error(),
		Err:          apperrors.ErrGenerationFailed.WithError(cause),
		Outcome:      OutcomeFailed,
		Attempts:     attempts,
		Band:         band,
	}
}

// attemptsAttr 便于日志中统一输出尝试次数
func attemptsAttr(n int) slog.Attr {
	return slog.String("attempts", strconv.Itoa(n)+"/"+strconv.Itoa(MaxAttempts))
}
