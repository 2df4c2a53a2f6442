package draft

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "resume-ai-api/pkg/errors"
)

type gatewayCall struct {
	in   Instructions
	opts GenerateOptions
}

// scriptedGateway 按顺序返回预设结果；step.err 非空时模拟调用失败
type scriptedGateway struct {
	mu    sync.Mutex
	steps []step
	calls []gatewayCall
}

type step struct {
	length int
	err    error
}

func (g *scriptedGateway) Generate(_ context.Context, in Instructions, opts GenerateOptions) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls = append(g.calls, gatewayCall{in: in, opts: opts})
	if len(g.steps) == 0 {
		return "", errors.New("no scripted response")
	}
	s := g.steps[0]
	g.steps = g.steps[1:]
	if s.err != nil {
		return "", s.err
	}
	return strings.Repeat("가", s.length), nil
}

type staticCatalog map[string]bool

func (c staticCatalog) IsSupported(model string) bool { return c[model] }

func newTestGenerator(gw Gateway) *Generator {
	return NewGenerator(gw, staticCatalog{"gpt-4": true, "gpt-3.5-turbo": true}, nil, DefaultSampling())
}

func hasNoteContaining(notes []string, sub string) bool {
	for _, n := range notes {
		if strings.Contains(n, sub) {
			return true
		}
	}
	return false
}

func TestGenerateAcceptedFirstAttempt(t *testing.T) {
	gw := &scriptedGateway{steps: []step{{length: 950}}}

	res := newTestGenerator(gw).Generate(context.Background(), testRequest())

	assert.False(t, res.Failed)
	assert.Equal(t, OutcomeAccepted, res.Outcome)
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, 950, res.Length)
	assert.Equal(t, LengthBand{Minimum: 900, Maximum: 1000}, res.Band)
	assert.NoError(t, res.Err)
	assert.False(t, hasNoteContaining(res.Notes, "⚠️"))
	require.Len(t, gw.calls, 1)
	assert.InDelta(t, 0.7, gw.calls[0].opts.Temperature, 1e-6)
	assert.Equal(t, 2000, gw.calls[0].opts.MaxTokens)
	assert.Contains(t, gw.calls[0].in.User, testRequest().Draft)
}

func TestGenerateExpandsThenAccepts(t *testing.T) {
	gw := &scriptedGateway{steps: []step{{length: 500}, {length: 920}}}

	res := newTestGenerator(gw).Generate(context.Background(), testRequest())

	assert.False(t, res.Failed)
	assert.Equal(t, OutcomeAccepted, res.Outcome)
	assert.Equal(t, 2, res.Attempts)
	assert.Equal(t, 920, res.Length)
	assert.True(t, hasNoteContaining(res.Notes, "Expanded"))
	assert.True(t, hasNoteContaining(res.Notes, "2 attempts"))

	require.Len(t, gw.calls, 2)
	second := gw.calls[1].in.User
	assert.Contains(t, second, "Expand the previous version")
	assert.Contains(t, second, "500 characters long")
	assert.Contains(t, second, "400 characters short")
	assert.Contains(t, second, strings.Repeat("가", 500))
	assert.InDelta(t, 0.5, gw.calls[1].opts.Temperature, 1e-6)
}

func TestGenerateCondensesOverflow(t *testing.T) {
	gw := &scriptedGateway{steps: []step{{length: 1300}, {length: 980}}}

	res := newTestGenerator(gw).Generate(context.Background(), testRequest())

	assert.Equal(t, OutcomeAccepted, res.Outcome)
	assert.True(t, hasNoteContaining(res.Notes, "Condensed"))
	require.Len(t, gw.calls, 2)
	assert.Contains(t, gw.calls[1].in.User, "Condense the previous version")
	assert.Contains(t, gw.calls[1].in.User, "300 characters over")
}

func TestGenerateExhaustedUnderflow(t *testing.T) {
	gw := &scriptedGateway{steps: []step{{length: 400}, {length: 400}, {length: 400}}}

	res := newTestGenerator(gw).Generate(context.Background(), testRequest())

	assert.False(t, res.Failed)
	assert.Equal(t, OutcomeExhaustedUnderflow, res.Outcome)
	assert.Equal(t, MaxAttempts, res.Attempts)
	assert.Equal(t, strings.Repeat("가", 400), res.Text)
	assert.True(t, hasNoteContaining(res.Notes, "500 characters short"))
	assert.Len(t, gw.calls, MaxAttempts)
}

func TestGenerateExhaustedOverflow(t *testing.T) {
	gw := &scriptedGateway{steps: []step{{length: 1500}, {length: 1200}, {length: 1100}}}

	res := newTestGenerator(gw).Generate(context.Background(), testRequest())

	assert.False(t, res.Failed)
	assert.Equal(t, OutcomeExhaustedOverflow, res.Outcome)
	assert.Equal(t, 1100, res.Length)
	assert.True(t, hasNoteContaining(res.Notes, "by 100 characters"))
	assert.Contains(t, gw.calls[2].in.User, strings.Repeat("가", 1200))
}

func TestGenerateFailsWhenEveryAttemptFails(t *testing.T) {
	boom := errors.New("connection reset")
	gw := &scriptedGateway{steps: []step{{err: boom}, {err: boom}, {err: boom}}}

	res := newTestGenerator(gw).Generate(context.Background(), testRequest())

	assert.True(t, res.Failed)
	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.Equal(t, MessageGenerationFail, res.ErrorMessage)
	assert.Contains(t, res.ErrorCause, "connection reset")
	assert.Empty(t, res.Notes)
	assert.Len(t, gw.calls, MaxAttempts)
	assert.True(t, apperrors.HasCode(res.Err, apperrors.CodeGenerationFailed))
	assert.ErrorIs(t, res.Err, boom)
}

func TestGenerateUnsupportedModelSkipsGateway(t *testing.T) {
	gw := &scriptedGateway{steps: []step{{length: 950}}}
	req := testRequest()
	req.Model = "unknown-model"

	res := newTestGenerator(gw).Generate(context.Background(), req)

	assert.True(t, res.Failed)
	assert.Equal(t, MessageUnsupported, res.ErrorMessage)
	assert.Empty(t, gw.calls)
	assert.True(t, apperrors.HasCode(res.Err, apperrors.CodeUnsupportedModel))
}

func TestGenerateRecoversAfterTransientFailure(t *testing.T) {
	gw := &scriptedGateway{steps: []step{{err: errors.New("timeout")}, {length: 950}}}

	res := newTestGenerator(gw).Generate(context.Background(), testRequest())

	assert.False(t, res.Failed)
	assert.Equal(t, OutcomeAccepted, res.Outcome)
	assert.Equal(t, 2, res.Attempts)
	require.Len(t, gw.calls, 2)
	// 没有可改写的候选，第二次仍使用初始指令
	assert.Contains(t, gw.calls[1].in.User, testRequest().Draft)
	assert.True(t, hasNoteContaining(res.Notes, "retried"))
}

func TestGenerateFailureKeepsCarryOver(t *testing.T) {
	gw := &scriptedGateway{steps: []step{{length: 500}, {err: errors.New("timeout")}, {length: 930}}}

	res := newTestGenerator(gw).Generate(context.Background(), testRequest())

	assert.Equal(t, OutcomeAccepted, res.Outcome)
	require.Len(t, gw.calls, 3)
	third := gw.calls[2].in.User
	assert.Contains(t, third, "Expand the previous version")
	assert.Contains(t, third, strings.Repeat("가", 500))
	assert.True(t, hasNoteContaining(res.Notes, "Expanded the text over 3 attempts"))
}

func TestGenerateFailureOnLastAttemptFails(t *testing.T) {
	gw := &scriptedGateway{steps: []step{{length: 500}, {length: 600}, {err: errors.New("timeout")}}}

	res := newTestGenerator(gw).Generate(context.Background(), testRequest())

	assert.True(t, res.Failed)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, FailureText, res.Text)
}

func TestGenerateStopsOnCancelledContext(t *testing.T) {
	gw := &scriptedGateway{steps: []step{{length: 950}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := newTestGenerator(gw).Generate(ctx, testRequest())

	assert.True(t, res.Failed)
	assert.Empty(t, gw.calls)
	assert.ErrorIs(t, res.Err, context.Canceled)
}

func TestGenerateWithoutExplanations(t *testing.T) {
	gw := &scriptedGateway{steps: []step{{length: 950}}}
	req := testRequest()
	req.IncludeExplanations = false

	res := newTestGenerator(gw).Generate(context.Background(), req)

	require.Len(t, res.Notes, 1)
	assert.Contains(t, res.Notes[0], "Final length: 950")
}

func TestGenerateCountsRunesNotBytes(t *testing.T) {
	gw := &scriptedGateway{steps: []step{{length: 95}}}
	req := testRequest()
	req.TargetLength = 100

	res := newTestGenerator(gw).Generate(context.Background(), req)

	assert.Equal(t, OutcomeAccepted, res.Outcome)
	assert.Equal(t, 95, res.Length)
}

// fixedGateway 每次返回固定长度的文本，可并发调用
type fixedGateway struct{ length int }

func (g fixedGateway) Generate(context.Context, Instructions, GenerateOptions) (string, error) {
	return strings.Repeat("가", g.length), nil
}

func TestGenerateConcurrentInvocationsAreIndependent(t *testing.T) {
	g := newTestGenerator(fixedGateway{length: 950})

	const workers = 20
	results := make([]*GenerationResult, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = g.Generate(context.Background(), testRequest())
		}(i)
	}
	wg.Wait()

	for _, res := range results {
		require.NotNil(t, res)
		assert.Equal(t, OutcomeAccepted, res.Outcome)
		assert.Equal(t, 1, res.Attempts)
		assert.Equal(t, 950, res.Length)
	}
}

func TestAttemptOutcomeCarriesClassification(t *testing.T) {
	g := newTestGenerator(fixedGateway{length: 1200})
	band := Band(1000)

	out := g.attempt(context.Background(), testRequest(), band, 1, nil)

	assert.Equal(t, Over, out.class)
	assert.Equal(t, attemptOverflow, out.kind)
	assert.Equal(t, 1200, out.candidate.Length())
}
