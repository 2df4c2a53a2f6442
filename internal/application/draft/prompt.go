package draft

import (
	"context"
	"fmt"
	"strings"

	workflowprompt "resume-ai-api/internal/workflow/prompt"
)

// Direction 改写方向
type Direction int

const (
	Expand Direction = iota
	Condense
)

func (d Direction) String() string {
	if d == Condense {
		return "condense"
	}
	return "expand"
}

// directionFor 由上一次候选的分类推导方向；Within 不会进入改写
func directionFor(c Classification) Direction {
	if c == Over {
		return Condense
	}
	return Expand
}

// PromptComposer 根据尝试序号和上次候选长度组装指令，每条指令都写明数值区间
type PromptComposer struct {
	registry *workflowprompt.Registry
}

func NewPromptComposer(registry *workflowprompt.Registry) *PromptComposer {
	if registry == nil {
		registry = workflowprompt.NewRegistry()
	}
	return &PromptComposer{registry: registry}
}

// Initial 第一次尝试的指令
func (p *PromptComposer) Initial(ctx context.Context, req GenerationRequest, band LengthBand) (Instructions, error) {
	vars := baseVars(req, band)
	vars["draft"] = strings.TrimSpace(req.Draft)
	return p.render(ctx, workflowprompt.PromptDraftInitialV1, vars)
}

// Revision 以上一次候选为底稿的改写指令
func (p *PromptComposer) Revision(ctx context.Context, req GenerationRequest, prior Candidate, band LengthBand, dir Direction, attempt int) (Instructions, error) {
	vars := baseVars(req, band)
	vars["prior"] = prior.Text()
	vars["prior_length"] = prior.Length()
	vars["attempt"] = attempt

	id := workflowprompt.PromptDraftExpandV1
	switch dir {
	case Expand:
		vars["deficit"] = band.Minimum - prior.Length()
	case Condense:
		id = workflowprompt.PromptDraftCondenseV1
		vars["excess"] = prior.Length() - band.Maximum
	default:
		return Instructions{}, fmt.Errorf("unknown revision direction: %d", dir)
	}
	return p.render(ctx, id, vars)
}

func (p *PromptComposer) render(ctx context.Context, id workflowprompt.PromptID, vars map[string]any) (Instructions, error) {
	system, user, err := p.registry.Render(ctx, id, vars)
	if err != nil {
		return Instructions{}, err
	}
	return Instructions{System: system, User: user}, nil
}

func baseVars(req GenerationRequest, band LengthBand) map[string]any {
	return map[string]any{
		"question":     strings.TrimSpace(req.Question),
		"organization": strings.TrimSpace(req.Organization),
		"role":         strings.TrimSpace(req.Role),
		"minimum":      band.Minimum,
		"maximum":      band.Maximum,
	}
}
