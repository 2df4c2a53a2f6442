package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-ai-api/internal/application/draft"
	"resume-ai-api/internal/interfaces/http/dto"
	apperrors "resume-ai-api/pkg/errors"
	"resume-ai-api/pkg/logger"
)

// DraftGenerator 改写能力
type DraftGenerator interface {
	Generate(ctx context.Context, req draft.GenerationRequest) *draft.GenerationResult
}

// ResumeHandler 自我介绍改写处理器
type ResumeHandler struct {
	generator DraftGenerator
}

// NewResumeHandler 创建改写处理器
func NewResumeHandler(generator DraftGenerator) *ResumeHandler {
	return &ResumeHandler{generator: generator}
}

// GenerateResume 改写草稿
// @Summary 改写自我介绍
// @Description 在字数限制的 90%-100% 区间内改写草稿，最多尝试三次
// @Tags Resume
// @Accept json
// @Produce json
// @Param body body dto.GenerateResumeRequest true "改写请求"
// @Success 200 {object} dto.GenerateResumeResponse
// @Failure 400 {object} dto.GenerateResumeResponse
// @Failure 500 {object} dto.GenerateResumeResponse
// @Router /api/generate-resume [post]
func (h *ResumeHandler) GenerateResume(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rejectInvalid(c, apperrors.ErrInvalidParam.WithDetail("invalid request body: "+err.Error()))
		return
	}
	if field := req.BlankField(); field != "" {
		rejectInvalid(c, apperrors.ErrInvalidParam.WithDetail(field+" must not be blank"))
		return
	}

	in := req.ToGenerationRequest()
	logger.Info(ctx, "resume generation requested",
		"company", in.Organization,
		"position", in.Role,
		"model", in.Model,
		"word_limit", in.TargetLength,
	)

	res := h.generator.Generate(ctx, in)
	if res.Failed {
		status := http.StatusInternalServerError
		var appErr *apperrors.AppError
		if errors.As(res.Err, &appErr) {
			status = appErr.HTTPStatus
		}
		logger.Error(ctx, "resume generation failed", res.Err, "cause", res.ErrorCause)
		c.JSON(status, dto.ToGenerateResumeResponse(res))
		return
	}

	c.JSON(http.StatusOK, dto.ToGenerateResumeResponse(res))
}

// rejectInvalid 参数错误沿用改写响应结构，error 字段给出原因
func rejectInvalid(c *gin.Context, appErr *apperrors.AppError) {
	logger.Warn(c.Request.Context(), "invalid generate request",
		"error_code", string(appErr.Code),
		"detail", appErr.Detail,
	)
	c.JSON(appErr.HTTPStatus, dto.GenerateResumeError(appErr.Detail))
}
