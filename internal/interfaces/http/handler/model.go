package handler

import (
	"github.com/gin-gonic/gin"

	"resume-ai-api/internal/infrastructure/llm"
	"resume-ai-api/internal/interfaces/http/dto"
)

// ModelHandler 模型目录处理器
type ModelHandler struct {
	catalog *llm.Catalog
}

// NewModelHandler 创建模型目录处理器
func NewModelHandler(catalog *llm.Catalog) *ModelHandler {
	return &ModelHandler{catalog: catalog}
}

// ListModels 列出模型
// @Summary 模型列表
// @Description 列出全部模型及其可用状态
// @Tags Resume
// @Produce json
// @Success 200 {object} dto.Response[dto.ModelListResponse]
// @Router /api/models [get]
func (h *ModelHandler) ListModels(c *gin.Context) {
	models := h.catalog.Models()
	resp := dto.ModelListResponse{
		Models:  make([]dto.ModelResponse, 0, len(models)),
		Default: dto.DefaultModel,
	}
	for _, m := range models {
		resp.Models = append(resp.Models, dto.ModelResponse{
			ID:          m.ID,
			Name:        m.Name,
			Description: m.Description,
			Available:   m.Available,
		})
	}
	dto.Success(c, resp)
}
