package dto

import (
	"strings"

	"resume-ai-api/internal/application/draft"
)

// DefaultModel 请求未指定模型时使用
const DefaultModel = "gpt-4"

// GenerateResumeRequest 改写请求；字符串长度按字符计算
type GenerateResumeRequest struct {
	Question        string `json:"question" binding:"required,max=1000"`
	Draft           string `json:"draft" binding:"required,max=5000"`
	WordLimit       int    `json:"wordLimit" binding:"required,gt=0"`
	Company         string `json:"company" binding:"required,max=100"`
	Position        string `json:"position" binding:"required,max=100"`
	AIModel         string `json:"aiModel" binding:"max=64"`
	IncludeComments *bool  `json:"includeComments"`
}

// BlankField 返回第一个只包含空白的必填字段名
func (r *GenerateResumeRequest) BlankField() string {
	for _, f := range []struct {
		name  string
		value string
	}{
		{"question", r.Question},
		{"draft", r.Draft},
		{"company", r.Company},
		{"position", r.Position},
	} {
		if strings.TrimSpace(f.value) == "" {
			return f.name
		}
	}
	return ""
}

// ToGenerationRequest 补齐默认值后转换为应用层请求
func (r *GenerateResumeRequest) ToGenerationRequest() draft.GenerationRequest {
	model := strings.TrimSpace(r.AIModel)
	if model == "" {
		model = DefaultModel
	}
	include := true
	if r.IncludeComments != nil {
		include = *r.IncludeComments
	}
	return draft.GenerationRequest{
		Question:            r.Question,
		Draft:               r.Draft,
		TargetLength:        r.WordLimit,
		Organization:        r.Company,
		Role:                r.Position,
		Model:               model,
		IncludeExplanations: include,
	}
}

// GenerationMeta 生成过程的附加信息
type GenerationMeta struct {
	Outcome  string `json:"outcome"`
	Attempts int    `json:"attempts"`
	Length   int    `json:"length"`
	Minimum  int    `json:"minimum"`
	Maximum  int    `json:"maximum"`
}

// GenerateResumeResponse 改写响应；失败时 Error 非空
type GenerateResumeResponse struct {
	ImprovedResume string          `json:"improvedResume"`
	Comments       []string        `json:"comments"`
	Error          string          `json:"error,omitempty"`
	Meta           *GenerationMeta `json:"meta,omitempty"`
}

// ToGenerateResumeResponse 转换应用层结果
func ToGenerateResumeResponse(res *draft.GenerationResult) GenerateResumeResponse {
	if res.Failed {
		return GenerateResumeResponse{
			ImprovedResume: res.Text,
			Comments:       []string{},
			Error:          res.ErrorMessage,
		}
	}
	comments := res.Notes
	if comments == nil {
		comments = []string{}
	}
	return GenerateResumeResponse{
		ImprovedResume: res.Text,
		Comments:       comments,
		Meta: &GenerationMeta{
			Outcome:  string(res.Outcome),
			Attempts: res.Attempts,
			Length:   res.Length,
			Minimum:  res.Band.Minimum,
			Maximum:  res.Band.Maximum,
		},
	}
}

// GenerateResumeError 请求层面的错误，沿用改写响应的结构
func GenerateResumeError(message string) GenerateResumeResponse {
	return GenerateResumeResponse{
		ImprovedResume: draft.FailureText,
		Comments:       []string{},
		Error:          message,
	}
}

// ModelResponse 模型目录条目
type ModelResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Available   bool   `json:"available"`
}

// ModelListResponse 模型目录
type ModelListResponse struct {
	Models  []ModelResponse `json:"models"`
	Default string          `json:"default"`
}
