// Package draft 实现长度受限的草稿改写：在最多三次 LLM 调用内把结果引导进目标长度区间。
package draft

import "context"

// MaxAttempts 单次请求的最大生成次数
const MaxAttempts = 3

// GenerationRequest 改写请求；字段非空等约束由边界层保证
type GenerationRequest struct {
	Question            string
	Draft               string
	TargetLength        int
	Organization        string
	Role                string
	Model               string
	IncludeExplanations bool
}

// Outcome 终止状态
type Outcome string

const (
	OutcomeAccepted           Outcome = "accepted"
	OutcomeExhaustedUnderflow Outcome = "exhausted_underflow"
	OutcomeExhaustedOverflow  Outcome = "exhausted_overflow"
	OutcomeFailed             Outcome = "failed"
)

// GenerationResult 每次调用恰好构造一次
type GenerationResult struct {
	Text  string
	Notes []string

	Failed bool
	// ErrorMessage 面向用户的固定提示
	ErrorMessage string
	// ErrorCause 内部原因，仅用于日志
	ErrorCause string
	// Err 带错误码的错误，供边界层映射状态码
	Err error

	Outcome  Outcome
	Attempts int
	Length   int
	Band     LengthBand
}

// Instructions 发送给生成服务的指令
type Instructions struct {
	System string
	User   string
}

// GenerateOptions 每次尝试的生成参数
type GenerateOptions struct {
	Model       string
	Attempt     int
	Temperature float32
	MaxTokens   int
}

// Gateway 文本生成能力；传输、鉴权与超时由实现负责
type Gateway interface {
	Generate(ctx context.Context, in Instructions, opts GenerateOptions) (string, error)
}

// ModelCatalog 模型支持检查
type ModelCatalog interface {
	IsSupported(model string) bool
}
