package draft

import "math"

// Sampling 采样参数；后续尝试逐步降低温度以收敛长度
type Sampling struct {
	Temperature     float64
	MinTemperature  float64
	TemperatureStep float64
	MaxTokens       int
}

// DefaultSampling 与原服务的 0.7 / 2000 保持一致
func DefaultSampling() Sampling {
	return Sampling{
		Temperature:     0.7,
		MinTemperature:  0.3,
		TemperatureStep: 0.2,
		MaxTokens:       2000,
	}
}

func (s Sampling) withDefaults() Sampling {
	d := DefaultSampling()
	if s.Temperature <= 0 {
		s.Temperature = d.Temperature
	}
	if s.MinTemperature <= 0 || s.MinTemperature > s.Temperature {
		s.MinTemperature = math.Min(d.MinTemperature, s.Temperature)
	}
	if s.TemperatureStep < 0 {
		s.TemperatureStep = 0
	}
	if s.MaxTokens <= 0 {
		s.MaxTokens = d.MaxTokens
	}
	return s
}

// optionsFor 计算第 attempt 次尝试的生成参数
func (s Sampling) optionsFor(model string, attempt int) GenerateOptions {
	t := s.Temperature - float64(attempt-1)*s.TemperatureStep
	if t < s.MinTemperature {
		t = s.MinTemperature
	}
	// 保留两位小数，避免 0.7-0.2 之类的浮点尾数进入请求
	t = math.Round(t*100) / 100
	return GenerateOptions{
		Model:       model,
		Attempt:     attempt,
		Temperature: float32(t),
		MaxTokens:   s.MaxTokens,
	}
}
