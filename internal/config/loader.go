// Package config 提供配置加载功能
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// DefaultDir 默认配置目录
const DefaultDir = "configs"

var envPattern = regexp.MustCompile(`\${(\w+)(:([^}]*))?}`)

// Load 从默认目录加载配置
func Load() (*Config, error) {
	return LoadFrom(DefaultDir)
}

// LoadFrom 从指定目录加载配置
// 按优先级加载：默认配置 -> 环境配置 -> 环境变量
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// 1. 加载默认配置
	if err := loadConfigFile(v, filepath.Join(dir, "config.yaml"), false); err != nil {
		return nil, err
	}

	// 2. 加载环境特定配置
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	envFile := filepath.Join(dir, fmt.Sprintf("config.%s.yaml", env))
	if err := loadConfigFile(v, envFile, true); err != nil {
		return nil, err
	}

	// 3. 绑定环境变量 (直接覆盖)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyModelDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadConfigFile 读取文件，执行环境变量替换，并加载到 viper
func loadConfigFile(v *viper.Viper, path string, optional bool) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	reader := strings.NewReader(expandEnv(string(content)))
	if v.ConfigFileUsed() == "" {
		if err := v.ReadConfig(reader); err != nil {
			return fmt.Errorf("failed to read processed config %s: %w", path, err)
		}
		v.SetConfigFile(path)
	} else {
		if err := v.MergeConfig(reader); err != nil {
			return fmt.Errorf("failed to merge processed config %s: %w", path, err)
		}
	}

	return nil
}

// expandEnv 替换字符串中的 ${VAR:default} 占位符
// 未定义且无默认值的变量保留原样，便于排查
func expandEnv(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		submatch := envPattern.FindStringSubmatch(match)
		key := submatch[1]
		hasDefault := submatch[2] != ""
		defVal := submatch[3]

		if val, ok := os.LookupEnv(key); ok {
			return val
		}
		if hasDefault {
			return defVal
		}
		return match
	})
}

// MustLoad 加载配置，失败时 panic
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// Validate 校验跨字段约束
func (c *Config) Validate() error {
	if c.Generation.MaxTokens <= 0 {
		return fmt.Errorf("generation.max_tokens must be positive")
	}
	if c.Generation.MinTemperature > c.Generation.Temperature {
		return fmt.Errorf("generation.min_temperature must not exceed generation.temperature")
	}
	for _, m := range c.LLM.Models {
		if strings.TrimSpace(m.ID) == "" {
			return fmt.Errorf("llm.models: model id is required")
		}
		if !m.Enabled {
			continue
		}
		p, ok := c.LLM.Providers[m.Provider]
		if !ok {
			return fmt.Errorf("llm.models: model %s references unknown provider %q", m.ID, m.Provider)
		}
		switch p.Driver {
		case DriverEino, DriverOpenAISDK, DriverMock:
		default:
			return fmt.Errorf("llm.providers.%s: unknown driver %q", m.Provider, p.Driver)
		}
	}
	return nil
}

// applyModelDefaults 补全 provider 驱动和模型目录的缺省字段
func applyModelDefaults(cfg *Config) {
	for name, p := range cfg.LLM.Providers {
		if strings.TrimSpace(p.Driver) == "" {
			p.Driver = DriverEino
		}
		p.Driver = strings.ToLower(strings.TrimSpace(p.Driver))
		cfg.LLM.Providers[name] = p
	}
	for i := range cfg.LLM.Models {
		m := &cfg.LLM.Models[i]
		if m.Provider == "" {
			m.Provider = cfg.LLM.DefaultProvider
		}
		if m.Upstream == "" {
			m.Upstream = m.ID
		}
		if m.Name == "" {
			m.Name = m.ID
		}
	}
}

// setDefaults 设置配置默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "resume-ai-api")
	v.SetDefault("app.version", "v0.0.0")
	v.SetDefault("app.env", "development")

	// HTTP 服务器默认值，写超时需覆盖三次 LLM 调用
	v.SetDefault("server.http.host", "0.0.0.0")
	v.SetDefault("server.http.port", 8080)
	v.SetDefault("server.http.read_timeout", "30s")
	v.SetDefault("server.http.write_timeout", "300s")
	v.SetDefault("server.http.idle_timeout", "120s")
	v.SetDefault("server.http.shutdown_timeout", "30s")

	// Redis 默认值
	v.SetDefault("cache.redis.enabled", false)
	v.SetDefault("cache.redis.host", "localhost")
	v.SetDefault("cache.redis.port", 6379)
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.pool_size", 20)
	v.SetDefault("cache.redis.min_idle_conns", 2)
	v.SetDefault("cache.redis.dial_timeout", "5s")
	v.SetDefault("cache.redis.read_timeout", "3s")
	v.SetDefault("cache.redis.write_timeout", "3s")

	// LLM 默认值
	v.SetDefault("llm.default_provider", "openai")

	// 生成参数默认值
	v.SetDefault("generation.temperature", 0.7)
	v.SetDefault("generation.min_temperature", 0.3)
	v.SetDefault("generation.temperature_step", 0.2)
	v.SetDefault("generation.max_tokens", 2000)

	// 可观测性默认值
	v.SetDefault("observability.logging.level", "info")
	v.SetDefault("observability.logging.format", "json")
	v.SetDefault("observability.logging.output", "stdout")
	v.SetDefault("observability.tracing.enabled", false)
	v.SetDefault("observability.tracing.endpoint", "localhost:4317")
	v.SetDefault("observability.tracing.sample_rate", 1.0)
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.path", "/metrics")

	// 安全默认值
	v.SetDefault("security.rate_limit.enabled", true)
	v.SetDefault("security.rate_limit.requests_per_minute", 10)
	v.SetDefault("security.rate_limit.burst", 5)
	v.SetDefault("security.cors.allowed_origins", []string{"http://localhost:3000"})
}
