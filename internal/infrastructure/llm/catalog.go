package llm

import (
	"strings"

	"resume-ai-api/internal/config"
)

// ModelInfo 对外展示的模型信息
type ModelInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Available   bool   `json:"available"`
}

// Route 模型到提供商的映射结果
type Route struct {
	Provider string
	Driver   string
	Upstream string
	Config   config.ProviderConfig
}

// Catalog 模型目录，决定哪些模型可用以及它们由哪个提供商服务
type Catalog struct {
	models []ModelInfo
	routes map[string]Route
}

// NewCatalog 从配置构建目录；未指定 provider 时使用默认提供商，provider 不存在的模型视为不可用
func NewCatalog(cfg *config.Config) *Catalog {
	c := &Catalog{routes: make(map[string]Route)}
	for _, m := range cfg.LLM.Models {
		id := strings.TrimSpace(m.ID)
		if id == "" {
			continue
		}
		provider := m.Provider
		if provider == "" {
			provider = cfg.LLM.DefaultProvider
		}
		p, ok := cfg.LLM.Providers[provider]
		available := m.Enabled && ok
		if available {
			upstream := m.Upstream
			if upstream == "" {
				upstream = id
			}
			c.routes[normalizeModelID(id)] = Route{
				Provider: provider,
				Driver:   p.Driver,
				Upstream: upstream,
				Config:   p,
			}
		}
		c.models = append(c.models, ModelInfo{
			ID:          id,
			Name:        m.Name,
			Description: m.Description,
			Available:   available,
		})
	}
	return c
}

// IsSupported 模型是否可用于生成，忽略大小写
func (c *Catalog) IsSupported(model string) bool {
	_, ok := c.Resolve(model)
	return ok
}

// Resolve 查找模型路由，忽略大小写与首尾空白
func (c *Catalog) Resolve(model string) (Route, bool) {
	r, ok := c.routes[normalizeModelID(model)]
	return r, ok
}

func normalizeModelID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Models 按配置顺序返回全部模型
func (c *Catalog) Models() []ModelInfo {
	out := make([]ModelInfo, len(c.models))
	copy(out, c.models)
	return out
}
