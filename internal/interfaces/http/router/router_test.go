package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-ai-api/internal/application/draft"
	"resume-ai-api/internal/config"
	"resume-ai-api/internal/infrastructure/llm"
	"resume-ai-api/internal/interfaces/http/handler"
	"resume-ai-api/internal/interfaces/http/middleware"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "resume-ai-api", Env: "test"},
		LLM: config.LLMConfig{
			DefaultProvider: "local",
			Providers: map[string]config.ProviderConfig{
				"local": {Driver: config.DriverMock},
			},
			Models: []config.ModelConfig{
				{ID: "gpt-4", Name: "GPT-4", Provider: "local", Enabled: true},
				{ID: "claude-3", Name: "Claude 3", Enabled: false},
			},
		},
		Observability: config.ObservabilityConfig{
			Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
		},
		Security: config.SecurityConfig{
			RateLimit: config.RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 2},
			CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		},
	}
}

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	catalog := llm.NewCatalog(cfg)
	gateway := llm.NewRouter(catalog, map[string]llm.Driver{config.DriverMock: llm.NewMockDriver()})
	gen := draft.NewGenerator(gateway, catalog, nil, draft.DefaultSampling())

	return NewWithDeps(cfg, RouterHandlers{
		Health: handler.NewHealthHandler(cfg, nil),
		Resume: handler.NewResumeHandler(gen),
		Model:  handler.NewModelHandler(catalog),
	}, middleware.NewLocalRateLimiter(cfg.Security.RateLimit.Burst))
}

func request(r *Router, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequestWithContext(context.Background(), method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, req)
	return w
}

func TestSystemRoutes(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/health", "/ready", "/live", "/api/health", "/metrics"} {
		w := request(r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestUnknownRouteReturnsNotFound(t *testing.T) {
	w := request(newTestRouter(t), http.MethodGet, "/api/unknown", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"error_code":"1004"`)
	assert.Contains(t, w.Body.String(), "GET /api/unknown")
}

func TestModelsRoute(t *testing.T) {
	w := request(newTestRouter(t), http.MethodGet, "/api/models", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"gpt-4"`)
	assert.Contains(t, w.Body.String(), `"available":false`)
}

func TestGenerateResumeEndToEndWithMockDriver(t *testing.T) {
	w := request(newTestRouter(t), http.MethodPost, "/api/generate-resume", map[string]any{
		"question":  "Tell us about a challenge.",
		"draft":     "I fixed a flaky deploy pipeline.",
		"wordLimit": 300,
		"company":   "Acme",
		"position":  "Platform Engineer",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	var resp struct {
		ImprovedResume string   `json:"improvedResume"`
		Comments       []string `json:"comments"`
		Meta           struct {
			Outcome  string `json:"outcome"`
			Attempts int    `json:"attempts"`
			Length   int    `json:"length"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "accepted", resp.Meta.Outcome)
	assert.Equal(t, 1, resp.Meta.Attempts)
	assert.Equal(t, 285, resp.Meta.Length)
	assert.NotEmpty(t, resp.Comments)
}

func TestGenerateResumeUnsupportedModel(t *testing.T) {
	w := request(newTestRouter(t), http.MethodPost, "/api/generate-resume", map[string]any{
		"question":  "q",
		"draft":     "d",
		"wordLimit": 300,
		"company":   "c",
		"position":  "p",
		"aiModel":   "claude-3",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unsupported AI model")
}

func TestGenerateResumeAcceptsModelIDInAnyCase(t *testing.T) {
	w := request(newTestRouter(t), http.MethodPost, "/api/generate-resume", map[string]any{
		"question":  "q",
		"draft":     "d",
		"wordLimit": 300,
		"company":   "c",
		"position":  "p",
		"aiModel":   "GPT-4",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"outcome":"accepted"`)
}

func TestGenerateResumeRateLimited(t *testing.T) {
	r := newTestRouter(t)
	body := map[string]any{"question": "q", "draft": "d", "wordLimit": 100, "company": "c", "position": "p"}

	assert.Equal(t, http.StatusOK, request(r, http.MethodPost, "/api/generate-resume", body).Code)
	assert.Equal(t, http.StatusOK, request(r, http.MethodPost, "/api/generate-resume", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, request(r, http.MethodPost, "/api/generate-resume", body).Code)
	// 其他路由不受限流影响
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/api/health", nil).Code)
}
