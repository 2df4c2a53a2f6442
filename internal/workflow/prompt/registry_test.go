package prompt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCachesTemplates(t *testing.T) {
	r := NewRegistry()

	a, err := r.ChatTemplate(PromptDraftInitialV1)
	require.NoError(t, err)
	b, err := r.ChatTemplate(PromptDraftInitialV1)
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestRegistryUnknownID(t *testing.T) {
	_, err := NewRegistry().ChatTemplate(PromptID("nope"))
	assert.Error(t, err)
}

func TestRegistryNil(t *testing.T) {
	var r *Registry
	_, err := r.ChatTemplate(PromptDraftInitialV1)
	assert.Error(t, err)
}

func TestRenderInitial(t *testing.T) {
	system, user, err := NewRegistry().Render(context.Background(), PromptDraftInitialV1, map[string]any{
		"question":     "Why us?",
		"draft":        "I like {braces} in my draft.",
		"organization": "Acme",
		"role":         "Backend Engineer",
		"minimum":      900,
		"maximum":      1000,
	})
	require.NoError(t, err)

	assert.Contains(t, system, "STAR")
	assert.Contains(t, user, "Why us?")
	assert.Contains(t, user, "I like {braces} in my draft.")
	assert.Contains(t, user, "between 900 and 1000 characters")
}
