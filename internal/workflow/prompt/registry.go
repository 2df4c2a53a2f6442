package prompt

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"sync"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed templates/*.txt
var templatesFS embed.FS

type PromptID string

const (
	PromptDraftInitialV1  PromptID = "draft_initial_v1"
	PromptDraftExpandV1   PromptID = "draft_expand_v1"
	PromptDraftCondenseV1 PromptID = "draft_condense_v1"
)

const draftSystemFile = "templates/draft_system_v1.txt"

type Registry struct {
	mu    sync.RWMutex
	cache map[PromptID]einoprompt.ChatTemplate
}

func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[PromptID]einoprompt.ChatTemplate),
	}
}

func (r *Registry) ChatTemplate(id PromptID) (einoprompt.ChatTemplate, error) {
	if r == nil {
		return nil, fmt.Errorf("prompt registry is nil")
	}

	r.mu.RLock()
	if tpl, ok := r.cache[id]; ok {
		r.mu.RUnlock()
		return tpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.cache[id]; ok {
		return tpl, nil
	}

	systemPath, userPath, err := resolvePromptFiles(id)
	if err != nil {
		return nil, err
	}
	system, err := readEmbeddedText(systemPath)
	if err != nil {
		return nil, err
	}
	user, err := readEmbeddedText(userPath)
	if err != nil {
		return nil, err
	}

	tpl := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(system),
		schema.UserMessage(user),
	)
	r.cache[id] = tpl
	return tpl, nil
}

// Render 渲染模板并拆分为 system / user 两段文本
func (r *Registry) Render(ctx context.Context, id PromptID, vars map[string]any) (system string, user string, err error) {
	tpl, err := r.ChatTemplate(id)
	if err != nil {
		return "", "", err
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", "", fmt.Errorf("format prompt %s: %w", id, err)
	}
	for _, m := range msgs {
		if m == nil {
			continue
		}
		switch m.Role {
		case schema.System:
			system = m.Content
		case schema.User:
			user = m.Content
		}
	}
	if strings.TrimSpace(user) == "" {
		return "", "", fmt.Errorf("prompt %s rendered an empty user message", id)
	}
	return system, user, nil
}

func resolvePromptFiles(id PromptID) (systemFile string, userFile string, err error) {
	switch id {
	case PromptDraftInitialV1:
		return draftSystemFile, "templates/draft_initial_v1.user.txt", nil
	case PromptDraftExpandV1:
		return draftSystemFile, "templates/draft_expand_v1.user.txt", nil
	case PromptDraftCondenseV1:
		return draftSystemFile, "templates/draft_condense_v1.user.txt", nil
	default:
		return "", "", fmt.Errorf("unknown prompt id: %s", id)
	}
}

func readEmbeddedText(path string) (string, error) {
	b, err := templatesFS.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
