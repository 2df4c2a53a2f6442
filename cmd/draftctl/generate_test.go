package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-ai-api/internal/application/draft"
)

func TestReadDraftFromStdin(t *testing.T) {
	got, err := readDraft("-", strings.NewReader("my draft"))
	require.NoError(t, err)
	assert.Equal(t, "my draft", got)

	_, err = readDraft("-", strings.NewReader("   "))
	assert.Error(t, err)
}

func TestBuildRequest(t *testing.T) {
	req, err := buildRequest(generateFlags{
		question: "q", limit: 800, company: "Acme", position: "SRE", model: "gpt-4", noNotes: true,
	}, "d")
	require.NoError(t, err)
	assert.Equal(t, 800, req.TargetLength)
	assert.False(t, req.IncludeExplanations)

	_, err = buildRequest(generateFlags{limit: 0}, "d")
	assert.Error(t, err)
}

func TestPrintResultText(t *testing.T) {
	var buf bytes.Buffer
	err := printResult(&buf, &draft.GenerationResult{Text: "essay", Notes: []string{"a", "b"}}, false)
	require.NoError(t, err)
	assert.Equal(t, "essay\n\n- a\n- b\n", buf.String())
}

func TestPrintResultJSON(t *testing.T) {
	var buf bytes.Buffer
	err := printResult(&buf, &draft.GenerationResult{
		Text: "essay", Outcome: draft.OutcomeAccepted, Attempts: 2, Band: draft.Band(100),
	}, true)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"outcome": "accepted"`)
	assert.Contains(t, buf.String(), `"minimum": 90`)
}
