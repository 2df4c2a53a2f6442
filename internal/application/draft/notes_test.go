package draft

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotateAcceptedFirstAttempt(t *testing.T) {
	notes := annotate(annotation{
		req:      testRequest(),
		band:     Band(1000),
		attempts: 1,
		hasFirst: true,
		first:    Within,
		final:    NewCandidate(strings.Repeat("a", 950)),
		class:    Within,
	})

	require.Len(t, notes, 6)
	assert.Contains(t, notes[1], "Acme Corp")
	assert.Contains(t, notes[1], "Backend Engineer")
	assert.Contains(t, notes[3], "GPT-4")
	assert.Equal(t, "✅ Final length: 950 characters (target 900-1000, within range).", notes[5])
	for _, n := range notes {
		assert.NotContains(t, n, "⚠️")
		assert.NotContains(t, n, "attempts")
	}
}

func TestAnnotateExpandedOverAttempts(t *testing.T) {
	notes := annotate(annotation{
		req:      testRequest(),
		band:     Band(1000),
		attempts: 2,
		hasFirst: true,
		first:    Under,
		final:    NewCandidate(strings.Repeat("a", 920)),
		class:    Within,
	})

	assert.Contains(t, notes, "📝 Expanded the text over 2 attempts to fit the 900-1000 character range.")
}

func TestAnnotateCondensedOverAttempts(t *testing.T) {
	notes := annotate(annotation{
		req:      testRequest(),
		band:     Band(1000),
		attempts: 3,
		hasFirst: true,
		first:    Over,
		final:    NewCandidate(strings.Repeat("a", 990)),
		class:    Within,
	})

	assert.Contains(t, notes, "📝 Condensed the text over 3 attempts to fit the 900-1000 character range.")
}

func TestAnnotateRetryWithoutCandidate(t *testing.T) {
	notes := annotate(annotation{
		req:      testRequest(),
		band:     Band(1000),
		attempts: 2,
		final:    NewCandidate(strings.Repeat("a", 930)),
		class:    Within,
	})

	assert.Contains(t, notes, "📝 Generation was retried; 2 attempts were used.")
}

func TestAnnotateExhaustedUnderflowWarns(t *testing.T) {
	notes := annotate(annotation{
		req:      testRequest(),
		band:     Band(1000),
		attempts: 3,
		hasFirst: true,
		first:    Under,
		final:    NewCandidate(strings.Repeat("a", 400)),
		class:    Under,
	})

	assert.Contains(t, notes, "⚠️ The text is 500 characters short of the 900-character minimum; returned after 3 attempts.")
	assert.Equal(t, "⚠️ Final length: 400 characters (target 900-1000, under range).", notes[len(notes)-1])
}

func TestAnnotateExhaustedOverflowWarns(t *testing.T) {
	notes := annotate(annotation{
		req:      testRequest(),
		band:     Band(1000),
		attempts: 3,
		hasFirst: true,
		first:    Over,
		final:    NewCandidate(strings.Repeat("a", 1100)),
		class:    Over,
	})

	assert.Contains(t, notes, "⚠️ The text exceeds the 1000-character limit by 100 characters; returned after 3 attempts.")
	assert.Equal(t, "⚠️ Final length: 1100 characters (target 900-1000, over range).", notes[len(notes)-1])
}

func TestAnnotateWithoutExplanationsKeepsStatus(t *testing.T) {
	req := testRequest()
	req.IncludeExplanations = false

	notes := annotate(annotation{
		req:      req,
		band:     Band(1000),
		attempts: 1,
		hasFirst: true,
		final:    NewCandidate(strings.Repeat("a", 950)),
		class:    Within,
	})

	assert.Equal(t, []string{"✅ Final length: 950 characters (target 900-1000, within range)."}, notes)
}
