package classifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildModerationPrompt(t *testing.T) {
	content := "Hello <world> with \"quotes\" and\nnewlines, 100% verbatim"

	prompt := BuildModerationPrompt(content)

	// The submitted content is embedded verbatim, untruncated.
	assert.Contains(t, prompt, content)

	// The prompt demands the three-field JSON verdict.
	assert.Contains(t, prompt, `"result"`)
	assert.Contains(t, prompt, `"reason"`)
	assert.Contains(t, prompt, `"score"`)
	assert.Contains(t, prompt, "approved")
	assert.Contains(t, prompt, "rejected")
}

func TestBuildModerationPromptStatesPolicy(t *testing.T) {
	prompt := BuildModerationPrompt("anything")

	for _, category := range []string{"violent", "discriminatory", "sexual", "harassment", "spam", "personal information"} {
		assert.True(t, strings.Contains(prompt, category), "prompt should mention %q", category)
	}
}

func TestBuildModerationPromptIsDeterministic(t *testing.T) {
	assert.Equal(t, BuildModerationPrompt("same input"), BuildModerationPrompt("same input"))
}
