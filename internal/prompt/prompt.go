package prompt

import (
	"os"
	"strings"
)

// DefaultSystemPrompt is the embedded fallback used when no prompt file is
// present alongside the binary.
const DefaultSystemPrompt = `Rewrite the following text to make it sound more natural and human-like.
Keep the same meaning and key information, but vary the sentence structure,
use more casual language where appropriate, and make it feel like a person wrote it naturally.
Do not add any preamble or explanation, just provide the rewritten text.`

// Load returns the system prompt from the given file, or the embedded
// default when the file does not exist. Read errors other than absence
// also fall back to the default; the prompt file is a convenience, not
// a requirement.
func Load(path string) string {
	if path == "" {
		return DefaultSystemPrompt
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultSystemPrompt
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return DefaultSystemPrompt
	}
	return text
}
