package chat

import (
	"strings"

	"genai-assistant/internal/retriever"
)

// personaPrompt is the fixed instruction every conversation is anchored to.
const personaPrompt = `You are an AI assistant specialized in GenAI (Generative AI) updates, tools, and best practices.
Use the following context to provide accurate and helpful responses.`

// contextHeader prefixes the retrieved-context block inside the system prompt.
const contextHeader = "Relevant context:\n"

// BuildContext joins retrieved snippets into a single context block.
// An empty snippet list produces an empty string with no header. Snippet
// order is preserved; no deduplication or length capping is applied.
func BuildContext(snippets []retriever.Snippet) string {
	if len(snippets) == 0 {
		return ""
	}
	parts := make([]string, 0, len(snippets))
	for _, s := range snippets {
		parts = append(parts, s.Text)
	}
	return contextHeader + strings.Join(parts, "\n\n")
}

// systemPrompt combines the persona with an optional context block to form
// the content of the system message.
func systemPrompt(contextBlock string) string {
	if contextBlock == "" {
		return personaPrompt
	}
	return personaPrompt + "\n" + contextBlock
}
