package chat

import (
	"strings"
	"testing"

	"genai-assistant/internal/retriever"
)

func TestBuildContext(t *testing.T) {
	snippets := []retriever.Snippet{
		{Text: "RAG combines retrieval and generation."},
		{Text: "Qdrant is a vector database."},
	}

	t.Run("empty snippets produce empty string", func(t *testing.T) {
		if got := BuildContext(nil); got != "" {
			t.Errorf("BuildContext(nil) = %q, want empty string", got)
		}
	})

	t.Run("snippets joined in order with header", func(t *testing.T) {
		got := BuildContext(snippets)
		want := "Relevant context:\nRAG combines retrieval and generation.\n\nQdrant is a vector database."
		if got != want {
			t.Errorf("BuildContext() = %q, want %q", got, want)
		}
	})

	t.Run("idempotent for same input", func(t *testing.T) {
		if BuildContext(snippets) != BuildContext(snippets) {
			t.Error("BuildContext() is not deterministic for identical input")
		}
	})
}

func TestSystemPrompt(t *testing.T) {
	t.Run("no context keeps persona only", func(t *testing.T) {
		got := systemPrompt("")
		if got != personaPrompt {
			t.Errorf("systemPrompt(\"\") = %q, want persona only", got)
		}
		if strings.Contains(got, "Relevant context:") {
			t.Error("systemPrompt(\"\") must not contain a context header")
		}
	})

	t.Run("context appended after persona", func(t *testing.T) {
		block := BuildContext([]retriever.Snippet{{Text: "snippet"}})
		got := systemPrompt(block)
		if !strings.HasPrefix(got, personaPrompt) {
			t.Error("systemPrompt() must start with the persona")
		}
		if !strings.HasSuffix(got, "Relevant context:\nsnippet") {
			t.Errorf("systemPrompt() = %q, want context block at the end", got)
		}
	})
}
