package retriever

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_retriever.go -package=mocks genai-assistant/internal/retriever Retriever,Embedder

import "context"

// Snippet is a retrieved unit of content with its source metadata.
// Snippets are produced fresh per request and never mutated.
type Snippet struct {
	Text string
	Meta map[string]string
}

// Retriever returns up to k content snippets relevant to query, most
// relevant first. An empty result is valid.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]Snippet, error)
}

// Embedder turns texts into vectors for similarity search. This interface
// is defined from the retriever's perspective (consumer-first).
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
