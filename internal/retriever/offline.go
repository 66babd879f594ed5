package retriever

import (
	"context"
	"strings"
)

// offlineCatalog is the fixed set of topic snippets served when the vector
// index is unavailable. Small on purpose: it only needs to cover the topics
// the assistant is pitched at.
var offlineCatalog = []Snippet{
	{
		Text: `RAG (Retrieval-Augmented Generation) combines retrieval and generation:
1. Retrieval: Search relevant documents from a knowledge base
2. Augmentation: Add retrieved context to the prompt
3. Generation: LLM generates response using the context`,
		Meta: map[string]string{"source": "knowledge-base", "topic": "rag"},
	},
	{
		Text: `Popular vector databases for GenAI:
- Pinecone: Managed, scalable, production-ready
- ChromaDB: Open-source, great for prototypes
- Weaviate: Feature-rich with GraphQL API
- Qdrant: High-performance, Rust-based`,
		Meta: map[string]string{"source": "knowledge-base", "topic": "vector-databases"},
	},
	{
		Text: `LLM inference platforms:
- Groq: LPU hardware, ultra-fast token throughput
- Llama 3.3-70B: latest open-weights flagship model
- Whisper large-v3: state-of-the-art speech recognition
Hosted OpenAI-compatible APIs make switching providers cheap.`,
		Meta: map[string]string{"source": "knowledge-base", "topic": "llm-inference"},
	},
}

// Offline serves keyword-filtered snippets from the built-in catalog.
// It never fails and never performs I/O.
type Offline struct {
	catalog []Snippet
}

// NewOffline creates an offline retriever over the built-in catalog.
func NewOffline() *Offline {
	return &Offline{catalog: offlineCatalog}
}

// Retrieve returns every catalog snippet whose text or topic contains the
// query, case-insensitively. No ranking is applied and k is not enforced;
// the result can never exceed the catalog size.
func (o *Offline) Retrieve(_ context.Context, query string, _ int) ([]Snippet, error) {
	q := strings.ToLower(query)
	var matches []Snippet
	for _, s := range o.catalog {
		if strings.Contains(strings.ToLower(s.Text), q) || strings.Contains(s.Meta["topic"], q) {
			matches = append(matches, s)
		}
	}
	return matches, nil
}
