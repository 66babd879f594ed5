package retriever

import (
	"context"
	"strings"
	"testing"
)

func TestOfflineRetrieve(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantTopics []string
	}{
		{
			// Matching is whole-substring, not per-word: the complete
			// question has to appear in the snippet.
			name:       "full question does not match",
			query:      "what is RAG?",
			wantTopics: nil,
		},
		{
			name:       "keyword match on text",
			query:      "retrieval",
			wantTopics: []string{"rag"},
		},
		{
			name:       "keyword match on topic",
			query:      "vector-databases",
			wantTopics: []string{"vector-databases"},
		},
		{
			name:       "case insensitive",
			query:      "QDRANT",
			wantTopics: []string{"vector-databases"},
		},
		{
			name:       "multiple matches",
			query:      "llm",
			wantTopics: []string{"rag", "llm-inference"},
		},
		{
			name:       "no match",
			query:      "completely unrelated subject",
			wantTopics: nil,
		},
	}

	offline := NewOffline()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snippets, err := offline.Retrieve(context.Background(), tt.query, 5)
			if err != nil {
				t.Fatalf("Retrieve(%q) unexpected error: %v", tt.query, err)
			}
			var topics []string
			for _, s := range snippets {
				topics = append(topics, s.Meta["topic"])
			}
			if strings.Join(topics, ",") != strings.Join(tt.wantTopics, ",") {
				t.Errorf("Retrieve(%q) topics = %v, want %v", tt.query, topics, tt.wantTopics)
			}
		})
	}
}

func TestOfflineRetrieveIgnoresK(t *testing.T) {
	// The catalog is the ceiling; k neither truncates nor errors.
	offline := NewOffline()
	snippets, err := offline.Retrieve(context.Background(), "", 1)
	if err != nil {
		t.Fatalf("Retrieve() unexpected error: %v", err)
	}
	if len(snippets) != len(offlineCatalog) {
		t.Errorf("empty query matched %d snippets, want whole catalog (%d)", len(snippets), len(offlineCatalog))
	}
}
