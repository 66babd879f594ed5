package retriever

import (
	"context"
	"fmt"
	"strconv"

	"genai-assistant/internal/contextutil"
	"genai-assistant/internal/storage"
	"genai-assistant/internal/vectorstore"
)

// ChunkSource fetches chunk text by point ID. Satisfied by storage.ChunkRepo.
type ChunkSource interface {
	GetByID(ctx context.Context, id string) (*storage.Chunk, error)
}

// Vector retrieves snippets by embedding the query and searching the
// vector index. Vector search returns point IDs and payload metadata; the
// chunk text itself lives in the local store and is joined in by ID.
type Vector struct {
	embedder   Embedder
	store      vectorstore.VectorStore
	chunks     ChunkSource
	collection string
}

// NewVector creates a vector-index-backed retriever.
func NewVector(embedder Embedder, store vectorstore.VectorStore, chunks ChunkSource, collection string) *Vector {
	return &Vector{
		embedder:   embedder,
		store:      store,
		chunks:     chunks,
		collection: collection,
	}
}

// Retrieve embeds the query and returns the top-k index hits as snippets,
// in index score order. A single attempt is made; errors are returned to
// the caller (the failover wrapper decides what to do with them).
func (v *Vector) Retrieve(ctx context.Context, query string, k int) ([]Snippet, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}

	embeddings, err := v.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embedding returned for query")
	}

	results, err := v.store.Search(ctx, v.collection, embeddings[0], k)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	snippets := make([]Snippet, 0, len(results))
	for _, result := range results {
		chunk, err := v.chunks.GetByID(ctx, result.PointID)
		if err != nil {
			logger.WarnContext(ctx, "failed to fetch chunk text", "chunk_id", result.PointID, "error", err)
			continue
		}
		snippets = append(snippets, Snippet{
			Text: chunk.Text,
			Meta: metaStrings(result.Meta),
		})
	}

	logger.InfoContext(ctx, "vector retrieval completed", "query_length", len(query), "k", k, "snippets", len(snippets))
	return snippets, nil
}

// metaStrings flattens index payload values into string metadata.
func metaStrings(meta map[string]any) map[string]string {
	out := make(map[string]string, len(meta))
	for key, value := range meta {
		switch v := value.(type) {
		case string:
			out[key] = v
		case float64:
			out[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case int64:
			out[key] = strconv.FormatInt(v, 10)
		case bool:
			out[key] = strconv.FormatBool(v)
		default:
			out[key] = fmt.Sprintf("%v", v)
		}
	}
	return out
}
