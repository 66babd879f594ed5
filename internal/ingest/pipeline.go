package ingest

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_ingestor.go -package=mocks genai-assistant/internal/ingest Ingestor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"genai-assistant/internal/contextutil"
	"genai-assistant/internal/retriever"
	"genai-assistant/internal/storage"
	"genai-assistant/internal/vectorstore"
)

// File is one uploaded document to ingest.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// Result summarizes an ingestion run.
type Result struct {
	Files  int
	Chunks int
}

// Ingestor turns uploaded files into retrievable chunks.
type Ingestor interface {
	Ingest(ctx context.Context, files []File) (Result, error)
}

// Pipeline chunks uploaded documents, records them in local storage, and
// indexes the chunks in the vector store when one is configured. With a
// nil embedder or vector store the pipeline still records documents and
// chunks locally but skips indexing, matching offline retrieval mode.
type Pipeline struct {
	docs       storage.DocumentStore
	chunks     storage.ChunkStore
	embedder   retriever.Embedder // nil in offline mode
	vectors    vectorstore.VectorStore
	collection string
}

// NewPipeline creates an ingestion pipeline. embedder and vectors may be
// nil when retrieval is offline.
func NewPipeline(docs storage.DocumentStore, chunks storage.ChunkStore, embedder retriever.Embedder, vectors vectorstore.VectorStore, collection string) *Pipeline {
	return &Pipeline{
		docs:       docs,
		chunks:     chunks,
		embedder:   embedder,
		vectors:    vectors,
		collection: collection,
	}
}

// Ingest processes each file: split into overlapping chunks, persist the
// document and chunk rows, then embed and upsert the chunks into the
// vector index. Files are processed in order; the first failure aborts the
// run and is returned to the caller.
func (p *Pipeline) Ingest(ctx context.Context, files []File) (Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var result Result
	for _, file := range files {
		chunkCount, err := p.ingestFile(ctx, file)
		if err != nil {
			return result, fmt.Errorf("failed to ingest %q: %w", file.Name, err)
		}
		result.Files++
		result.Chunks += chunkCount
	}

	logger.InfoContext(ctx, "ingestion completed", "files", result.Files, "chunks", result.Chunks)
	return result, nil
}

func (p *Pipeline) ingestFile(ctx context.Context, file File) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	contentType := file.ContentType
	if contentType == "" {
		contentType = "text/plain"
	}

	pieces, err := splitText(file.Name, string(file.Content))
	if err != nil {
		return 0, fmt.Errorf("failed to split text: %w", err)
	}

	doc := &storage.Document{
		ID:          uuid.NewString(),
		Filename:    file.Name,
		ContentType: contentType,
	}
	if err := p.docs.Insert(ctx, doc); err != nil {
		return 0, err
	}

	title := documentTitle(file.Name, file.Content)
	uploadedAt := time.Now().UTC().Format(time.RFC3339)

	points := make([]vectorstore.Point, 0, len(pieces))
	texts := make([]string, 0, len(pieces))
	for i, text := range pieces {
		chunk := &storage.Chunk{
			ID:         uuid.NewString(),
			DocumentID: doc.ID,
			ChunkIndex: i,
			Text:       text,
		}
		if err := p.chunks.Insert(ctx, chunk); err != nil {
			return 0, err
		}
		points = append(points, vectorstore.Point{
			ID: chunk.ID,
			Meta: map[string]any{
				"source":      file.Name,
				"title":       title,
				"type":        contentType,
				"upload_date": uploadedAt,
				"chunk_index": int64(i),
			},
		})
		texts = append(texts, text)
	}

	if p.embedder == nil || p.vectors == nil {
		logger.InfoContext(ctx, "vector store not available, skipping indexing", "file", file.Name, "chunks", len(pieces))
		return len(pieces), nil
	}

	if len(texts) > 0 {
		vectors, err := p.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return 0, fmt.Errorf("failed to embed chunks: %w", err)
		}
		if len(vectors) != len(points) {
			return 0, fmt.Errorf("expected %d vectors, got %d", len(points), len(vectors))
		}
		for i := range points {
			points[i].Vec = vectors[i]
		}
		if err := p.vectors.Upsert(ctx, p.collection, points); err != nil {
			return 0, fmt.Errorf("failed to index chunks: %w", err)
		}
	}

	logger.InfoContext(ctx, "document ingested", "file", file.Name, "title", title, "chunks", len(pieces))
	return len(pieces), nil
}
