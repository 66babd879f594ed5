package storage

import "time"

// Document represents an uploaded source document.
type Document struct {
	ID          string // UUID
	Filename    string
	ContentType string
	UploadedAt  time.Time
}

// Chunk represents a chunk of text from a document, indexed for vector
// search. The chunk ID doubles as the Qdrant point ID, so vector hits can
// be joined back to their text.
type Chunk struct {
	ID         string // UUID (same as Qdrant point ID)
	DocumentID string // Foreign key to documents.id
	ChunkIndex int    // Index within document (starts at 0)
	Text       string
}
