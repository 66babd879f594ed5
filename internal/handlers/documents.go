package handlers

import (
	"fmt"
	"io"
	"net/http"

	"genai-assistant/internal/contextutil"
	"genai-assistant/internal/ingest"
)

// maxUploadBytes caps the in-memory portion of a multipart upload.
const maxUploadBytes = 32 << 20

// DocumentsHandler accepts multipart document uploads and feeds them to
// the ingestion pipeline.
type DocumentsHandler struct {
	ingestor ingest.Ingestor
}

// NewDocumentsHandler creates a new DocumentsHandler.
func NewDocumentsHandler(ingestor ingest.Ingestor) *DocumentsHandler {
	return &DocumentsHandler{ingestor: ingestor}
}

// DocumentsResponse reports how much was ingested.
type DocumentsResponse struct {
	Success bool   `json:"success"`
	Files   int    `json:"files"`
	Chunks  int    `json:"chunks"`
	Message string `json:"message"`
}

// ServeHTTP handles POST /api/documents with one or more files under the
// "documents" form field.
func (h *DocumentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		logger.WarnContext(ctx, "invalid multipart form", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	headers := r.MultipartForm.File["documents"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "No files uploaded")
		return
	}

	files := make([]ingest.File, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			logger.WarnContext(ctx, "failed to open uploaded file", "file", header.Filename, "error", err)
			writeError(w, http.StatusBadRequest, "Failed to read uploaded file")
			return
		}
		content, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			logger.WarnContext(ctx, "failed to read uploaded file", "file", header.Filename, "error", err)
			writeError(w, http.StatusBadRequest, "Failed to read uploaded file")
			return
		}
		files = append(files, ingest.File{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Content:     content,
		})
	}

	result, err := h.ingestor.Ingest(ctx, files)
	if err != nil {
		logger.ErrorContext(ctx, "document ingestion failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to process documents")
		return
	}

	writeJSON(w, http.StatusOK, DocumentsResponse{
		Success: true,
		Files:   result.Files,
		Chunks:  result.Chunks,
		Message: fmt.Sprintf("Successfully processed %d files into %d chunks", result.Files, result.Chunks),
	})
}
