package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"genai-assistant/internal/contextutil"
)

// Transcriber converts an audio blob into text. This interface is defined
// from the handler's perspective (consumer-first).
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

// TranscribeHandler proxies speech-to-text requests to the transcription
// provider. The generation pipeline never touches audio; it only ever
// receives the text produced here.
type TranscribeHandler struct {
	transcriber Transcriber // nil when the provider is unconfigured
}

// NewTranscribeHandler creates a new TranscribeHandler. A nil transcriber
// yields a fixed configuration-error response on every call.
func NewTranscribeHandler(transcriber Transcriber) *TranscribeHandler {
	return &TranscribeHandler{transcriber: transcriber}
}

// TranscribeResponse represents a successful transcription.
type TranscribeResponse struct {
	Text    string `json:"text"`
	Success bool   `json:"success"`
}

// ServeHTTP handles POST /api/speech-to-text with an "audio" form file.
func (h *TranscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if h.transcriber == nil {
		writeError(w, http.StatusInternalServerError, "Groq API key not configured")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		logger.WarnContext(ctx, "missing audio file", "error", err)
		writeError(w, http.StatusBadRequest, "No audio file provided")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	text, err := h.transcriber.Transcribe(ctx, header.Filename, file)
	if err != nil {
		logger.ErrorContext(ctx, "transcription failed", "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Speech-to-text failed: %s", err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, TranscribeResponse{
		Text:    text,
		Success: true,
	})
}
