package handlers

import (
	"encoding/json"
	"net/http"

	"genai-assistant/internal/chat"
	"genai-assistant/internal/contextutil"
	"genai-assistant/internal/sse"
)

// ChatHandler streams chat responses over Server-Sent Events.
type ChatHandler struct {
	chat chat.Service
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(service chat.Service) *ChatHandler {
	return &ChatHandler{chat: service}
}

// ChatRequest represents the HTTP request payload for chat.
type ChatRequest struct {
	Messages []chat.Message `json:"messages"`
}

// ServeHTTP handles POST /api/chat. The response is an event stream of
// content frames ending in exactly one terminal frame.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Messages) == 0 {
		logger.WarnContext(ctx, "chat request without messages")
		writeError(w, http.StatusBadRequest, "Messages array is required")
		return
	}

	stream, err := sse.NewWriter(w)
	if err != nil {
		logger.ErrorContext(ctx, "streaming not supported by response writer")
		writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	// The producer goroutine is paced by these writes: the channel is
	// unbuffered, so each event is handed over only after the previous
	// frame went out.
	for event := range h.chat.Stream(ctx, req.Messages) {
		switch event.Type {
		case chat.EventContent:
			stream.WriteContent(event.Content)
		case chat.EventError:
			stream.WriteError(event.Content)
		case chat.EventDone:
			stream.WriteDone()
		}
	}

	if !stream.Terminated() {
		// The producer bailed out without a terminal event, which only
		// happens when the client went away mid-stream.
		logger.InfoContext(ctx, "chat stream abandoned before completion")
	}
}
