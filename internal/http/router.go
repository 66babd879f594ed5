package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"genai-assistant/internal/chat"
	"genai-assistant/internal/handlers"
	"genai-assistant/internal/ingest"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	ChatService    chat.Service
	Ingestor       ingest.Ingestor
	Transcriber    handlers.Transcriber // nil when unconfigured
	GenerationLive bool
	RetrievalLive  bool
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	chatHandler := handlers.NewChatHandler(deps.ChatService)
	documentsHandler := handlers.NewDocumentsHandler(deps.Ingestor)
	transcribeHandler := handlers.NewTranscribeHandler(deps.Transcriber)
	healthHandler := handlers.NewHealthHandler(deps.GenerationLive, deps.RetrievalLive)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/chat", chatHandler)
		r.Method(http.MethodPost, "/documents", documentsHandler)
		r.Method(http.MethodPost, "/speech-to-text", transcribeHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
