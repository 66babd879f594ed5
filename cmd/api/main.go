package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"genai-assistant/internal/chat"
	"genai-assistant/internal/config"
	"genai-assistant/internal/handlers"
	"genai-assistant/internal/http"
	"genai-assistant/internal/ingest"
	"genai-assistant/internal/llm"
	"genai-assistant/internal/retriever"
	"genai-assistant/internal/storage"
	"genai-assistant/internal/vectorstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format.
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	// Initialize database.
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()
	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	docRepo := storage.NewDocumentRepo(db)
	chunkRepo := storage.NewChunkRepo(db)

	ctx := context.Background()

	// All external client handles are constructed here, once, and injected
	// into the pipeline; services hold non-owning references.
	offline := retriever.NewOffline()
	var docRetriever retriever.Retriever = offline
	var embedder *llm.EmbeddingsClient
	var vectorStore vectorstore.VectorStore
	retrievalLive := false

	if cfg.RetrievalConfigured() {
		qdrantStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
		if err != nil {
			slog.Warn("Failed to create Qdrant client, retrieval falls back to offline catalog", "error", err)
		} else if err := qdrantStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.EmbeddingVectorSize); err != nil {
			slog.Warn("Failed to ensure Qdrant collection, retrieval falls back to offline catalog", "error", err)
		} else {
			embedder = llm.NewEmbeddingsClient(cfg.EmbeddingAPIKey, cfg.EmbeddingBaseURL, cfg.EmbeddingModel, cfg.EmbeddingVectorSize)
			vectorStore = qdrantStore
			live := retriever.NewVector(embedder, vectorStore, chunkRepo, cfg.QdrantCollection)
			docRetriever = retriever.NewFailover(live, offline)
			retrievalLive = true
			slog.Info("Live retrieval enabled", "collection", cfg.QdrantCollection, "vector_size", cfg.EmbeddingVectorSize)
		}
	} else {
		slog.Info("Vector index credentials not set, using offline retrieval catalog")
	}

	var streamer chat.Streamer
	var transcriber handlers.Transcriber
	if cfg.GenerationConfigured() {
		client := llm.NewClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.ChatModel, cfg.WhisperModel)
		streamer = client
		transcriber = client
		slog.Info("LLM provider configured", "model", cfg.ChatModel)
	} else {
		slog.Info("GROQ_API_KEY not set, chat uses mock responses")
	}

	chatService := chat.NewService(streamer, docRetriever)
	pipeline := ingest.NewPipeline(docRepo, chunkRepo, embedderOrNil(embedder), vectorStore, cfg.QdrantCollection)

	deps := &http.Deps{
		ChatService:    chatService,
		Ingestor:       pipeline,
		Transcriber:    transcriber,
		GenerationLive: cfg.GenerationConfigured(),
		RetrievalLive:  retrievalLive,
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}

// embedderOrNil keeps a nil *EmbeddingsClient from becoming a non-nil
// interface value when retrieval is offline.
func embedderOrNil(c *llm.EmbeddingsClient) retriever.Embedder {
	if c == nil {
		return nil
	}
	return c
}
