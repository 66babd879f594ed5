package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
//
// Behavior is toggled by the presence of credential groups rather than by
// explicit mode flags: a missing Groq key means canned offline chat, and a
// missing Qdrant URL, collection, or embedding key means offline retrieval.
type Config struct {
	// LLM provider (Groq, OpenAI-compatible API).
	GroqAPIKey   string
	GroqBaseURL  string
	ChatModel    string
	WhisperModel string

	// Embedding provider.
	EmbeddingAPIKey     string
	EmbeddingBaseURL    string
	EmbeddingModel      string
	EmbeddingVectorSize int

	// Vector index.
	QdrantURL        string
	QdrantCollection string

	// Local storage and server.
	DBPath    string
	APIPort   string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// If a .env file exists in the current directory or project root, it will be loaded
// automatically. Environment variables already set take precedence over .env values.
//
// Load never fails because a credential is missing; missing credentials select
// offline behavior instead.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up to find a .env next to go.mod, matching how the binary is
	// usually launched from a subdirectory during development.
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		GroqAPIKey:       os.Getenv("GROQ_API_KEY"),
		GroqBaseURL:      getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		ChatModel:        getEnv("CHAT_MODEL", "llama-3.3-70b-versatile"),
		WhisperModel:     getEnv("WHISPER_MODEL", "whisper-large-v3"),
		EmbeddingAPIKey:  os.Getenv("EMBEDDING_API_KEY"),
		EmbeddingBaseURL: getEnv("EMBEDDING_BASE_URL", "https://api.openai.com/v1"),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		QdrantURL:        os.Getenv("QDRANT_URL"),
		QdrantCollection: os.Getenv("QDRANT_COLLECTION"),
		DBPath:           getEnv("DB_PATH", "./data/genai-assistant.db"),
		APIPort:          getEnv("API_PORT", "9000"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
	}

	// The vector size must match the embedding model's output dimension.
	// text-embedding-3-small produces 1536-dimensional vectors.
	vectorSizeStr := getEnv("EMBEDDING_VECTOR_SIZE", "1536")
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("EMBEDDING_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("EMBEDDING_VECTOR_SIZE must be greater than 0")
	}
	cfg.EmbeddingVectorSize = vectorSize

	cfg.LogLevel = parseLogLevel(getEnv("LOG_LEVEL", "info"))

	// Create the data directory for the SQLite file if it doesn't exist.
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// GenerationConfigured reports whether the LLM provider can be used.
// When false, every chat call routes to the mock generator.
func (c *Config) GenerationConfigured() bool {
	return c.GroqAPIKey != ""
}

// RetrievalConfigured reports whether live vector retrieval can be used.
// All three values are required; if any is missing the retriever operates
// in offline mode rather than partially failing.
func (c *Config) RetrievalConfigured() bool {
	return c.QdrantURL != "" && c.QdrantCollection != "" && c.EmbeddingAPIKey != ""
}

// TranscriptionConfigured reports whether speech-to-text can be used.
// Transcription runs on the same Groq key as generation.
func (c *Config) TranscriptionConfigured() bool {
	return c.GroqAPIKey != ""
}

// parseLogLevel maps a level string to a slog.Level, defaulting to info.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
