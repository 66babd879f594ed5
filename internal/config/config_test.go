package config

import (
	"log/slog"
	"path/filepath"
	"testing"
)

// clearEnv blanks every variable Load reads so ambient shell state cannot
// leak into a test. t.Setenv restores the originals afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GROQ_API_KEY", "GROQ_BASE_URL", "CHAT_MODEL", "WHISPER_MODEL",
		"EMBEDDING_API_KEY", "EMBEDDING_BASE_URL", "EMBEDDING_MODEL", "EMBEDDING_VECTOR_SIZE",
		"QDRANT_URL", "QDRANT_COLLECTION",
		"DB_PATH", "API_PORT", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "data", "test.db"))
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.GroqBaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("GroqBaseURL = %q, want Groq default", cfg.GroqBaseURL)
	}
	if cfg.ChatModel != "llama-3.3-70b-versatile" {
		t.Errorf("ChatModel = %q, want llama-3.3-70b-versatile", cfg.ChatModel)
	}
	if cfg.WhisperModel != "whisper-large-v3" {
		t.Errorf("WhisperModel = %q, want whisper-large-v3", cfg.WhisperModel)
	}
	if cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("EmbeddingModel = %q, want text-embedding-3-small", cfg.EmbeddingModel)
	}
	if cfg.EmbeddingVectorSize != 1536 {
		t.Errorf("EmbeddingVectorSize = %d, want 1536", cfg.EmbeddingVectorSize)
	}
	if cfg.APIPort != "9000" {
		t.Errorf("APIPort = %q, want 9000", cfg.APIPort)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoadNeverFailsOnMissingCredentials(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no credentials failed: %v", err)
	}
	if cfg.GenerationConfigured() {
		t.Error("GenerationConfigured() = true without GROQ_API_KEY")
	}
	if cfg.RetrievalConfigured() {
		t.Error("RetrievalConfigured() = true without retrieval credentials")
	}
	if cfg.TranscriptionConfigured() {
		t.Error("TranscriptionConfigured() = true without GROQ_API_KEY")
	}
}

func TestConfiguredToggles(t *testing.T) {
	tests := []struct {
		name           string
		env            map[string]string
		wantGeneration bool
		wantRetrieval  bool
	}{
		{
			name:           "groq key enables generation and transcription only",
			env:            map[string]string{"GROQ_API_KEY": "gsk_test"},
			wantGeneration: true,
			wantRetrieval:  false,
		},
		{
			name: "full retrieval group",
			env: map[string]string{
				"QDRANT_URL":        "http://localhost:6333",
				"QDRANT_COLLECTION": "documents",
				"EMBEDDING_API_KEY": "sk_test",
			},
			wantGeneration: false,
			wantRetrieval:  true,
		},
		{
			name: "partial retrieval group stays offline",
			env: map[string]string{
				"QDRANT_URL":        "http://localhost:6333",
				"QDRANT_COLLECTION": "documents",
			},
			wantGeneration: false,
			wantRetrieval:  false,
		},
		{
			name: "collection alone is not enough",
			env: map[string]string{
				"QDRANT_COLLECTION": "documents",
				"EMBEDDING_API_KEY": "sk_test",
			},
			wantGeneration: false,
			wantRetrieval:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if cfg.GenerationConfigured() != tt.wantGeneration {
				t.Errorf("GenerationConfigured() = %v, want %v", cfg.GenerationConfigured(), tt.wantGeneration)
			}
			if cfg.RetrievalConfigured() != tt.wantRetrieval {
				t.Errorf("RetrievalConfigured() = %v, want %v", cfg.RetrievalConfigured(), tt.wantRetrieval)
			}
			if cfg.TranscriptionConfigured() != tt.wantGeneration {
				t.Errorf("TranscriptionConfigured() = %v, want %v (same key as generation)", cfg.TranscriptionConfigured(), tt.wantGeneration)
			}
		})
	}
}

func TestLoadVectorSizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int
		wantErr bool
	}{
		{"default", "", 1536, false},
		{"custom", "768", 768, false},
		{"not a number", "large", 0, true},
		{"zero", "0", 0, true},
		{"negative", "-5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("EMBEDDING_VECTOR_SIZE", tt.value)

			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Load() with EMBEDDING_VECTOR_SIZE=%q succeeded, want error", tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if cfg.EmbeddingVectorSize != tt.want {
				t.Errorf("EmbeddingVectorSize = %d, want %d", cfg.EmbeddingVectorSize, tt.want)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
