package llm

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"genai-assistant/internal/chat"
)

// Model parameters for chat completions. These are fixed; there is no
// operator-facing tuning surface.
const (
	chatTemperature = 0.7
	chatMaxTokens   = 2048
)

// Client wraps an OpenAI-compatible provider (Groq) for chat completions
// and audio transcription. It is created once at process start and shared
// read-only across requests.
type Client struct {
	api          *openai.Client
	chatModel    string
	whisperModel string
}

// NewClient creates a provider client. baseURL points the SDK at an
// OpenAI-compatible endpoint such as Groq's.
func NewClient(apiKey, baseURL, chatModel, whisperModel string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		api:          openai.NewClientWithConfig(cfg),
		chatModel:    chatModel,
		whisperModel: whisperModel,
	}
}

// StreamChat streams a chat completion, invoking onDelta with each chunk's
// text delta in arrival order. Chunks without a delta yield an empty
// string. Returns the provider error on failure; no retries.
func (c *Client) StreamChat(ctx context.Context, messages []chat.Message, onDelta func(delta string) error) error {
	req := openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Messages:    toProviderMessages(messages),
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
		Stream:      true,
	}

	stream, err := c.api.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to open completion stream: %w", err)
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read completion stream: %w", err)
		}
		if err := onDelta(deltaText(resp)); err != nil {
			return err
		}
	}
}

// Transcribe sends an audio blob to the provider's Whisper endpoint and
// returns the transcribed text. The filename is used by the SDK for format
// detection.
func (c *Client) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.whisperModel,
		FilePath: filename,
		Reader:   audio,
	})
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	return resp.Text, nil
}

// deltaText extracts the incremental text delta from a stream chunk.
// A chunk with no choices or an unset delta yields an empty string; that
// is a defined case, not an error.
func deltaText(resp openai.ChatCompletionStreamResponse) string {
	if len(resp.Choices) == 0 {
		return ""
	}
	return resp.Choices[0].Delta.Content
}

// toProviderMessages maps domain messages onto the SDK schema.
func toProviderMessages(messages []chat.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{
			Role:    providerRole(m.Role),
			Content: m.Content,
		})
	}
	return out
}

func providerRole(r chat.Role) string {
	switch r {
	case chat.RoleUser:
		return openai.ChatMessageRoleUser
	case chat.RoleSystem:
		return openai.ChatMessageRoleSystem
	default:
		return openai.ChatMessageRoleAssistant
	}
}
