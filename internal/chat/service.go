package chat

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_service.go -package=mocks genai-assistant/internal/chat Service,Streamer

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"genai-assistant/internal/contextutil"
	"genai-assistant/internal/retriever"
)

// retrievalK is the number of snippets requested per chat turn.
const retrievalK = 5

// quotaErrSubstring marks provider failures that indicate an exhausted
// account rather than a transient or caller error. Those fall back to the
// mock generator instead of surfacing.
const quotaErrSubstring = "credit balance"

// Streamer streams a chat completion for the given provider-formatted
// messages, invoking onDelta with each incremental text fragment in arrival
// order. A fragment may be empty when a provider chunk carries no delta.
// This interface is defined from the service layer's perspective
// (consumer-first).
type Streamer interface {
	StreamChat(ctx context.Context, messages []Message, onDelta func(delta string) error) error
}

// Service turns a conversation history into a stream of response events.
type Service interface {
	// Stream produces a lazy, finite, non-restartable sequence of events
	// for the given history. The returned channel yields content events in
	// production order, then exactly one terminal event (done or error),
	// and is closed. The channel is unbuffered, so the consumer paces the
	// producer write by write.
	Stream(ctx context.Context, history []Message) <-chan Event
}

// Option configures a service.
type Option func(*service)

// WithMockDelay overrides the per-character delay used by the mock
// generator on both fallback paths. Intended for tests.
func WithMockDelay(d time.Duration) Option {
	return func(s *service) {
		s.unconfiguredDelay = d
		s.fallbackDelay = d
	}
}

// service implements Service.
type service struct {
	streamer          Streamer // nil when the provider is unconfigured
	retriever         retriever.Retriever
	unconfiguredDelay time.Duration
	fallbackDelay     time.Duration
	logger            *slog.Logger
}

// NewService creates a chat service. A nil streamer marks the provider as
// permanently unconfigured for the process lifetime: every call routes
// directly to the mock generator and no network call is ever attempted.
func NewService(streamer Streamer, r retriever.Retriever, opts ...Option) Service {
	s := &service{
		streamer:          streamer,
		retriever:         r,
		unconfiguredDelay: mockDelayUnconfigured,
		fallbackDelay:     mockDelayFallback,
		logger:            slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stream implements Service.
func (s *service) Stream(ctx context.Context, history []Message) <-chan Event {
	ch := make(chan Event)
	go func() {
		defer close(ch)
		s.run(ctx, history, ch)
	}()
	return ch
}

// run drives one chat turn. It always delivers exactly one terminal event
// unless the context is cancelled first (the caller is gone and the stream
// is abandoned).
func (s *service) run(ctx context.Context, history []Message, ch chan<- Event) {
	logger := contextutil.LoggerFromContext(ctx)

	if len(history) == 0 {
		emit(ctx, ch, Event{Type: EventError, Content: "messages history is empty"})
		return
	}

	question := lastUserContent(history)

	if s.streamer == nil {
		logger.InfoContext(ctx, "provider unconfigured, using mock generator")
		s.streamMock(ctx, question, s.unconfiguredDelay, ch)
		return
	}

	// Retrieval failure never aborts the chat turn; the failover retriever
	// already degrades to the offline catalog, and anything it still
	// returns is treated as "no context".
	snippets, err := s.retriever.Retrieve(ctx, question, retrievalK)
	if err != nil {
		logger.WarnContext(ctx, "retrieval failed, continuing without context", "error", err)
		snippets = nil
	}

	messages := formatHistory(systemPrompt(BuildContext(snippets)), history)

	var full strings.Builder
	err = s.streamer.StreamChat(ctx, messages, func(delta string) error {
		if !emit(ctx, ch, Event{Type: EventContent, Content: delta}) {
			return ctx.Err()
		}
		full.WriteString(delta)
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		if strings.Contains(err.Error(), quotaErrSubstring) {
			logger.WarnContext(ctx, "provider quota exhausted, falling back to mock generator", "error", err)
			s.streamMock(ctx, question, s.fallbackDelay, ch)
			return
		}
		logger.ErrorContext(ctx, "chat generation failed", "error", err)
		emit(ctx, ch, Event{Type: EventError, Content: "An error occurred"})
		return
	}

	logger.InfoContext(ctx, "chat turn completed", "response_length", full.Len())
	emit(ctx, ch, Event{Type: EventDone, Content: full.String()})
}

// emit sends ev unless the context is cancelled first. It reports whether
// the event was delivered.
func emit(ctx context.Context, ch chan<- Event, ev Event) bool {
	select {
	case ch <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
