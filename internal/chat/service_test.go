package chat_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"genai-assistant/internal/chat"
	"genai-assistant/internal/chat/mocks"
	"genai-assistant/internal/retriever"
	retrievermocks "genai-assistant/internal/retriever/mocks"
)

func init() {
	// Suppress service logs for cleaner test output.
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// collect drains a stream into content fragments and the terminal event.
func collect(t *testing.T, events <-chan chat.Event) (contents []string, terminal *chat.Event) {
	t.Helper()
	for ev := range events {
		switch ev.Type {
		case chat.EventContent:
			if terminal != nil {
				t.Fatal("content event received after terminal event")
			}
			contents = append(contents, ev.Content)
		default:
			if terminal != nil {
				t.Fatalf("second terminal event %q received", ev.Type)
			}
			e := ev
			terminal = &e
		}
	}
	return contents, terminal
}

func TestServiceStream_UnconfiguredUsesMockGenerator(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No EXPECT on the retriever: an unconfigured service must never
	// retrieve, and must never attempt a provider call.
	mockRetriever := retrievermocks.NewMockRetriever(ctrl)
	svc := chat.NewService(nil, mockRetriever, chat.WithMockDelay(0))

	history := []chat.Message{{Role: chat.RoleUser, Content: "hello"}}
	contents, terminal := collect(t, svc.Stream(context.Background(), history))

	want := chat.MockResponse("hello")
	got := strings.Join(contents, "")
	if got != want {
		t.Errorf("streamed text = %q, want canned greeting", got)
	}
	for i, fragment := range contents {
		if len([]rune(fragment)) != 1 {
			t.Fatalf("fragment %d = %q, want single characters on the mock path", i, fragment)
		}
	}
	if terminal == nil || terminal.Type != chat.EventDone {
		t.Fatalf("terminal event = %+v, want done", terminal)
	}
	if terminal.Content != want {
		t.Errorf("done event text = %q, want full canned response", terminal.Content)
	}
}

func TestServiceStream_ConfiguredStreamsProviderDeltas(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStreamer := mocks.NewMockStreamer(ctrl)
	mockRetriever := retrievermocks.NewMockRetriever(ctrl)

	snippets := []retriever.Snippet{
		{Text: "RAG is retrieval plus generation."},
		{Text: "Embeddings power similarity search."},
	}
	mockRetriever.EXPECT().
		Retrieve(gomock.Any(), "what is rag", 5).
		Return(snippets, nil)

	deltas := []string{"RAG ", "", "means retrieval", "-augmented generation."}
	mockStreamer.EXPECT().
		StreamChat(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, messages []chat.Message, onDelta func(string) error) error {
			if len(messages) == 0 || messages[0].Role != chat.RoleSystem {
				t.Fatal("provider messages must start with the system message")
			}
			system := messages[0].Content
			if !strings.Contains(system, "Relevant context:") {
				t.Errorf("system message missing context header: %q", system)
			}
			for _, s := range snippets {
				if !strings.Contains(system, s.Text) {
					t.Errorf("system message missing snippet %q", s.Text)
				}
			}
			for _, d := range deltas {
				if err := onDelta(d); err != nil {
					return err
				}
			}
			return nil
		})

	svc := chat.NewService(mockStreamer, mockRetriever, chat.WithMockDelay(0))
	history := []chat.Message{
		{Role: chat.RoleUser, Content: "what is rag"},
		{Role: chat.RoleAssistant, Content: "previous answer"},
	}
	contents, terminal := collect(t, svc.Stream(context.Background(), history))

	if len(contents) != len(deltas) {
		t.Fatalf("got %d content events, want %d (deltas must not be merged or dropped)", len(contents), len(deltas))
	}
	for i, d := range deltas {
		if contents[i] != d {
			t.Errorf("content %d = %q, want %q", i, contents[i], d)
		}
	}
	want := strings.Join(deltas, "")
	if terminal == nil || terminal.Type != chat.EventDone {
		t.Fatalf("terminal event = %+v, want done", terminal)
	}
	if terminal.Content != want {
		t.Errorf("done event text = %q, want %q", terminal.Content, want)
	}
}

func TestServiceStream_QuotaErrorFallsBackToMock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStreamer := mocks.NewMockStreamer(ctrl)
	mockRetriever := retrievermocks.NewMockRetriever(ctrl)

	mockRetriever.EXPECT().
		Retrieve(gomock.Any(), gomock.Any(), 5).
		Return(nil, nil)
	mockStreamer.EXPECT().
		StreamChat(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("status 402: your credit balance is too low"))

	svc := chat.NewService(mockStreamer, mockRetriever, chat.WithMockDelay(0))
	history := []chat.Message{{Role: chat.RoleUser, Content: "hello"}}
	contents, terminal := collect(t, svc.Stream(context.Background(), history))

	want := chat.MockResponse("hello")
	if got := strings.Join(contents, ""); got != want {
		t.Errorf("fallback streamed text = %q, want canned response", got)
	}
	if terminal == nil || terminal.Type != chat.EventDone {
		t.Fatalf("terminal event = %+v, want done after quota fallback", terminal)
	}
}

func TestServiceStream_OtherErrorSurfacesErrorEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStreamer := mocks.NewMockStreamer(ctrl)
	mockRetriever := retrievermocks.NewMockRetriever(ctrl)

	mockRetriever.EXPECT().
		Retrieve(gomock.Any(), gomock.Any(), 5).
		Return(nil, nil)
	mockStreamer.EXPECT().
		StreamChat(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("connection reset by peer"))

	svc := chat.NewService(mockStreamer, mockRetriever, chat.WithMockDelay(0))
	history := []chat.Message{{Role: chat.RoleUser, Content: "hello"}}
	contents, terminal := collect(t, svc.Stream(context.Background(), history))

	if len(contents) != 0 {
		t.Errorf("got %d content events before failure, want 0", len(contents))
	}
	if terminal == nil || terminal.Type != chat.EventError {
		t.Fatalf("terminal event = %+v, want error", terminal)
	}
}

func TestServiceStream_RetrievalErrorDoesNotAbortTurn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStreamer := mocks.NewMockStreamer(ctrl)
	mockRetriever := retrievermocks.NewMockRetriever(ctrl)

	mockRetriever.EXPECT().
		Retrieve(gomock.Any(), gomock.Any(), 5).
		Return(nil, errors.New("index unreachable"))
	mockStreamer.EXPECT().
		StreamChat(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, messages []chat.Message, onDelta func(string) error) error {
			if strings.Contains(messages[0].Content, "Relevant context:") {
				t.Error("system message must not carry a context block when retrieval failed")
			}
			return onDelta("ok")
		})

	svc := chat.NewService(mockStreamer, mockRetriever, chat.WithMockDelay(0))
	history := []chat.Message{{Role: chat.RoleUser, Content: "hello"}}
	contents, terminal := collect(t, svc.Stream(context.Background(), history))

	if got := strings.Join(contents, ""); got != "ok" {
		t.Errorf("streamed text = %q, want %q", got, "ok")
	}
	if terminal == nil || terminal.Type != chat.EventDone {
		t.Fatalf("terminal event = %+v, want done", terminal)
	}
}

func TestServiceStream_EmptyHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRetriever := retrievermocks.NewMockRetriever(ctrl)
	svc := chat.NewService(nil, mockRetriever, chat.WithMockDelay(0))

	contents, terminal := collect(t, svc.Stream(context.Background(), nil))

	if len(contents) != 0 {
		t.Errorf("got %d content events, want 0", len(contents))
	}
	if terminal == nil || terminal.Type != chat.EventError {
		t.Fatalf("terminal event = %+v, want error for empty history", terminal)
	}
}

func TestServiceStream_CancelledContextAbandonsStream(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRetriever := retrievermocks.NewMockRetriever(ctrl)
	svc := chat.NewService(nil, mockRetriever, chat.WithMockDelay(0))

	ctx, cancel := context.WithCancel(context.Background())
	events := svc.Stream(ctx, []chat.Message{{Role: chat.RoleUser, Content: "hello"}})

	// Take one event, then walk away. The producer must notice and close
	// the channel without blocking forever on the unbuffered send.
	if _, ok := <-events; !ok {
		t.Fatal("stream closed before delivering any event")
	}
	cancel()

	var sawTerminal bool
	for ev := range events {
		if ev.Type != chat.EventContent {
			sawTerminal = true
		}
	}
	if sawTerminal {
		// Delivery of an already-queued terminal event is a benign race;
		// what matters is that the channel closed.
		t.Log("terminal event raced with cancellation")
	}
}
