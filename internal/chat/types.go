package chat

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is a single entry in a conversation history, oldest first.
// History is caller-supplied on every request; nothing is persisted
// server-side between calls.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// EventType distinguishes the kinds of events on a response stream.
type EventType string

const (
	// EventContent carries an incremental text fragment.
	EventContent EventType = "content"
	// EventError signals abnormal termination. Terminal.
	EventError EventType = "error"
	// EventDone signals successful completion and carries the full
	// accumulated response text. Terminal.
	EventDone EventType = "done"
)

// Event is one unit on a response stream. A stream is a finite ordered
// sequence of content events followed by exactly one terminal event
// (done or error), after which the channel is closed.
type Event struct {
	Type    EventType
	Content string
}
