package chat

import (
	"context"
	"strings"
	"time"
)

// Mock generator cadence. The unconfigured path is slightly slower than the
// quota-fallback path; both route through the same delay parameter.
const (
	mockDelayUnconfigured = 20 * time.Millisecond
	mockDelayFallback     = 15 * time.Millisecond
)

// mockRule pairs trigger substrings with a canned response. Rules are
// evaluated in order and the first matching trigger wins.
type mockRule struct {
	triggers []string
	response string
}

var mockRules = []mockRule{
	{triggers: []string{"hello", "hi"}, response: mockGreetingResponse},
	{triggers: []string{"rag", "retrieval"}, response: mockRAGResponse},
	{triggers: []string{"vector", "database"}, response: mockVectorDBResponse},
}

// MockResponse selects a canned answer for the given question by
// case-insensitive substring matching against the trigger list. It is
// deterministic: the same question always selects the same response.
func MockResponse(question string) string {
	q := strings.ToLower(question)
	for _, rule := range mockRules {
		for _, trigger := range rule.triggers {
			if strings.Contains(q, trigger) {
				return rule.response
			}
		}
	}
	return mockDefaultResponse
}

// streamMock emits the canned answer for question one character at a time,
// suspending for delay between characters to emulate provider streaming,
// and finishes with a done event carrying the full text. It stops early
// when ctx is cancelled.
func (s *service) streamMock(ctx context.Context, question string, delay time.Duration, ch chan<- Event) {
	text := MockResponse(question)
	for _, r := range text {
		if !emit(ctx, ch, Event{Type: EventContent, Content: string(r)}) {
			return
		}
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return
			}
		}
	}
	emit(ctx, ch, Event{Type: EventDone, Content: text})
}

const mockGreetingResponse = `Hello! I'm your AI assistant powered by Groq. I'm here to help you with any questions or tasks you have.

**What I can help with:**
- General questions and information
- Problem-solving and brainstorming
- Writing and editing assistance
- Code explanations (basic)
- Creative tasks

How can I assist you today?`

const mockRAGResponse = `RAG (Retrieval-Augmented Generation) is a powerful AI technique that enhances language models:

**How it works:**
1. **Retrieval**: Searches a knowledge base for relevant information
2. **Augmentation**: Adds retrieved context to the prompt
3. **Generation**: Produces accurate, contextual responses

**Key Benefits:**
- More accurate responses
- Reduced hallucination
- Works with private data
- Cost-effective scaling

**Implementation Steps:**
1. Chunk your documents (500-1000 tokens)
2. Generate embeddings
3. Store in vector database
4. Implement similarity search
5. Combine with LLM generation

Perfect for building knowledge assistants like this one!`

const mockVectorDBResponse = `Here's a comparison of popular vector databases for GenAI:

**Pinecone**
- Fully managed, serverless
- Great for production
- Free tier: 1 index, 100k vectors

**ChromaDB**
- Open-source, lightweight
- Perfect for prototypes
- Runs locally or in-memory

**Weaviate**
- Feature-rich, GraphQL API
- Hybrid search capabilities
- Self-hosted or cloud

**Qdrant**
- High performance, Rust-based
- Excellent filtering
- Docker-friendly

Choose based on scale, budget, and deployment needs!`

const mockDefaultResponse = `I'm your GenAI assistant! I can help with:

**Topics I Know:**
- RAG implementation
- Vector databases
- LLM integration
- Production best practices
- Cost optimization

**Try asking about:**
- "How to implement RAG?"
- "Best vector database for production?"
- "Optimizing LLM costs"

*Note: Using demo mode. Add your Groq API key for enhanced responses!*`
