package llm

import (
	"context"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// FallbackReply replaces the answer whenever the LLM call fails.
const FallbackReply = "Sorry, I encountered an error processing your request."

type Message struct {
	Role    string
	Content string
}

type CompletionRequest struct {
	Messages []Message
	// JSON asks the model for a single JSON object.
	JSON bool
}

// TokenStream yields incremental text deltas. Recv returns io.EOF when finished.
type TokenStream interface {
	Recv() (string, error)
	Close() error
}

// Provider is a chat-completion backend.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Stream(ctx context.Context, req CompletionRequest) (TokenStream, error)
}
