package llm

import "context"

// Message roles understood by every provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversation turn.
type Message struct {
	Role string
	Text string
}

// Provider is a minimal abstraction for chat-based LLMs used by the domain.
// It intentionally hides concrete providers to preserve dependency direction.
// Implementations classify their failures with pkg/faults kinds.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
	Model() string
}
