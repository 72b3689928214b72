// File path: internal/llm/providers/types.go
package providers

import "context"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Provider generates text from the hosted model. Exactly one of the returned
// text and error is populated. Generate is the single-shot form; Chat
// replays a full ordered message list with a separate system instruction.
type Provider interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
	Chat(ctx context.Context, system string, messages []Message, maxTokens int) (string, error)
	Name() string
}
