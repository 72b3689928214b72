// File path: internal/llm/providers/local.go
package providers

import (
	"context"
	"strings"

	"scriptforge/internal/fault"
)

// LocalProvider echoes the last message. It exists so development installs
// work without a hosted model; selected by SCRIPTFORGE_PROVIDER=local.
type LocalProvider struct{}

func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

func (l *LocalProvider) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return l.Chat(ctx, "", []Message{{Role: RoleUser, Content: prompt}}, maxTokens)
}

func (l *LocalProvider) Chat(ctx context.Context, system string, messages []Message, maxTokens int) (string, error) {
	if len(messages) == 0 {
		return "", fault.New(fault.KindValidation, "no messages provided")
	}
	last := messages[len(messages)-1].Content
	return "[local-stub] " + strings.TrimSpace(last), nil
}

func (l *LocalProvider) Name() string {
	return "local"
}

// MissingKeyProvider is what a session gets when no credential resolves. It
// fails every call before any network activity.
type MissingKeyProvider struct{}

func NewMissingKeyProvider() *MissingKeyProvider {
	return &MissingKeyProvider{}
}

func (m *MissingKeyProvider) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return "", fault.New(fault.KindConfiguration, "no API key configured: set ANTHROPIC_API_KEY or OPENAI_API_KEY, or submit one for the session")
}

func (m *MissingKeyProvider) Chat(ctx context.Context, system string, messages []Message, maxTokens int) (string, error) {
	return m.Generate(ctx, "", maxTokens)
}

func (m *MissingKeyProvider) Name() string {
	return "none"
}
