// File path: internal/llm/llm.go

// Package llm selects and wraps the hosted generation provider. Selection
// order: an explicit SCRIPTFORGE_PROVIDER override, then Anthropic when its
// key resolves, then OpenAI, then a provider that rejects every call with a
// configuration fault so the missing credential is reported before any
// network activity.
package llm

import (
	"os"
	"strings"

	"scriptforge/internal/common"
	"scriptforge/internal/config"
	"scriptforge/internal/llm/providers"
)

type Message = providers.Message

type Provider = providers.Provider

type MissingKeyProvider = providers.MissingKeyProvider

const (
	RoleUser      = providers.RoleUser
	RoleAssistant = providers.RoleAssistant
)

const (
	anthropicKeyEnv = "ANTHROPIC_API_KEY"
	openaiKeyEnv    = "OPENAI_API_KEY"
)

// NewProvider resolves a credential for the session and returns the matching
// provider. sessionKey is the user-entered key held in session state, the
// last resort after deployment secrets and process environment.
func NewProvider(resolver *config.Resolver, sessionKey string) Provider {
	logger := common.Logger()
	if strings.EqualFold(strings.TrimSpace(os.Getenv("SCRIPTFORGE_PROVIDER")), "local") {
		logger.Info("llm: local provider selected by override")
		return providers.NewLocalProvider()
	}
	if key := resolver.Resolve(anthropicKeyEnv, sessionKey); key != "" {
		return providers.NewAnthropicProvider(key)
	}
	if key := resolver.Resolve(openaiKeyEnv, sessionKey); key != "" {
		return providers.NewOpenAIProvider(key)
	}
	logger.Warn("llm: no API key resolved; generation calls will be rejected")
	return providers.NewMissingKeyProvider()
}

// HasCredential reports whether any provider credential resolves for the
// session, for the pre-flight checks features run before assembling prompts.
func HasCredential(resolver *config.Resolver, sessionKey string) bool {
	if strings.EqualFold(strings.TrimSpace(os.Getenv("SCRIPTFORGE_PROVIDER")), "local") {
		return true
	}
	return resolver.Resolve(anthropicKeyEnv, sessionKey) != "" ||
		resolver.Resolve(openaiKeyEnv, sessionKey) != ""
}
