// File path: internal/llm/providers/anthropic.go
package providers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"scriptforge/internal/common"
	"scriptforge/internal/fault"
)

const defaultAnthropicModel = "claude-sonnet-4-20250514"

type AnthropicProvider struct {
	client anthropic.Client
	model  anthropic.Model
}

func NewAnthropicProvider(apiKey string) *AnthropicProvider {
	model := strings.TrimSpace(os.Getenv("ANTHROPIC_MODEL"))
	if model == "" {
		model = defaultAnthropicModel
	}
	common.Logger().Info("llm: anthropic provider configured", "model", model)
	return &AnthropicProvider{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
	}
}

func (p *AnthropicProvider) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return p.Chat(ctx, "", []Message{{Role: RoleUser, Content: prompt}}, maxTokens)
}

func (p *AnthropicProvider) Chat(ctx context.Context, system string, messages []Message, maxTokens int) (string, error) {
	if len(messages) == 0 {
		return "", fault.New(fault.KindValidation, "no messages provided")
	}
	if maxTokens <= 0 {
		maxTokens = 4000
	}
	logger := common.Logger()
	params := anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: int64(maxTokens),
	}
	if strings.TrimSpace(system) != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	for _, msg := range messages {
		block := anthropic.NewTextBlock(msg.Content)
		if strings.EqualFold(msg.Role, RoleAssistant) {
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(block))
		} else {
			params.Messages = append(params.Messages, anthropic.NewUserMessage(block))
		}
	}
	logger.Debug("llm: sending anthropic request", "model", p.model, "messages", len(messages), "max_tokens", maxTokens)
	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		logger.Error("llm: anthropic request failed", "error", err)
		return "", fault.Wrap(fault.KindTransport, err)
	}
	var b strings.Builder
	for _, block := range resp.Content {
		b.WriteString(block.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fault.Wrap(fault.KindTransport, fmt.Errorf("empty completion"))
	}
	logger.Debug("llm: anthropic request succeeded", "chars", len(text))
	return text, nil
}

func (p *AnthropicProvider) Name() string {
	return "anthropic"
}
