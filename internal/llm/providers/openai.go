// File path: internal/llm/providers/openai.go
package providers

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"scriptforge/internal/common"
	"scriptforge/internal/fault"
)

const defaultOpenAIModel = "gpt-4o"

type OpenAIProvider struct {
	client openai.Client
	model  string
}

func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	logger := common.Logger()
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if endpoint := strings.TrimSpace(os.Getenv("OPENAI_ENDPOINT")); endpoint != "" {
		logger.Info("llm: openai provider using custom endpoint", "endpoint", endpoint)
		opts = append(opts, option.WithBaseURL(endpoint))
	}
	model := strings.TrimSpace(os.Getenv("OPENAI_CHAT_MODEL"))
	if model == "" {
		model = defaultOpenAIModel
	}
	logger.Info("llm: openai provider configured", "model", model)
	return &OpenAIProvider{client: openai.NewClient(opts...), model: model}
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return p.Chat(ctx, "", []Message{{Role: RoleUser, Content: prompt}}, maxTokens)
}

func (p *OpenAIProvider) Chat(ctx context.Context, system string, messages []Message, maxTokens int) (string, error) {
	if len(messages) == 0 {
		return "", fault.New(fault.KindValidation, "no messages provided")
	}
	if maxTokens <= 0 {
		maxTokens = 4000
	}
	logger := common.Logger()
	params := openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(p.model),
		MaxCompletionTokens: openai.Int(int64(maxTokens)),
	}
	if strings.TrimSpace(system) != "" {
		params.Messages = append(params.Messages, openai.SystemMessage(system))
	}
	for _, msg := range messages {
		if strings.EqualFold(msg.Role, RoleAssistant) {
			params.Messages = append(params.Messages, openai.AssistantMessage(msg.Content))
		} else {
			params.Messages = append(params.Messages, openai.UserMessage(msg.Content))
		}
	}
	logger.Debug("llm: sending openai request", "model", p.model, "messages", len(messages), "max_tokens", maxTokens)
	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		logger.Error("llm: openai request failed", "error", err)
		return "", fault.Wrap(fault.KindTransport, err)
	}
	if len(resp.Choices) == 0 {
		return "", fault.Wrap(fault.KindTransport, fmt.Errorf("no choices returned"))
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fault.Wrap(fault.KindTransport, fmt.Errorf("empty completion"))
	}
	logger.Debug("llm: openai request succeeded", "chars", len(text))
	return text, nil
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}
