package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"NewsPlatter/internal/config"
	"NewsPlatter/internal/domain"
	"NewsPlatter/internal/ports"
)

// EinoClient implements ports.LLM through a CloudWeGo Eino chat model.
type EinoClient struct {
	chat model.BaseChatModel
}

var _ ports.LLM = (*EinoClient)(nil)

// NewEinoClient builds an OpenAI-compatible Eino chat model.
func NewEinoClient(ctx context.Context, cfg config.LLMConfig) (*EinoClient, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	chat, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		Timeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init eino chat model: %w", err)
	}
	return &EinoClient{chat: chat}, nil
}

// NewEinoClientWithModel wraps an already built chat model.
func NewEinoClientWithModel(chat model.BaseChatModel) *EinoClient {
	return &EinoClient{chat: chat}
}

func (c *EinoClient) Complete(ctx context.Context, prompt domain.Prompt) (string, error) {
	var messages []*schema.Message
	if system := strings.TrimSpace(prompt.System); system != "" {
		messages = append(messages, schema.SystemMessage(system))
	}
	messages = append(messages, schema.UserMessage(prompt.User))

	opts := []model.Option{model.WithTemperature(prompt.Temperature)}
	if prompt.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(prompt.MaxTokens))
	}

	resp, err := c.chat.Generate(ctx, messages, opts...)
	if err != nil {
		return "", fmt.Errorf("eino generate: %w", err)
	}
	if resp == nil {
		return "", nil
	}
	return strings.TrimSpace(resp.Content), nil
}
