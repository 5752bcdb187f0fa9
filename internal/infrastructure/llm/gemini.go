package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"NewsPlatter/internal/config"
	"NewsPlatter/internal/domain"
	"NewsPlatter/internal/ports"
)

// GeminiClient implements ports.LLM with the Google GenAI SDK.
type GeminiClient struct {
	client *genai.Client
	model  string
}

var _ ports.LLM = (*GeminiClient)(nil)

// NewGeminiClient connects to the Gemini API. BaseURL overrides the endpoint.
func NewGeminiClient(ctx context.Context, cfg config.LLMConfig) (*GeminiClient, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: cfg.Model}, nil
}

// Complete disables thinking so the output budget goes to the answer.
func (c *GeminiClient) Complete(ctx context.Context, prompt domain.Prompt) (string, error) {
	gc := &genai.GenerateContentConfig{
		Temperature:    genai.Ptr(prompt.Temperature),
		ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
	}
	if prompt.MaxTokens > 0 {
		gc.MaxOutputTokens = int32(prompt.MaxTokens)
	}
	if system := strings.TrimSpace(prompt.System); system != "" {
		gc.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt.User), gc)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}
