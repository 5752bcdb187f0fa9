package llm

import (
	"context"
	"fmt"

	"NewsPlatter/internal/config"
	"NewsPlatter/internal/ports"
)

// New builds the configured provider and wraps it in a limiter when
// cfg.RPM is set.
func New(ctx context.Context, cfg config.LLMConfig) (ports.LLM, error) {
	var (
		client ports.LLM
		err    error
	)
	switch cfg.Provider {
	case "", config.ProviderChatGPT:
		client = NewChatGPTClient(cfg)
	case config.ProviderEino:
		client, err = NewEinoClient(ctx, cfg)
	case config.ProviderGemini:
		client, err = NewGeminiClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	if cfg.RPM > 0 {
		client = NewRateLimited(client, cfg.RPM, cfg.Burst)
	}
	return client, nil
}
