package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"NewsPlatter/internal/domain"
	"NewsPlatter/internal/ports"
)

// RateLimited delays calls to the wrapped model to stay within a request
// budget. It never drops a call.
type RateLimited struct {
	next    ports.LLM
	limiter *rate.Limiter
}

var _ ports.LLM = (*RateLimited)(nil)

// NewRateLimited allows rpm requests per minute with the given burst.
func NewRateLimited(next ports.LLM, rpm, burst int) *RateLimited {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst),
	}
}

func (r *RateLimited) Complete(ctx context.Context, prompt domain.Prompt) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}
	return r.next.Complete(ctx, prompt)
}
