package llm

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsPlatter/internal/domain"
)

type countingLLM struct {
	calls atomic.Int32
}

func (c *countingLLM) Complete(context.Context, domain.Prompt) (string, error) {
	c.calls.Add(1)
	return "ok", nil
}

func TestRateLimitedPassesThrough(t *testing.T) {
	t.Parallel()

	next := &countingLLM{}
	limited := NewRateLimited(next, 6000, 5)
	for range 5 {
		out, err := limited.Complete(context.Background(), domain.Prompt{})
		require.NoError(t, err)
		assert.Equal(t, "ok", out)
	}
	assert.EqualValues(t, 5, next.calls.Load())
}

func TestRateLimitedHonoursContext(t *testing.T) {
	t.Parallel()

	next := &countingLLM{}
	limited := NewRateLimited(next, 1, 1)
	_, err := limited.Complete(context.Background(), domain.Prompt{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = limited.Complete(ctx, domain.Prompt{})
	require.Error(t, err)
	assert.EqualValues(t, 1, next.calls.Load())
}
