package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsPlatter/internal/domain"
)

type fakeChatModel struct {
	messages []*schema.Message
	options  *model.Options
	reply    string
	err      error
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.messages = input
	f.options = model.GetCommonOptions(&model.Options{}, opts...)
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not supported")
}

func TestEinoClientComplete(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{reply: " Category: sports\nContent: x "}
	client := NewEinoClientWithModel(fake)

	out, err := client.Complete(context.Background(), domain.Prompt{
		System:      "rules",
		User:        "article",
		MaxTokens:   1000,
		Temperature: 0.5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Category: sports\nContent: x", out)

	require.Len(t, fake.messages, 2)
	assert.Equal(t, schema.System, fake.messages[0].Role)
	assert.Equal(t, schema.User, fake.messages[1].Role)
	require.NotNil(t, fake.options.Temperature)
	assert.InDelta(t, 0.5, *fake.options.Temperature, 1e-6)
	require.NotNil(t, fake.options.MaxTokens)
	assert.Equal(t, 1000, *fake.options.MaxTokens)
}

func TestEinoClientError(t *testing.T) {
	t.Parallel()

	client := NewEinoClientWithModel(&fakeChatModel{err: errors.New("boom")})
	_, err := client.Complete(context.Background(), domain.Prompt{User: "x"})
	assert.ErrorContains(t, err, "eino generate")
}
