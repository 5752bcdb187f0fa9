package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"NewsPlatter/internal/domain"
	"NewsPlatter/internal/ports/mocks"
)

func candidates(ids ...string) []domain.Article {
	out := make([]domain.Article, len(ids))
	for i, id := range ids {
		out[i] = domain.Article{ID: id, Title: "title " + id}
	}
	return out
}

func TestSelectorSelectTop(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		reply string
		k     int
		want  []string
	}{
		"unknown id dropped, ranking kept": {
			reply: "A\nZ\nB",
			k:     2,
			want:  []string{"A", "B"},
		},
		"truncated to k": {
			reply: "C\nB\nA",
			k:     2,
			want:  []string{"C", "B"},
		},
		"under-delivery is not padded": {
			reply: "B",
			k:     3,
			want:  []string{"B"},
		},
		"duplicates collapse": {
			reply: "A\nA\nB",
			k:     2,
			want:  []string{"A", "B"},
		},
		"list markers and prefixes": {
			reply: "1. Article ID: C\n- **B**\n* `A`",
			k:     3,
			want:  []string{"C", "B", "A"},
		},
		"none": {
			reply: "None.",
			k:     2,
			want:  []string{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			llm := mocks.NewMockLLM(ctrl)
			llm.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(tt.reply, nil)

			got := NewSelector(llm, discardLogger()).SelectTop(context.Background(), testProfile(t, "canada", ""), candidates("A", "B", "C"), tt.k)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectorPromptListsCandidates(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	llm := mocks.NewMockLLM(ctrl)
	llm.EXPECT().Complete(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p domain.Prompt) (string, error) {
		assert.Contains(t, p.User, "Select the top 2")
		assert.Contains(t, p.User, "Article ID: A\nTitle: title A")
		assert.Contains(t, p.User, "Article ID: C\nTitle: title C")
		assert.Equal(t, 400, p.MaxTokens)
		return "A", nil
	})

	NewSelector(llm, discardLogger()).SelectTop(context.Background(), testProfile(t, "canada", ""), candidates("A", "B", "C"), 2)
}

func TestSelectorFailureYieldsEmpty(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	llm := mocks.NewMockLLM(ctrl)
	llm.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", errors.New("rate limited"))

	got := NewSelector(llm, discardLogger()).SelectTop(context.Background(), testProfile(t, "canada", ""), candidates("A"), 1)
	assert.Empty(t, got)
}

func TestSelectorNoCallForEmptyInput(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	s := NewSelector(mocks.NewMockLLM(ctrl), discardLogger())

	assert.Empty(t, s.SelectTop(context.Background(), testProfile(t, "canada", ""), nil, 3))
	assert.Empty(t, s.SelectTop(context.Background(), testProfile(t, "canada", ""), candidates("A"), 0))
}
