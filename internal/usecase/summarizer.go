package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"NewsPlatter/internal/country"
	"NewsPlatter/internal/domain"
	"NewsPlatter/internal/ports"
)

// ErrSkipped means the model judged the article unsuitable for summarization.
var ErrSkipped = errors.New("article skipped by summarizer")

const skipSentinel = "SKIP"

// Summarizer produces the base-language summary and category of an article.
type Summarizer struct {
	llm    ports.LLM
	logger *slog.Logger
}

// NewSummarizer binds the writing model.
func NewSummarizer(llm ports.LLM, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{llm: llm, logger: logger}
}

// Summarize returns ErrSkipped for a SKIP answer or an empty body and
// ErrUnparseable when the answer misses a label.
func (s *Summarizer) Summarize(ctx context.Context, profile country.Profile, content string) (domain.Summary, error) {
	if strings.TrimSpace(content) == "" {
		return domain.Summary{}, ErrSkipped
	}

	raw, err := s.llm.Complete(ctx, domain.Prompt{
		User:        profile.SummarizationPrompt(content),
		MaxTokens:   1000,
		Temperature: 0.5,
	})
	if err != nil {
		return domain.Summary{}, fmt.Errorf("complete summary: %w", err)
	}

	raw = strings.TrimSpace(raw)
	if strings.EqualFold(strings.Trim(raw, "*. "), skipSentinel) {
		return domain.Summary{}, ErrSkipped
	}

	fields, err := extractFields(raw, categoryLabel, contentLabel)
	if err != nil {
		s.logger.Debug("summary format mismatch", "response", truncate(raw, 200))
		return domain.Summary{}, err
	}

	category, title, _ := splitOptional(fields[0], titleLabel)
	if category == "" {
		return domain.Summary{}, fmt.Errorf("%w: empty category", ErrUnparseable)
	}

	return domain.Summary{
		Category: domain.ParseCategory(category),
		Title:    title,
		Content:  fields[1],
	}, nil
}
