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
	"NewsPlatter/internal/textnorm"
)

var (
	// ErrEmptyResponse is returned when the model answers with no text.
	ErrEmptyResponse = errors.New("empty model response")
	// ErrRefused is returned when the model declines the request.
	ErrRefused = errors.New("model refused request")
)

var refusalPrefixes = []string{"i'm sorry", "i am sorry", "i cannot", "i can't", "i can not"}

// Translator renders a base-language summary into one target language.
type Translator struct {
	llm    ports.LLM
	logger *slog.Logger
}

// NewTranslator binds the writing model.
func NewTranslator(llm ports.LLM, logger *slog.Logger) *Translator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Translator{llm: llm, logger: logger}
}

// Translate asks the model for a "Title:/Content:" answer in lang and returns
// both fields with redundant glosses removed. Every failure is returned as an
// error; nothing is retried.
func (t *Translator) Translate(ctx context.Context, profile country.Profile, title, content, lang string) (domain.Translation, error) {
	raw, err := t.llm.Complete(ctx, domain.Prompt{
		System:      profile.TranslationPrompt(lang),
		User:        fmt.Sprintf("Title: %s\nContent: %s", title, content),
		MaxTokens:   1500,
		Temperature: 0.3,
	})
	if err != nil {
		return domain.Translation{}, fmt.Errorf("complete translation: %w", err)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Translation{}, ErrEmptyResponse
	}
	if isRefusal(raw) {
		return domain.Translation{}, ErrRefused
	}

	fields, err := extractFields(raw, titleLabel, contentLabel)
	if err != nil {
		t.logger.Debug("translation format mismatch", "lang", lang, "response", truncate(raw, 200))
		return domain.Translation{}, err
	}

	return domain.Translation{
		Title:   textnorm.Normalize(fields[0]),
		Content: textnorm.Normalize(fields[1]),
	}, nil
}

func isRefusal(text string) bool {
	lower := strings.ToLower(text)
	for _, prefix := range refusalPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
