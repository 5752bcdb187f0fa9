package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"NewsPlatter/internal/country"
	"NewsPlatter/internal/domain"
	"NewsPlatter/internal/infrastructure/storage"
	"NewsPlatter/internal/ports"
)

type llmFunc func(ctx context.Context, prompt domain.Prompt) (string, error)

func (f llmFunc) Complete(ctx context.Context, prompt domain.Prompt) (string, error) {
	return f(ctx, prompt)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testProfile resolves a built-in country, optionally replacing its settings.
func testProfile(t *testing.T, code, overrides string) country.Profile {
	t.Helper()
	reg, err := country.Default([]byte(overrides))
	require.NoError(t, err)
	profile, err := reg.Resolve(code)
	require.NoError(t, err)
	return profile
}

var targetLang = regexp.MustCompile(`into [^(\n]+\((\w+)\)\.`)

// fakeNewsroom answers summary, translation and selection prompts the way a
// well-behaved model would and records what it was asked.
type fakeNewsroom struct {
	mu sync.Mutex

	summary  string
	selected string
	failLang map[string]bool

	summaries    int
	selections   int
	translations map[string]int
}

func newFakeNewsroom() *fakeNewsroom {
	return &fakeNewsroom{
		summary:      "Category: politics\nTitle: Parliament passes budget\nContent: The budget passed after a long debate.",
		failLang:     map[string]bool{},
		translations: map[string]int{},
	}
}

func (f *fakeNewsroom) Complete(_ context.Context, prompt domain.Prompt) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case strings.Contains(prompt.User, "Select the top"):
		f.selections++
		return f.selected, nil
	case prompt.System != "":
		m := targetLang.FindStringSubmatch(prompt.System)
		if m == nil {
			return "", errors.New("unexpected translation prompt")
		}
		lang := m[1]
		f.translations[lang]++
		if f.failLang[lang] {
			return "", fmt.Errorf("upstream 500 for %s", lang)
		}
		return fmt.Sprintf("Title: [%s] headline\nContent: [%s] body", lang, lang), nil
	default:
		f.summaries++
		return f.summary, nil
	}
}

func (f *fakeNewsroom) translatedLanguages() map[string]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]int, len(f.translations))
	for k, v := range f.translations {
		out[k] = v
	}
	return out
}

// countingStore counts writes on top of the in-memory store.
type countingStore struct {
	*storage.MemoryStore
	mu   sync.Mutex
	sets int
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: storage.NewMemoryStore()}
}

func (s *countingStore) Set(ctx context.Context, collection, id string, doc ports.Document, merge bool) error {
	s.mu.Lock()
	s.sets++
	s.mu.Unlock()
	return s.MemoryStore.Set(ctx, collection, id, doc, merge)
}

func (s *countingStore) writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets
}
