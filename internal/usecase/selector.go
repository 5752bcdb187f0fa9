package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"NewsPlatter/internal/country"
	"NewsPlatter/internal/domain"
	"NewsPlatter/internal/ports"
)

var (
	listMarker = regexp.MustCompile(`^\s*(?:[-*•]+|\d+[.)])\s*`)
	idPrefix   = regexp.MustCompile(`(?i)^\**\s*article\s*id\s*\**\s*:\s*`)
)

// Selector asks the model for the top-k candidates and validates the answer.
type Selector struct {
	llm    ports.LLM
	logger *slog.Logger
}

// NewSelector binds the selection model.
func NewSelector(llm ports.LLM, logger *slog.Logger) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{llm: llm, logger: logger}
}

// SelectTop returns at most k identifiers taken from candidates, in the order
// the model ranked them. Unknown or repeated ids are dropped and the list is
// never padded; a failed call yields an empty selection.
func (s *Selector) SelectTop(ctx context.Context, profile country.Profile, candidates []domain.Article, k int) []string {
	if k <= 0 || len(candidates) == 0 {
		return nil
	}

	raw, err := s.llm.Complete(ctx, domain.Prompt{
		User:        buildSelectionPrompt(profile.TopPrompt(k), candidates),
		MaxTokens:   400,
		Temperature: 0.3,
	})
	if err != nil {
		s.logger.Warn("selection failed", "err", err)
		return nil
	}

	known := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		known[c.ID] = struct{}{}
	}

	ids := parseSelection(raw)
	selected := make([]string, 0, k)
	seen := make(map[string]struct{}, len(ids))
	dropped := 0
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			dropped++
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		selected = append(selected, id)
		if len(selected) == k {
			break
		}
	}

	if dropped > 0 {
		s.logger.Warn("selection returned unknown ids", "dropped", dropped)
	}
	if len(selected) < k {
		s.logger.Info("selection under-delivered", "want", k, "got", len(selected))
	}
	return selected
}

func buildSelectionPrompt(rubric string, candidates []domain.Article) string {
	var b strings.Builder
	b.WriteString(rubric)
	b.WriteString("\nHere are the articles:\n\n")
	for _, c := range candidates {
		fmt.Fprintf(&b, "Article ID: %s\nTitle: %s\n---\n", c.ID, c.Title)
	}
	b.WriteString("\nReturn ONLY the article IDs, one per line.")
	return b.String()
}

// parseSelection reads one id per non-empty line, tolerating list markers and
// an "Article ID:" prefix. A bare "none" answer yields no ids.
func parseSelection(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(strings.Trim(raw, ".*"), "none") {
		return nil
	}

	var ids []string
	for _, line := range strings.Split(raw, "\n") {
		line = listMarker.ReplaceAllString(line, "")
		line = idPrefix.ReplaceAllString(line, "")
		line = strings.Trim(strings.TrimSpace(line), "`*\"'")
		if line == "" || line == "---" {
			continue
		}
		ids = append(ids, line)
	}
	return ids
}
