package country

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var defaultProfiles []byte

// SummaryPolicy decides where the base-language summary comes from.
type SummaryPolicy string

const (
	// SummaryGenerate always asks the LLM for the summary and category.
	SummaryGenerate SummaryPolicy = "generate"
	// SummaryProvided reuses a summary supplied by the feed when present.
	SummaryProvided SummaryPolicy = "provided"
	// SummaryProvidedWithAICategory reuses the supplied summary text but still
	// asks the LLM for the category.
	SummaryProvidedWithAICategory SummaryPolicy = "provided_with_ai_category"
)

// TitlePolicy decides which headline is translated.
type TitlePolicy string

const (
	TitleOriginal TitlePolicy = "original"
	TitleAI       TitlePolicy = "ai"
)

// Settings holds the data half of a country profile.
type Settings struct {
	Code              string        `yaml:"-"`
	Name              string        `yaml:"name"`
	ISO               string        `yaml:"iso"`
	BaseLanguage      string        `yaml:"base_lang"`
	Languages         []string      `yaml:"lang_list"`
	SelectAll         bool          `yaml:"select_all"`
	TopArticleRatio   float64       `yaml:"top_article_ratio"`
	Timezone          string        `yaml:"timezone"`
	DailyPopularDays  int           `yaml:"daily_popular_days"`
	DailyPopularLimit int           `yaml:"daily_popular_limit"`
	SummaryPolicy     SummaryPolicy `yaml:"summary_policy"`
	TitlePolicy       TitlePolicy   `yaml:"title_policy"`

	location *time.Location
}

// Profile is the capability set the pipeline needs from one country.
type Profile interface {
	Settings() Settings
	SummarizationPrompt(content string) string
	TranslationPrompt(lang string) string
	TopPrompt(k int) string
}

// Location resolves the profile timezone, falling back to UTC.
func (s Settings) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	return time.UTC
}

// TargetLanguages returns the translation targets without the base language.
func (s Settings) TargetLanguages() []string {
	out := make([]string, 0, len(s.Languages))
	seen := map[string]struct{}{s.BaseLanguage: {}}
	for _, lang := range s.Languages {
		if _, ok := seen[lang]; ok {
			continue
		}
		seen[lang] = struct{}{}
		out = append(out, lang)
	}
	return out
}

// ArticlesCollection names the collection holding published articles.
func (s Settings) ArticlesCollection() string { return s.Code + "_articles" }

// InfoCollection names the collection holding metadata and statistics.
func (s Settings) InfoCollection() string { return s.Code + "_info" }

// DailyPopularCollection names the collection holding per-day snapshots.
func (s Settings) DailyPopularCollection() string { return s.Code + "_daily_popular" }

func (s *Settings) normalize(code string) error {
	s.Code = code
	s.BaseLanguage = strings.ToLower(strings.TrimSpace(s.BaseLanguage))
	if s.BaseLanguage == "" {
		return fmt.Errorf("profile %s: base_lang is required", code)
	}
	if len(s.Languages) == 0 {
		return fmt.Errorf("profile %s: lang_list is empty", code)
	}
	if !s.SelectAll && (s.TopArticleRatio <= 0 || s.TopArticleRatio > 1) {
		return fmt.Errorf("profile %s: top_article_ratio %.2f out of range", code, s.TopArticleRatio)
	}
	if s.DailyPopularDays <= 0 {
		s.DailyPopularDays = 7
	}
	if s.DailyPopularLimit <= 0 {
		s.DailyPopularLimit = 10
	}
	switch s.SummaryPolicy {
	case "":
		s.SummaryPolicy = SummaryGenerate
	case SummaryGenerate, SummaryProvided, SummaryProvidedWithAICategory:
	default:
		return fmt.Errorf("profile %s: unknown summary_policy %q", code, s.SummaryPolicy)
	}
	switch s.TitlePolicy {
	case "":
		s.TitlePolicy = TitleOriginal
	case TitleOriginal, TitleAI:
	default:
		return fmt.Errorf("profile %s: unknown title_policy %q", code, s.TitlePolicy)
	}

	tz := s.Timezone
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("profile %s: timezone %s: %w", code, tz, err)
	}
	s.location = loc
	return nil
}

// LoadSettings parses a YAML document keyed by country code.
func LoadSettings(raw []byte) (map[string]Settings, error) {
	var parsed map[string]Settings
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}

	out := make(map[string]Settings, len(parsed))
	for code, s := range parsed {
		code = strings.ToLower(strings.TrimSpace(code))
		if err := s.normalize(code); err != nil {
			return nil, err
		}
		out[code] = s
	}
	return out, nil
}
