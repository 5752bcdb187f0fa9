package domain

import (
	"strings"
	"time"
)

// Article is a raw candidate fetched from the news source for a single run.
type Article struct {
	ID               string
	Title            string
	Content          string
	Description      string
	ProvidedSummary  string
	ProvidedCategory string
	Link             string
	PubDate          string
	SourceID         string
	ImageURL         string
	Keywords         []string
}

// Body returns the text handed to the summarizer.
func (a Article) Body() string {
	if strings.TrimSpace(a.Content) != "" {
		return a.Content
	}
	return a.Description
}

// Category is the closed set of labels the summarizer may assign.
type Category string

const (
	CategoryCrime      Category = "crime"
	CategoryPolitics   Category = "politics"
	CategoryBusiness   Category = "business"
	CategoryCulture    Category = "culture"
	CategoryTechnology Category = "technology"
	CategorySports     Category = "sports"
	CategoryHealth     Category = "health"
	CategoryOther      Category = "other"
)

// Categories lists every label in prompt order.
var Categories = []Category{
	CategoryCrime,
	CategoryPolitics,
	CategoryBusiness,
	CategoryCulture,
	CategoryTechnology,
	CategorySports,
	CategoryHealth,
	CategoryOther,
}

// ParseCategory maps a free-text label onto the closed set. Unknown labels become other.
func ParseCategory(raw string) Category {
	label := strings.ToLower(strings.TrimSpace(raw))
	label = strings.Trim(label, ".*\"'` ")
	switch label {
	case "economy", "economy/business", "business/economy", "finance":
		return CategoryBusiness
	}
	for _, c := range Categories {
		if label == string(c) {
			return c
		}
	}
	return CategoryOther
}

// Summary is the base-language digest of one article.
type Summary struct {
	Category Category
	Title    string
	Content  string
}

// Translation is one language rendering of a summary.
type Translation struct {
	Title   string `json:"ai_title"`
	Content string `json:"ai_content"`
}

// ProcessingStatus enumerates article milestones within a run.
type ProcessingStatus string

const (
	StatusFetched     ProcessingStatus = "fetched"
	StatusSummarized  ProcessingStatus = "summarized"
	StatusTranslating ProcessingStatus = "translating"
	StatusPublished   ProcessingStatus = "published"
	StatusDiscarded   ProcessingStatus = "discarded"
)

// MultilingualArticle is the publication unit persisted per article.
type MultilingualArticle struct {
	Article      Article
	Summary      Summary
	Category     Category
	Translations map[string]Translation
	ClickedCount int
	Status       ProcessingStatus
	ProcessedAt  time.Time
}
