package usecase

import (
	"encoding/json"
	"strconv"
	"time"

	"NewsPlatter/internal/domain"
	"NewsPlatter/internal/ports"
)

// Field names shared with the mobile app.
const (
	fieldPubDate    = "pubDate"
	fieldClicked    = "clicked_cnt"
	fieldAITitle    = "ai_title"
	fieldAIContent  = "ai_content"
	fieldTranslated = "translations"
)

// pubDateLayout is the UTC layout the feed uses for pubDate.
const pubDateLayout = "2006-01-02 15:04:05"

// articleDocument flattens a published article. withClicks seeds the click
// counter and is only set for documents that do not exist yet.
func articleDocument(m domain.MultilingualArticle, withClicks bool) ports.Document {
	translations := make(map[string]any, len(m.Translations))
	for lang, tr := range m.Translations {
		translations[lang] = map[string]any{
			fieldAITitle:   tr.Title,
			fieldAIContent: tr.Content,
		}
	}

	keywords := make([]any, len(m.Article.Keywords))
	for i, kw := range m.Article.Keywords {
		keywords[i] = kw
	}

	doc := ports.Document{
		"article_id":    m.Article.ID,
		"title":         m.Article.Title,
		"link":          m.Article.Link,
		"description":   m.Article.Description,
		"content":       m.Article.Content,
		fieldPubDate:    m.Article.PubDate,
		"source_id":     m.Article.SourceID,
		"image_url":     m.Article.ImageURL,
		"keywords":      keywords,
		fieldAITitle:    m.Summary.Title,
		fieldAIContent:  m.Summary.Content,
		"category_ai":   string(m.Category),
		fieldTranslated: translations,
		"processed_at":  m.ProcessedAt,
	}
	if withClicks {
		doc[fieldClicked] = m.ClickedCount
	}
	return doc
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case ports.Document:
		return m, true
	}
	return nil, false
}

// toInt accepts the numeric shapes returned by the document stores.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return int(f), true
		}
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i, true
		}
	}
	return 0, false
}

func toInts(v any) []int {
	switch list := v.(type) {
	case []int:
		return append([]int(nil), list...)
	case []any:
		out := make([]int, 0, len(list))
		for _, item := range list {
			if n, ok := toInt(item); ok {
				out = append(out, n)
			}
		}
		return out
	}
	return nil
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}

func toTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
