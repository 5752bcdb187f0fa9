package newsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewsPlatter/internal/domain"
	"NewsPlatter/internal/ports"
)

const paidPlaceholder = "ONLY AVAILABLE IN PAID PLANS"

// Client reads one country's paginated news feed.
type Client struct {
	baseURL string
	client  *http.Client
}

var _ ports.ArticleSource = (*Client)(nil)

// NewClient wires an HTTP client; a nil client gets a 30s timeout.
func NewClient(baseURL string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: baseURL, client: client}
}

type pageResponse struct {
	Status   string          `json:"status"`
	Results  []feedArticle   `json:"results"`
	NextPage json.RawMessage `json:"nextPage"`
}

type feedArticle struct {
	ArticleID   string   `json:"article_id"`
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	PubDate     string   `json:"pubDate"`
	SourceID    string   `json:"source_id"`
	ImageURL    string   `json:"image_url"`
	Keywords    []string `json:"keywords"`
	Category    []string `json:"category"`
	AISummary   string   `json:"ai_summary"`
}

// FetchPage returns the articles of one page and the token of the next one.
// An empty pageToken requests the first page.
func (c *Client) FetchPage(ctx context.Context, pageToken string) ([]domain.Article, string, error) {
	pageURL, err := buildPageURL(c.baseURL, pageToken)
	if err != nil {
		return nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "NewsPlatter/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, "", fmt.Errorf("news feed returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var page pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, "", fmt.Errorf("decode page: %w", err)
	}
	if page.Status != "" && page.Status != "success" {
		return nil, "", nil
	}

	articles := make([]domain.Article, 0, len(page.Results))
	for _, raw := range page.Results {
		if raw.ArticleID == "" {
			continue
		}
		articles = append(articles, toArticle(raw))
	}
	return articles, pageToken(page.NextPage), nil
}

func toArticle(raw feedArticle) domain.Article {
	var category string
	if len(raw.Category) > 0 {
		category = raw.Category[0]
	}
	return domain.Article{
		ID:               raw.ArticleID,
		Title:            strings.TrimSpace(raw.Title),
		Content:          plainText(raw.Content),
		Description:      plainText(raw.Description),
		ProvidedSummary:  plainText(raw.AISummary),
		ProvidedCategory: category,
		Link:             raw.Link,
		PubDate:          raw.PubDate,
		SourceID:         raw.SourceID,
		ImageURL:         raw.ImageURL,
		Keywords:         raw.Keywords,
	}
}

// plainText flattens HTML fragments and drops the paid-plan placeholder.
func plainText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, paidPlaceholder) {
		return ""
	}
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// pageToken accepts a string or numeric nextPage; null means no more pages.
func pageToken(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func buildPageURL(base, token string) (string, error) {
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" {
		return "", fmt.Errorf("invalid feed url %q", base)
	}
	if token == "" {
		return parsed.String(), nil
	}

	query := parsed.Query()
	query.Set("page", token)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
