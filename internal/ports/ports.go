package ports

import (
	"context"
	"errors"

	"NewsPlatter/internal/domain"
)

//go:generate mockgen -destination=mocks/mock_ports.go -package=mocks NewsPlatter/internal/ports LLM,ArticleSource,DocumentStore,PushDispatcher

// ErrNotFound is returned by DocumentStore.Get for a missing document.
var ErrNotFound = errors.New("document not found")

// ArticleSource pulls one page of candidate articles from the news provider.
// An empty next token means there are no further pages.
type ArticleSource interface {
	FetchPage(ctx context.Context, pageToken string) ([]domain.Article, string, error)
}

// LLM sends a prompt to a language model and returns its raw text answer.
type LLM interface {
	Complete(ctx context.Context, prompt domain.Prompt) (string, error)
}

// Document is a schemaless key/value document.
type Document map[string]any

// Query narrows a collection scan. Zero-valued fields are ignored.
type Query struct {
	RangeField string
	From       any
	To         any
	MinField   string
	Above      any
	OrderBy    string
	Descending bool
	Limit      int
}

// DocumentStore persists keyed documents into country-scoped collections.
type DocumentStore interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	Exists(ctx context.Context, collection string, ids []string) (map[string]bool, error)
	Set(ctx context.Context, collection, id string, doc Document, merge bool) error
	Query(ctx context.Context, collection string, q Query) ([]Document, error)
	Close() error
}

// PushDispatcher delivers a notification about one article to app users.
type PushDispatcher interface {
	Send(ctx context.Context, msg domain.PushMessage) (domain.PushResult, error)
}

// Scheduler controls when jobs execute.
type Scheduler interface {
	Add(spec, name string, job func(context.Context)) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
