package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"NewsPlatter/internal/country"
	"NewsPlatter/internal/domain"
)

// ErrMissingTitle discards an article before any model call.
var ErrMissingTitle = errors.New("article has no title")

// ProcessorDeps wires the model-backed steps of article processing.
type ProcessorDeps struct {
	Summarizer *Summarizer
	Translator *Translator
	// Workers bounds concurrent translations of one article.
	Workers int
	Logger  *slog.Logger
	Now     func() time.Time
}

// Processor turns one candidate into an all-or-nothing multilingual article.
type Processor struct {
	summarizer *Summarizer
	translator *Translator
	workers    int
	logger     *slog.Logger
	now        func() time.Time
}

// NewProcessor constructs the fan-out/fan-in article processor.
func NewProcessor(deps ProcessorDeps) *Processor {
	p := &Processor{
		summarizer: deps.Summarizer,
		translator: deps.Translator,
		workers:    deps.Workers,
		logger:     deps.Logger,
		now:        deps.Now,
	}
	if p.workers <= 0 {
		p.workers = defaultWorkers
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// Process summarizes the article, translates it into every target language
// concurrently and joins the results. Any failed step discards the article and
// is reported as the returned error; sibling translations still run to the end.
func (p *Processor) Process(ctx context.Context, profile country.Profile, article domain.Article) (domain.MultilingualArticle, error) {
	if strings.TrimSpace(article.Title) == "" {
		return domain.MultilingualArticle{}, ErrMissingTitle
	}

	settings := profile.Settings()
	summary, err := p.summarize(ctx, profile, article)
	if err != nil {
		return domain.MultilingualArticle{}, fmt.Errorf("summarize %s: %w", article.ID, err)
	}

	title := article.Title
	if settings.TitlePolicy == country.TitleAI && summary.Title != "" {
		title = summary.Title
	}
	summary.Title = title

	targets := settings.TargetLanguages()
	results := make([]domain.Translation, len(targets))
	errs := make([]error, len(targets))
	forEach(ctx, p.workers, targets, func(ctx context.Context, i int, lang string) {
		tr, err := p.translator.Translate(ctx, profile, title, summary.Content, lang)
		if err != nil {
			errs[i] = fmt.Errorf("translate %s: %w", lang, err)
			return
		}
		results[i] = tr
	})
	if err := errors.Join(errs...); err != nil {
		return domain.MultilingualArticle{}, fmt.Errorf("article %s: %w", article.ID, err)
	}

	translations := make(map[string]domain.Translation, len(targets)+1)
	for i, lang := range targets {
		translations[lang] = results[i]
	}
	translations[settings.BaseLanguage] = domain.Translation{Title: title, Content: summary.Content}

	return domain.MultilingualArticle{
		Article:      article,
		Summary:      summary,
		Category:     summary.Category,
		Translations: translations,
		ClickedCount: 0,
		Status:       domain.StatusPublished,
		ProcessedAt:  p.now().UTC(),
	}, nil
}

func (p *Processor) summarize(ctx context.Context, profile country.Profile, article domain.Article) (domain.Summary, error) {
	provided := strings.TrimSpace(article.ProvidedSummary)
	body := article.Body()
	if strings.TrimSpace(body) == "" {
		body = provided
	}

	switch profile.Settings().SummaryPolicy {
	case country.SummaryProvided:
		if provided != "" {
			return domain.Summary{
				Category: domain.ParseCategory(article.ProvidedCategory),
				Title:    article.Title,
				Content:  provided,
			}, nil
		}
	case country.SummaryProvidedWithAICategory:
		if provided != "" {
			generated, err := p.summarizer.Summarize(ctx, profile, body)
			if err != nil {
				return domain.Summary{}, err
			}
			generated.Content = provided
			return generated, nil
		}
	}

	return p.summarizer.Summarize(ctx, profile, body)
}
