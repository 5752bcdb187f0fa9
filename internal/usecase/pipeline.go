package usecase

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"NewsPlatter/internal/country"
	"NewsPlatter/internal/domain"
	"NewsPlatter/internal/ports"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Profile   country.Profile
	Source    ports.ArticleSource
	Store     ports.DocumentStore
	Selector  *Selector
	Processor *Processor
	Stats     *StatsAggregator
	// Workers bounds concurrently processed articles.
	Workers int
	Logger  *slog.Logger
	Now     func() time.Time
}

// Pipeline implements one news run for a single country.
type Pipeline struct {
	profile   country.Profile
	source    ports.ArticleSource
	store     ports.DocumentStore
	selector  *Selector
	processor *Processor
	stats     *StatsAggregator
	workers   int
	logger    *slog.Logger
	now       func() time.Time
}

// RunReport summarizes a finished run.
type RunReport struct {
	RunID     string
	Fetched   int
	Selected  int
	Published int
	Persisted int
	Duration  time.Duration
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	p := &Pipeline{
		profile:   deps.Profile,
		source:    deps.Source,
		store:     deps.Store,
		selector:  deps.Selector,
		processor: deps.Processor,
		stats:     deps.Stats,
		workers:   deps.Workers,
		logger:    deps.Logger,
		now:       deps.Now,
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

// Run fetches every candidate page, selects the working set, processes it
// concurrently, persists the published articles and records run statistics.
// Failures of single pages, articles or documents are logged and skipped.
func (p *Pipeline) Run(ctx context.Context) (RunReport, error) {
	if p.profile == nil || p.source == nil || p.processor == nil {
		return RunReport{}, errors.New("pipeline is not fully wired")
	}

	started := p.now()
	settings := p.profile.Settings()
	report := RunReport{RunID: uuid.NewString()}
	logger := p.logger.With("country", settings.Code, "run_id", report.RunID)

	candidates := p.fetchAll(ctx, logger)
	report.Fetched = len(candidates)
	logger.Info("candidates fetched", "count", report.Fetched)

	working := p.selectWorkingSet(ctx, candidates)
	report.Selected = len(working)
	logger.Info("working set selected", "count", report.Selected, "select_all", settings.SelectAll)

	published := p.processAll(ctx, working, logger)
	report.Published = len(published)

	report.Persisted = p.persist(ctx, published, logger)

	if p.stats != nil {
		err := p.stats.Record(ctx, p.profile, domain.RunStats{
			Country:         settings.Code,
			TotalCandidates: report.Fetched,
			Published:       report.Published,
			At:              started,
		})
		if err != nil {
			logger.Error("record stats failed", "err", err)
		}
	}

	report.Duration = p.now().Sub(started)
	logger.Info("run finished",
		"fetched", report.Fetched,
		"selected", report.Selected,
		"published", report.Published,
		"persisted", report.Persisted,
		"duration", report.Duration)
	return report, nil
}

// fetchAll follows nextPage tokens until the feed stops returning one. A page
// error ends pagination with what was already collected.
func (p *Pipeline) fetchAll(ctx context.Context, logger *slog.Logger) []domain.Article {
	var all []domain.Article
	seen := map[string]struct{}{}
	token := ""
	for page := 1; ; page++ {
		if ctx.Err() != nil {
			logger.Warn("fetch interrupted", "page", page, "err", ctx.Err())
			break
		}

		items, next, err := p.source.FetchPage(ctx, token)
		if err != nil {
			logger.Warn("fetch page failed", "page", page, "err", err)
			break
		}
		for _, item := range items {
			if _, dup := seen[item.ID]; dup {
				continue
			}
			seen[item.ID] = struct{}{}
			all = append(all, item)
		}
		logger.Debug("page fetched", "page", page, "items", len(items))

		if next == "" || next == token {
			break
		}
		token = next
	}
	return all
}

func (p *Pipeline) selectWorkingSet(ctx context.Context, candidates []domain.Article) []domain.Article {
	settings := p.profile.Settings()
	if settings.SelectAll || len(candidates) == 0 || p.selector == nil {
		return candidates
	}

	k := topK(len(candidates), settings.TopArticleRatio)
	chosen := map[string]struct{}{}
	for _, id := range p.selector.SelectTop(ctx, p.profile, candidates, k) {
		chosen[id] = struct{}{}
	}

	working := make([]domain.Article, 0, len(chosen))
	for _, c := range candidates {
		if _, ok := chosen[c.ID]; ok {
			working = append(working, c)
		}
	}
	return working
}

// topK is max(1, round(total*ratio)).
func topK(total int, ratio float64) int {
	return max(1, int(math.Round(float64(total)*ratio)))
}

func (p *Pipeline) processAll(ctx context.Context, working []domain.Article, logger *slog.Logger) []domain.MultilingualArticle {
	results := make([]*domain.MultilingualArticle, len(working))
	forEach(ctx, p.workers, working, func(ctx context.Context, i int, article domain.Article) {
		m, err := p.processor.Process(ctx, p.profile, article)
		if err != nil {
			level := slog.LevelWarn
			if errors.Is(err, ErrSkipped) || errors.Is(err, ErrMissingTitle) {
				level = slog.LevelInfo
			}
			logger.Log(ctx, level, "article discarded", "article_id", article.ID, "err", err)
			return
		}
		results[i] = &m
	})

	published := make([]domain.MultilingualArticle, 0, len(results))
	for _, r := range results {
		if r != nil {
			published = append(published, *r)
		}
	}
	return published
}

// persist upserts every published article and bumps the last-updated marker.
// Existing documents keep their click counters.
func (p *Pipeline) persist(ctx context.Context, published []domain.MultilingualArticle, logger *slog.Logger) int {
	if p.store == nil || len(published) == 0 {
		return 0
	}

	settings := p.profile.Settings()
	collection := settings.ArticlesCollection()

	ids := make([]string, len(published))
	for i, m := range published {
		ids[i] = m.Article.ID
	}
	existing, err := p.store.Exists(ctx, collection, ids)
	if err != nil {
		logger.Warn("load existing articles failed, keeping stored click counters", "err", err)
		existing = make(map[string]bool, len(ids))
		for _, id := range ids {
			existing[id] = true
		}
	}

	persisted := 0
	for _, m := range published {
		doc := articleDocument(m, !existing[m.Article.ID])
		if err := p.store.Set(ctx, collection, m.Article.ID, doc, true); err != nil {
			logger.Error("persist article failed", "article_id", m.Article.ID, "err", err)
			continue
		}
		persisted++
	}

	if persisted > 0 {
		meta := ports.Document{"lastUpdatedAt": p.now().UTC()}
		if err := p.store.Set(ctx, settings.InfoCollection(), "meta", meta, true); err != nil {
			logger.Warn("update meta failed", "err", err)
		}
	}
	return persisted
}
