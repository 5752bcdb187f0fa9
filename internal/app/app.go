package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"NewsPlatter/internal/config"
	"NewsPlatter/internal/country"
	"NewsPlatter/internal/domain"
	"NewsPlatter/internal/infrastructure/llm"
	"NewsPlatter/internal/infrastructure/newsfeed"
	"NewsPlatter/internal/infrastructure/push"
	"NewsPlatter/internal/infrastructure/scheduler"
	"NewsPlatter/internal/infrastructure/storage"
	"NewsPlatter/internal/logging"
	"NewsPlatter/internal/ports"
	"NewsPlatter/internal/usecase"
)

const shutdownTimeout = 30 * time.Second

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	registry *country.Registry
	store    ports.DocumentStore
	now      func() time.Time

	mu         sync.Mutex
	selector   ports.LLM
	writer     ports.LLM
	dispatcher ports.PushDispatcher
}

// Option overrides one dependency, mostly for tests.
type Option func(*Application)

// WithStore skips opening the configured storage backend.
func WithStore(store ports.DocumentStore) Option {
	return func(a *Application) { a.store = store }
}

// WithModels skips building the configured LLM clients.
func WithModels(selector, writer ports.LLM) Option {
	return func(a *Application) {
		a.selector = selector
		a.writer = writer
	}
}

// WithDispatcher replaces the push webhook.
func WithDispatcher(d ports.PushDispatcher) Option {
	return func(a *Application) { a.dispatcher = d }
}

// WithClock pins the time source of every job.
func WithClock(now func() time.Time) Option {
	return func(a *Application) { a.now = now }
}

// New loads the country profiles and opens the document store.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger, opts ...Option) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	registry, err := loadRegistry(cfg.ProfilesFile)
	if err != nil {
		return nil, err
	}

	a := &Application{
		cfg:      cfg,
		logger:   baseLogger,
		registry: registry,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.store == nil {
		a.store, err = openStore(ctx, cfg.Storage)
		if err != nil {
			return nil, err
		}
	}
	return a, nil
}

func loadRegistry(path string) (*country.Registry, error) {
	var overrides []byte
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read profiles %s: %w", path, err)
		}
		overrides = raw
	}
	return country.Default(overrides)
}

func openStore(ctx context.Context, cfg config.StorageConfig) (ports.DocumentStore, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return storage.NewMemoryStore(), nil
	case config.BackendPostgres:
		store, err := storage.OpenPostgres(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "", config.BackendFirestore:
		store, err := storage.NewFirestoreStore(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// Countries lists the registered country codes.
func (a *Application) Countries() []string {
	return a.registry.Codes()
}

// RunPipeline performs one news run for a country.
func (a *Application) RunPipeline(ctx context.Context, code string) (usecase.RunReport, error) {
	profile, err := a.registry.Resolve(code)
	if err != nil {
		return usecase.RunReport{}, err
	}
	settings := profile.Settings()

	feedURL := a.cfg.FeedURL(settings.Code)
	if feedURL == "" {
		return usecase.RunReport{}, fmt.Errorf("no news feed configured for %s", settings.Code)
	}

	selectorLLM, writerLLM, err := a.models(ctx)
	if err != nil {
		return usecase.RunReport{}, err
	}

	processor := usecase.NewProcessor(usecase.ProcessorDeps{
		Summarizer: usecase.NewSummarizer(writerLLM, a.logger.With("component", "summarizer")),
		Translator: usecase.NewTranslator(writerLLM, a.logger.With("component", "translator")),
		Workers:    a.cfg.Pipeline.TranslationWorkers,
		Logger:     a.logger.With("component", "processor"),
		Now:        a.now,
	})

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Profile:   profile,
		Source:    newsfeed.NewClient(feedURL, nil),
		Store:     a.store,
		Selector:  usecase.NewSelector(selectorLLM, a.logger.With("component", "selector")),
		Processor: processor,
		Stats:     usecase.NewStatsAggregator(a.store, a.logger.With("component", "stats"), a.now),
		Workers:   a.cfg.Pipeline.ArticleWorkers,
		Logger:    a.logger.With("component", "pipeline"),
		Now:       a.now,
	})
	return pipeline.Run(ctx)
}

// RunDailyPopular refreshes the popular snapshots of a country.
func (a *Application) RunDailyPopular(ctx context.Context, code string) ([]domain.DailyPopular, error) {
	profile, err := a.registry.Resolve(code)
	if err != nil {
		return nil, err
	}
	job := usecase.NewPopularJob(a.store, a.logger.With("component", "popular"), a.now)
	return job.Run(ctx, profile)
}

// RunPush notifies users about the most clicked article of the last hours.
func (a *Application) RunPush(ctx context.Context, code string, hours int) (domain.PushResult, bool, error) {
	profile, err := a.registry.Resolve(code)
	if err != nil {
		return domain.PushResult{}, false, err
	}
	if hours <= 0 {
		hours = a.cfg.Scheduler.PushHours
	}
	job := usecase.NewPushJob(a.store, a.pushDispatcher(), a.cfg.Push.Header, a.logger.With("component", "push"), a.now)
	return job.Run(ctx, profile, hours)
}

// Schedule registers every job for codes (all configured countries when
// empty) and blocks until ctx is cancelled.
func (a *Application) Schedule(ctx context.Context, codes []string) error {
	if len(codes) == 0 {
		codes = a.cfg.Scheduler.Countries
	}
	if len(codes) == 0 {
		codes = a.Countries()
	}

	sched := usecase.NewScheduler(scheduler.NewCronScheduler(a.cfg.Scheduler.Location()), a.logger.With("component", "scheduler"))
	if err := a.registerJobs(sched, codes); err != nil {
		return err
	}

	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("scheduler started", "countries", codes, "timezone", a.cfg.Scheduler.Location().String())

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := sched.Stop(stopCtx); err != nil {
		return fmt.Errorf("stop scheduler: %w", err)
	}
	a.logger.Info("scheduler stopped")
	return nil
}

func (a *Application) registerJobs(sched *usecase.Scheduler, codes []string) error {
	var errs []error
	for _, code := range codes {
		if _, err := a.registry.Resolve(code); err != nil {
			errs = append(errs, err)
			continue
		}
		jobs := []usecase.Job{
			{
				Name: "pipeline:" + code,
				Spec: a.cfg.Scheduler.PipelineCron,
				Run: func(ctx context.Context) error {
					_, err := a.RunPipeline(ctx, code)
					return err
				},
			},
			{
				Name: "popular:" + code,
				Spec: a.cfg.Scheduler.DailyPopularCron,
				Run: func(ctx context.Context) error {
					_, err := a.RunDailyPopular(ctx, code)
					return err
				},
			},
			{
				Name: "push:" + code,
				Spec: a.cfg.Scheduler.PushCron,
				Run: func(ctx context.Context) error {
					_, _, err := a.RunPush(ctx, code, a.cfg.Scheduler.PushHours)
					return err
				},
			},
		}
		for _, job := range jobs {
			if job.Spec == "" {
				continue
			}
			if err := sched.Register(job); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Close releases the document store.
func (a *Application) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func (a *Application) models(ctx context.Context) (ports.LLM, ports.LLM, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.selector == nil {
		client, err := llm.New(ctx, a.cfg.Selector)
		if err != nil {
			return nil, nil, fmt.Errorf("build selector llm: %w", err)
		}
		a.selector = client
	}
	if a.writer == nil {
		client, err := llm.New(ctx, a.cfg.Writer)
		if err != nil {
			return nil, nil, fmt.Errorf("build writer llm: %w", err)
		}
		a.writer = client
	}
	return a.selector, a.writer, nil
}

func (a *Application) pushDispatcher() ports.PushDispatcher {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.dispatcher == nil {
		a.dispatcher = push.NewWebhookDispatcher(a.cfg.Push.Endpoint, a.cfg.Push.Timeout)
	}
	return a.dispatcher
}
