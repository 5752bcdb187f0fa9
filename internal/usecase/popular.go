package usecase

import (
	"context"
	"log/slog"
	"time"

	"NewsPlatter/internal/country"
	"NewsPlatter/internal/domain"
	"NewsPlatter/internal/ports"
)

// PopularJob snapshots the most clicked articles of each recent local day.
type PopularJob struct {
	store  ports.DocumentStore
	logger *slog.Logger
	now    func() time.Time
}

// NewPopularJob binds the document store. now may be nil.
func NewPopularJob(store ports.DocumentStore, logger *slog.Logger, now func() time.Time) *PopularJob {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &PopularJob{store: store, logger: logger, now: now}
}

// Run walks back daily_popular_days local days starting with yesterday. A day
// whose query fails is stored as an empty list.
func (j *PopularJob) Run(ctx context.Context, profile country.Profile) ([]domain.DailyPopular, error) {
	settings := profile.Settings()
	loc := settings.Location()
	logger := j.logger.With("country", settings.Code)

	today := j.now().In(loc)
	snapshots := make([]domain.DailyPopular, 0, settings.DailyPopularDays)
	days := make(map[string]any, settings.DailyPopularDays)
	total := 0

	for i := 1; i <= settings.DailyPopularDays; i++ {
		d := today.AddDate(0, 0, -i)
		start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
		end := start.AddDate(0, 0, 1).Add(-time.Second)
		date := start.Format("2006-01-02")

		docs, err := j.store.Query(ctx, settings.ArticlesCollection(), ports.Query{
			RangeField: fieldPubDate,
			From:       start.UTC().Format(pubDateLayout),
			To:         end.UTC().Format(pubDateLayout),
			MinField:   fieldClicked,
			Above:      0,
			OrderBy:    fieldClicked,
			Descending: true,
			Limit:      settings.DailyPopularLimit,
		})
		if err != nil {
			logger.Warn("popular query failed", "date", date, "err", err)
			docs = nil
		}

		snap := domain.DailyPopular{Date: date, Articles: popularRows(docs)}
		snapshots = append(snapshots, snap)
		total += len(snap.Articles)

		rows := popularDocuments(snap.Articles)
		days[date] = rows
		dayDoc := ports.Document{"date": date, "articles": rows, "updated_at": j.now().UTC()}
		if err := j.store.Set(ctx, settings.DailyPopularCollection(), date, dayDoc, false); err != nil {
			logger.Error("save daily popular failed", "date", date, "err", err)
		}
		logger.Debug("daily popular captured", "date", date, "articles", len(snap.Articles))
	}

	updated := j.now().UTC()
	if err := j.store.Set(ctx, settings.InfoCollection(), "daily_popular", ports.Document{
		"days":       days,
		"updated_at": updated,
	}, false); err != nil {
		logger.Error("save popular aggregate failed", "err", err)
	}
	if err := j.store.Set(ctx, settings.InfoCollection(), "daily_popular_meta", ports.Document{
		"days_captured":  len(snapshots),
		"total_articles": total,
		"last_updated":   updated,
	}, true); err != nil {
		logger.Error("save popular meta failed", "err", err)
	}

	logger.Info("daily popular finished", "days", len(snapshots), "articles", total)
	return snapshots, nil
}

func popularRows(docs []ports.Document) []domain.PopularArticle {
	rows := make([]domain.PopularArticle, 0, len(docs))
	for _, doc := range docs {
		clicks, _ := toInt(doc[fieldClicked])
		translations, _ := asMap(doc[fieldTranslated])
		rows = append(rows, domain.PopularArticle{
			ID:           toString(doc["article_id"]),
			Title:        toString(doc["title"]),
			AITitle:      toString(doc[fieldAITitle]),
			AIContent:    toString(doc[fieldAIContent]),
			Category:     toString(doc["category_ai"]),
			ClickedCount: clicks,
			PubDate:      toString(doc[fieldPubDate]),
			Link:         toString(doc["link"]),
			Translations: translations,
		})
	}
	return rows
}

func popularDocuments(rows []domain.PopularArticle) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = map[string]any{
			"article_id":    r.ID,
			"title":         r.Title,
			fieldAITitle:    r.AITitle,
			fieldAIContent:  r.AIContent,
			"category_ai":   r.Category,
			fieldClicked:    r.ClickedCount,
			fieldPubDate:    r.PubDate,
			"link":          r.Link,
			fieldTranslated: r.Translations,
		}
	}
	return out
}
