package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"NewsPlatter/internal/country"
	"NewsPlatter/internal/domain"
	"NewsPlatter/internal/ports"
)

// DefaultPushHours is the look-back window for the push candidate.
const DefaultPushHours = 6

// PushJob notifies app users about the most clicked recent article.
type PushJob struct {
	store      ports.DocumentStore
	dispatcher ports.PushDispatcher
	header     string
	logger     *slog.Logger
	now        func() time.Time
}

// NewPushJob binds the store and dispatcher. now may be nil.
func NewPushJob(store ports.DocumentStore, dispatcher ports.PushDispatcher, header string, logger *slog.Logger, now func() time.Time) *PushJob {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &PushJob{store: store, dispatcher: dispatcher, header: header, logger: logger, now: now}
}

// Run looks for the most clicked article published within the last hours and
// sends it. Finding nothing is not an error; sent reports whether a push went out.
func (j *PushJob) Run(ctx context.Context, profile country.Profile, hours int) (result domain.PushResult, sent bool, err error) {
	if hours <= 0 {
		hours = DefaultPushHours
	}
	settings := profile.Settings()
	logger := j.logger.With("country", settings.Code)

	// pubDate is stored in UTC, so the window is computed in UTC as well.
	to := j.now().UTC()
	from := to.Add(-time.Duration(hours) * time.Hour)
	docs, err := j.store.Query(ctx, settings.ArticlesCollection(), ports.Query{
		RangeField: fieldPubDate,
		From:       from.Format(pubDateLayout),
		To:         to.Format(pubDateLayout),
		OrderBy:    fieldClicked,
		Descending: true,
		Limit:      1,
	})
	if err != nil {
		return domain.PushResult{}, false, fmt.Errorf("query push candidate: %w", err)
	}
	if len(docs) == 0 {
		logger.Info("no article to push", "hours", hours)
		return domain.PushResult{}, false, nil
	}

	msg := pushMessage(docs[0], settings.ISO, j.header)
	result, err = j.dispatcher.Send(ctx, msg)
	if err != nil {
		return domain.PushResult{}, false, fmt.Errorf("send push %s: %w", msg.ArticleID, err)
	}

	logger.Info("push sent",
		"article_id", msg.ArticleID,
		"success", result.SuccessCount,
		"failure", result.FailureCount,
		"ignored", result.IgnoredUsers)
	return result, true, nil
}

// pushMessage maps every translated headline by language code.
func pushMessage(doc ports.Document, iso, header string) domain.PushMessage {
	messages := map[string]string{}
	if translations, ok := asMap(doc[fieldTranslated]); ok {
		for lang, raw := range translations {
			fields, ok := asMap(raw)
			if !ok {
				continue
			}
			if title := toString(fields[fieldAITitle]); title != "" {
				messages[lang] = title
			}
		}
	}

	title := toString(doc[fieldAITitle])
	if title == "" {
		title = toString(doc["title"])
	}

	return domain.PushMessage{
		ArticleID: toString(doc["article_id"]),
		Header:    header,
		Title:     title,
		Messages:  messages,
		Country:   iso,
	}
}
