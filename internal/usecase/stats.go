package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"NewsPlatter/internal/country"
	"NewsPlatter/internal/domain"
	"NewsPlatter/internal/ports"
)

const (
	hourFieldPrefix  = "hour_"
	dailyResultField = "daily_result"
)

// StatsAggregator keeps hourly run counters per local date and rolls each
// date into a daily total exactly once.
type StatsAggregator struct {
	store  ports.DocumentStore
	logger *slog.Logger
	now    func() time.Time
}

// NewStatsAggregator binds the document store. now may be nil.
func NewStatsAggregator(store ports.DocumentStore, logger *slog.Logger, now func() time.Time) *StatsAggregator {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &StatsAggregator{store: store, logger: logger, now: now}
}

// StatsDocumentID names the document holding the buckets of a local date.
func StatsDocumentID(day time.Time) string {
	return "stats_" + day.Format("2006-01-02")
}

// Record merges one run into the current local hour bucket. When this is the
// first bucket of the day so far, the previous local day is rolled up.
func (a *StatsAggregator) Record(ctx context.Context, profile country.Profile, run domain.RunStats) error {
	settings := profile.Settings()
	at := run.At
	if at.IsZero() {
		at = a.now()
	}
	local := at.In(settings.Location())
	docID := StatsDocumentID(local)

	doc, err := a.load(ctx, settings.InfoCollection(), docID)
	if err != nil {
		return err
	}
	buckets := HourBuckets(doc)

	hour := local.Hour()
	first := len(buckets) == 0 || hour <= minHour(buckets)

	bucket := buckets[hour]
	bucket.Hour = hour
	bucket.TotalCandidates += run.TotalCandidates
	bucket.Published += run.Published
	bucket.Runs++
	bucket.Timestamp = at.UTC()

	update := ports.Document{hourField(hour): bucketDocument(bucket)}
	if err := a.store.Set(ctx, settings.InfoCollection(), docID, update, true); err != nil {
		return fmt.Errorf("save hour bucket %s/%02d: %w", docID, hour, err)
	}
	a.logger.Debug("hour bucket saved", "country", settings.Code, "doc", docID, "hour", hour, "runs", bucket.Runs)

	if !first {
		return nil
	}
	previous := local.AddDate(0, 0, -1)
	if _, err := a.Rollup(ctx, profile, previous); err != nil {
		return fmt.Errorf("roll up %s: %w", previous.Format("2006-01-02"), err)
	}
	return nil
}

// Rollup adds every hour bucket of day that is not yet part of the daily
// result. Running it again with unchanged buckets writes nothing.
func (a *StatsAggregator) Rollup(ctx context.Context, profile country.Profile, day time.Time) (domain.DailyTotal, error) {
	settings := profile.Settings()
	docID := StatsDocumentID(day.In(settings.Location()))

	doc, err := a.load(ctx, settings.InfoCollection(), docID)
	if err != nil {
		return domain.DailyTotal{}, err
	}
	if doc == nil {
		return domain.DailyTotal{}, nil
	}

	total := DailyResult(doc)
	rolled := make(map[int]struct{}, len(total.RolledHours))
	for _, h := range total.RolledHours {
		rolled[h] = struct{}{}
	}

	buckets := HourBuckets(doc)
	hours := make([]int, 0, len(buckets))
	for h := range buckets {
		hours = append(hours, h)
	}
	sort.Ints(hours)

	added := 0
	for _, h := range hours {
		if _, done := rolled[h]; done {
			continue
		}
		total.TotalCandidates += buckets[h].TotalCandidates
		total.Published += buckets[h].Published
		total.RolledHours = append(total.RolledHours, h)
		added++
	}
	if added == 0 {
		return total, nil
	}

	sort.Ints(total.RolledHours)
	total.RolledUpAt = a.now().UTC()
	update := ports.Document{dailyResultField: dailyDocument(total)}
	if err := a.store.Set(ctx, settings.InfoCollection(), docID, update, true); err != nil {
		return domain.DailyTotal{}, fmt.Errorf("save daily result %s: %w", docID, err)
	}

	a.logger.Info("daily stats rolled up",
		"country", settings.Code,
		"date", strings.TrimPrefix(docID, "stats_"),
		"hours_added", added,
		"total_articles", total.TotalCandidates,
		"published_articles", total.Published)
	return total, nil
}

func (a *StatsAggregator) load(ctx context.Context, collection, id string) (ports.Document, error) {
	doc, err := a.store.Get(ctx, collection, id)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s/%s: %w", collection, id, err)
	}
	return doc, nil
}

// HourBuckets decodes the well-formed hour_HH fields of a stats document.
// Anything else in the document is ignored.
func HourBuckets(doc ports.Document) map[int]domain.HourBucket {
	buckets := map[int]domain.HourBucket{}
	for key, value := range doc {
		if !strings.HasPrefix(key, hourFieldPrefix) {
			continue
		}
		hour, err := strconv.Atoi(strings.TrimPrefix(key, hourFieldPrefix))
		if err != nil || hour < 0 || hour > 23 {
			continue
		}
		fields, ok := asMap(value)
		if !ok {
			continue
		}
		total, okTotal := toInt(fields["total_articles"])
		published, okPublished := toInt(fields["published_articles"])
		if !okTotal || !okPublished {
			continue
		}
		runs, _ := toInt(fields["runs"])
		buckets[hour] = domain.HourBucket{
			Hour:            hour,
			TotalCandidates: total,
			Published:       published,
			Runs:            runs,
			Timestamp:       toTime(fields["timestamp"]),
		}
	}
	return buckets
}

// DailyResult decodes the daily_result field, zero when absent.
func DailyResult(doc ports.Document) domain.DailyTotal {
	fields, ok := asMap(doc[dailyResultField])
	if !ok {
		return domain.DailyTotal{}
	}
	total, _ := toInt(fields["total_articles"])
	published, _ := toInt(fields["published_articles"])
	return domain.DailyTotal{
		TotalCandidates: total,
		Published:       published,
		RolledHours:     toInts(fields["rolled_hours"]),
		RolledUpAt:      toTime(fields["rolled_up_at"]),
	}
}

func minHour(buckets map[int]domain.HourBucket) int {
	lowest := 24
	for h := range buckets {
		lowest = min(lowest, h)
	}
	return lowest
}

func hourField(hour int) string {
	return fmt.Sprintf("%s%02d", hourFieldPrefix, hour)
}

func bucketDocument(b domain.HourBucket) map[string]any {
	return map[string]any{
		"total_articles":     b.TotalCandidates,
		"published_articles": b.Published,
		"runs":               b.Runs,
		"timestamp":          b.Timestamp,
	}
}

func dailyDocument(t domain.DailyTotal) map[string]any {
	hours := make([]any, len(t.RolledHours))
	for i, h := range t.RolledHours {
		hours[i] = h
	}
	return map[string]any{
		"total_articles":     t.TotalCandidates,
		"published_articles": t.Published,
		"rolled_hours":       hours,
		"rolled_up_at":       t.RolledUpAt,
	}
}
