package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"NewsPlatter/internal/infrastructure/storage"
	"NewsPlatter/internal/ports"
	"NewsPlatter/internal/ports/mocks"
)

func TestPopularJobRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	profile := testProfile(t, "canada", "")
	loc := profile.Settings().Location()
	now := func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, loc) }

	pub := func(day, hour int) string {
		return time.Date(2026, 3, day, hour, 30, 0, 0, loc).UTC().Format(pubDateLayout)
	}
	store := storage.NewMemoryStore()
	seed := map[string]ports.Document{
		"y1":    {"article_id": "y1", "title": "Yesterday one", fieldPubDate: pub(9, 10), fieldClicked: 5},
		"y2":    {"article_id": "y2", "title": "Yesterday two", fieldPubDate: pub(9, 23), fieldClicked: 9, fieldAITitle: "AI two"},
		"y3":    {"article_id": "y3", "title": "Never opened", fieldPubDate: pub(9, 11), fieldClicked: 0},
		"older": {"article_id": "older", "title": "Two days ago", fieldPubDate: pub(8, 0), fieldClicked: 2},
		"today": {"article_id": "today", "title": "Today", fieldPubDate: pub(10, 9), fieldClicked: 50},
	}
	for id, doc := range seed {
		require.NoError(t, store.Set(ctx, "canada_articles", id, doc, false))
	}

	snapshots, err := NewPopularJob(store, discardLogger(), now).Run(ctx, profile)
	require.NoError(t, err)
	require.Len(t, snapshots, 7)

	assert.Equal(t, "2026-03-09", snapshots[0].Date)
	require.Len(t, snapshots[0].Articles, 2)
	assert.Equal(t, "y2", snapshots[0].Articles[0].ID)
	assert.Equal(t, "AI two", snapshots[0].Articles[0].AITitle)
	assert.Equal(t, 9, snapshots[0].Articles[0].ClickedCount)
	assert.Equal(t, "y1", snapshots[0].Articles[1].ID)

	assert.Equal(t, "2026-03-08", snapshots[1].Date)
	require.Len(t, snapshots[1].Articles, 1)
	assert.Equal(t, "older", snapshots[1].Articles[0].ID)

	assert.Equal(t, "2026-03-03", snapshots[6].Date)
	assert.Empty(t, snapshots[6].Articles)

	day, err := store.Get(ctx, "canada_daily_popular", "2026-03-09")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-09", day["date"])
	assert.Len(t, day["articles"], 2)

	aggregate, err := store.Get(ctx, "canada_info", "daily_popular")
	require.NoError(t, err)
	days, ok := aggregate["days"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, days, 7)

	meta, err := store.Get(ctx, "canada_info", "daily_popular_meta")
	require.NoError(t, err)
	assert.Equal(t, 7, meta["days_captured"])
	assert.Equal(t, 3, meta["total_articles"])
}

func TestPopularJobQueryFailureStoresEmptyDay(t *testing.T) {
	t.Parallel()

	profile := testProfile(t, "germany", "")
	ctrl := gomock.NewController(t)
	store := mocks.NewMockDocumentStore(ctrl)

	store.EXPECT().Query(gomock.Any(), "germany_articles", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, q ports.Query) ([]ports.Document, error) {
			assert.Equal(t, fieldPubDate, q.RangeField)
			assert.Equal(t, fieldClicked, q.MinField)
			assert.True(t, q.Descending)
			assert.Equal(t, 10, q.Limit)
			return nil, errors.New("index missing")
		}).Times(2)
	store.EXPECT().Set(gomock.Any(), "germany_daily_popular", gomock.Any(), gomock.Any(), false).DoAndReturn(
		func(_ context.Context, _, _ string, doc ports.Document, _ bool) error {
			assert.Empty(t, doc["articles"])
			return nil
		}).Times(2)
	store.EXPECT().Set(gomock.Any(), "germany_info", "daily_popular", gomock.Any(), false).Return(nil)
	store.EXPECT().Set(gomock.Any(), "germany_info", "daily_popular_meta", gomock.Any(), true).Return(nil)

	snapshots, err := NewPopularJob(store, discardLogger(), fixedNow).Run(context.Background(), profile)
	require.NoError(t, err)
	assert.Len(t, snapshots, 2)
}
