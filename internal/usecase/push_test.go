package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"NewsPlatter/internal/domain"
	"NewsPlatter/internal/infrastructure/storage"
	"NewsPlatter/internal/ports"
	"NewsPlatter/internal/ports/mocks"
)

func seedPushArticles(t *testing.T, store ports.DocumentStore) {
	t.Helper()
	at := func(ago time.Duration) string { return fixedNow().Add(-ago).Format(pubDateLayout) }
	docs := map[string]ports.Document{
		"recent": {"article_id": "recent", "title": "Recent", fieldPubDate: at(time.Hour), fieldClicked: 3},
		"hot": {
			"article_id":    "hot",
			"title":         "Original headline",
			fieldAITitle:    "Hot headline",
			fieldPubDate:    at(2 * time.Hour),
			fieldClicked:    8,
			fieldTranslated: map[string]any{
				"ko": map[string]any{fieldAITitle: "뜨거운 헤드라인", fieldAIContent: "본문"},
				"hi": map[string]any{fieldAITitle: "गर्म शीर्षक"},
				"zh": map[string]any{fieldAIContent: "no title"},
			},
		},
		"stale": {"article_id": "stale", "title": "Stale", fieldPubDate: at(8 * time.Hour), fieldClicked: 100},
	}
	for id, doc := range docs {
		require.NoError(t, store.Set(context.Background(), "canada_articles", id, doc, false))
	}
}

func TestPushJobSendsMostClicked(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	seedPushArticles(t, store)

	ctrl := gomock.NewController(t)
	dispatcher := mocks.NewMockPushDispatcher(ctrl)
	dispatcher.EXPECT().Send(gomock.Any(), domain.PushMessage{
		ArticleID: "hot",
		Header:    "News Platter",
		Title:     "Hot headline",
		Messages:  map[string]string{"ko": "뜨거운 헤드라인", "hi": "गर्म शीर्षक"},
		Country:   "ca",
	}).Return(domain.PushResult{SuccessCount: 40, IgnoredUsers: 2}, nil)

	job := NewPushJob(store, dispatcher, "News Platter", discardLogger(), fixedNow)
	result, sent, err := job.Run(context.Background(), testProfile(t, "canada", ""), 6)
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Equal(t, domain.PushResult{SuccessCount: 40, IgnoredUsers: 2}, result)
}

func TestPushJobWiderWindow(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	seedPushArticles(t, store)

	ctrl := gomock.NewController(t)
	dispatcher := mocks.NewMockPushDispatcher(ctrl)
	dispatcher.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg domain.PushMessage) (domain.PushResult, error) {
		assert.Equal(t, "stale", msg.ArticleID)
		assert.Equal(t, "Stale", msg.Title)
		assert.Empty(t, msg.Messages)
		return domain.PushResult{}, nil
	})

	_, sent, err := NewPushJob(store, dispatcher, "", discardLogger(), fixedNow).Run(context.Background(), testProfile(t, "canada", ""), 12)
	require.NoError(t, err)
	assert.True(t, sent)
}

func TestPushJobNothingToSend(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	dispatcher := mocks.NewMockPushDispatcher(ctrl)

	result, sent, err := NewPushJob(storage.NewMemoryStore(), dispatcher, "", discardLogger(), fixedNow).
		Run(context.Background(), testProfile(t, "canada", ""), 0)
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Zero(t, result)
}

func TestPushJobDefaultWindowAndErrors(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockDocumentStore(ctrl)
	store.EXPECT().Query(gomock.Any(), "canada_articles", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, q ports.Query) ([]ports.Document, error) {
			assert.Equal(t, "2026-03-10 06:00:00", q.From)
			assert.Equal(t, "2026-03-10 12:00:00", q.To)
			assert.Equal(t, 1, q.Limit)
			return []ports.Document{{"article_id": "a1", "title": "T"}}, nil
		})
	dispatcher := mocks.NewMockPushDispatcher(ctrl)
	dispatcher.EXPECT().Send(gomock.Any(), gomock.Any()).Return(domain.PushResult{}, errors.New("function returned 500"))

	_, sent, err := NewPushJob(store, dispatcher, "", discardLogger(), fixedNow).Run(context.Background(), testProfile(t, "canada", ""), 0)
	assert.ErrorContains(t, err, "send push a1")
	assert.False(t, sent)

	store.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("unavailable"))
	_, _, err = NewPushJob(store, dispatcher, "", discardLogger(), fixedNow).Run(context.Background(), testProfile(t, "canada", ""), 3)
	assert.ErrorContains(t, err, "query push candidate")
}
