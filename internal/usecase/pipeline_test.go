package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"NewsPlatter/internal/country"
	"NewsPlatter/internal/domain"
	"NewsPlatter/internal/infrastructure/storage"
	"NewsPlatter/internal/ports"
	"NewsPlatter/internal/ports/mocks"
)

func newTestPipeline(profile country.Profile, source ports.ArticleSource, store ports.DocumentStore, llm *fakeNewsroom) *Pipeline {
	return NewPipeline(PipelineDeps{
		Profile:   profile,
		Source:    source,
		Store:     store,
		Selector:  NewSelector(llm, discardLogger()),
		Processor: newTestProcessor(llm, 2),
		Stats:     NewStatsAggregator(store, discardLogger(), fixedNow),
		Workers:   2,
		Logger:    discardLogger(),
		Now:       fixedNow,
	})
}

func articles(ids ...string) []domain.Article {
	out := make([]domain.Article, len(ids))
	for i, id := range ids {
		out[i] = sampleArticle(id)
	}
	return out
}

func TestPipelineRunSelectAll(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	source := mocks.NewMockArticleSource(ctrl)
	gomock.InOrder(
		source.EXPECT().FetchPage(gomock.Any(), "").Return(articles("a1", "a2"), "p2", nil),
		source.EXPECT().FetchPage(gomock.Any(), "p2").Return(articles("a2", "a3"), "", nil),
	)

	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "saudi_articles", "a1", ports.Document{"article_id": "a1", fieldClicked: 7}, false))

	llm := newFakeNewsroom()
	report, err := newTestPipeline(testProfile(t, "saudi", ""), source, store, llm).Run(ctx)
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 3, report.Fetched)
	assert.Equal(t, 3, report.Selected)
	assert.Equal(t, 3, report.Published)
	assert.Equal(t, 3, report.Persisted)
	assert.Zero(t, llm.selections)

	a1, err := store.Get(ctx, "saudi_articles", "a1")
	require.NoError(t, err)
	assert.Equal(t, 7, a1[fieldClicked])
	assert.Equal(t, "Parliament passes budget", a1[fieldAITitle])

	a2, err := store.Get(ctx, "saudi_articles", "a2")
	require.NoError(t, err)
	assert.Equal(t, 0, a2[fieldClicked])
	assert.Equal(t, "2026-03-10 10:00:00", a2[fieldPubDate])
	translations, ok := a2[fieldTranslated].(map[string]any)
	require.True(t, ok)
	assert.Len(t, translations, 5)
	assert.Equal(t, map[string]any{fieldAITitle: "[ur] headline", fieldAIContent: "[ur] body"}, translations["ur"])

	meta, err := store.Get(ctx, "saudi_info", "meta")
	require.NoError(t, err)
	assert.Equal(t, fixedNow(), meta["lastUpdatedAt"])

	// 12:00 UTC is 15:00 in Riyadh.
	stats, err := store.Get(ctx, "saudi_info", "stats_2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, domain.HourBucket{Hour: 15, TotalCandidates: 3, Published: 3, Runs: 1, Timestamp: fixedNow()}, HourBuckets(stats)[15])
}

func TestPipelineRunSelectsTopK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	source := mocks.NewMockArticleSource(ctrl)
	source.EXPECT().FetchPage(gomock.Any(), "").Return(articles("a1", "a2", "a3", "a4", "a5"), "", nil)

	llm := newFakeNewsroom()
	llm.selected = "a3\nnot-a-candidate"
	store := storage.NewMemoryStore()

	report, err := newTestPipeline(testProfile(t, "canada", ""), source, store, llm).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, report.Fetched)
	assert.Equal(t, 1, report.Selected)
	assert.Equal(t, 1, report.Persisted)
	assert.Equal(t, 1, llm.selections)

	exists, err := store.Exists(context.Background(), "canada_articles", []string{"a1", "a3"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"a3": true}, exists)
}

func TestPipelineEmptySelectionPublishesNothing(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	source := mocks.NewMockArticleSource(ctrl)
	source.EXPECT().FetchPage(gomock.Any(), "").Return(articles("a1", "a2"), "", nil)

	llm := newFakeNewsroom()
	llm.selected = "none"
	store := storage.NewMemoryStore()

	report, err := newTestPipeline(testProfile(t, "canada", ""), source, store, llm).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Fetched)
	assert.Zero(t, report.Published)
	assert.Empty(t, llm.translatedLanguages())

	_, err = store.Get(context.Background(), "canada_info", "meta")
	assert.ErrorIs(t, err, ports.ErrNotFound)
	_, err = store.Get(context.Background(), "canada_info", "stats_2026-03-10")
	assert.NoError(t, err)
}

func TestPipelinePagination(t *testing.T) {
	t.Parallel()

	t.Run("page error keeps earlier pages", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		source := mocks.NewMockArticleSource(ctrl)
		gomock.InOrder(
			source.EXPECT().FetchPage(gomock.Any(), "").Return(articles("a1"), "p2", nil),
			source.EXPECT().FetchPage(gomock.Any(), "p2").Return(nil, "", errors.New("502 bad gateway")),
		)

		report, err := newTestPipeline(testProfile(t, "saudi", ""), source, storage.NewMemoryStore(), newFakeNewsroom()).Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, report.Fetched)
		assert.Equal(t, 1, report.Published)
	})

	t.Run("repeated token stops", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		source := mocks.NewMockArticleSource(ctrl)
		gomock.InOrder(
			source.EXPECT().FetchPage(gomock.Any(), "").Return(articles("a1"), "p1", nil),
			source.EXPECT().FetchPage(gomock.Any(), "p1").Return(articles("a2"), "p1", nil),
		)

		report, err := newTestPipeline(testProfile(t, "saudi", ""), source, storage.NewMemoryStore(), newFakeNewsroom()).Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, report.Fetched)
	})
}

func TestPipelineDiscardsFailedArticles(t *testing.T) {
	t.Parallel()

	untitled := sampleArticle("a2")
	untitled.Title = ""

	ctrl := gomock.NewController(t)
	source := mocks.NewMockArticleSource(ctrl)
	source.EXPECT().FetchPage(gomock.Any(), "").Return([]domain.Article{sampleArticle("a1"), untitled}, "", nil)

	store := storage.NewMemoryStore()
	report, err := newTestPipeline(testProfile(t, "saudi", ""), source, store, newFakeNewsroom()).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Selected)
	assert.Equal(t, 1, report.Published)

	_, err = store.Get(context.Background(), "saudi_articles", "a2")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

type existsFailingStore struct {
	*storage.MemoryStore
}

func (existsFailingStore) Exists(context.Context, string, []string) (map[string]bool, error) {
	return nil, errors.New("deadline exceeded")
}

func TestPipelineKeepsClicksWhenExistenceUnknown(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	source := mocks.NewMockArticleSource(ctrl)
	source.EXPECT().FetchPage(gomock.Any(), "").Return(articles("a1"), "", nil)

	ctx := context.Background()
	store := existsFailingStore{storage.NewMemoryStore()}
	require.NoError(t, store.Set(ctx, "saudi_articles", "a1", ports.Document{fieldClicked: 4}, false))

	_, err := newTestPipeline(testProfile(t, "saudi", ""), source, store, newFakeNewsroom()).Run(ctx)
	require.NoError(t, err)

	doc, err := store.Get(ctx, "saudi_articles", "a1")
	require.NoError(t, err)
	assert.Equal(t, 4, doc[fieldClicked])
	assert.Equal(t, "a1", doc["article_id"])
}

func TestPipelineRequiresWiring(t *testing.T) {
	t.Parallel()

	_, err := NewPipeline(PipelineDeps{}).Run(context.Background())
	assert.Error(t, err)
}

func TestTopK(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total int
		ratio float64
		want  int
	}{
		{total: 5, ratio: 0.2, want: 1},
		{total: 1, ratio: 0.1, want: 1},
		{total: 50, ratio: 0.08, want: 4},
		{total: 25, ratio: 0.1, want: 3},
		{total: 100, ratio: 0.2, want: 20},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, topK(tt.total, tt.ratio), "total=%d ratio=%v", tt.total, tt.ratio)
	}
}
