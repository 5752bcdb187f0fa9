package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsPlatter/internal/domain"
)

func TestWebhookDispatcherSend(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"successCount":12,"failureCount":1,"ignoredUsers":3}`))
	}))
	t.Cleanup(srv.Close)

	d := NewWebhookDispatcher(srv.URL, 0)
	result, err := d.Send(context.Background(), domain.PushMessage{
		ArticleID: "a1",
		Header:    "News Platter",
		Title:     "Budget passes",
		Messages:  map[string]string{"ko": "예산 통과", "hi": "बजट पारित"},
		Country:   "ca",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PushResult{SuccessCount: 12, FailureCount: 1, IgnoredUsers: 3}, result)

	assert.Equal(t, "a1", got["articleId"])
	assert.Equal(t, "ca", got["country"])
	assert.Equal(t, "News Platter", got["header"])
	assert.Equal(t, map[string]any{"ko": "예산 통과", "hi": "बजट पारित"}, got["messages"])
}

func TestWebhookDispatcherPlainTextReply(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("sent"))
	}))
	t.Cleanup(srv.Close)

	result, err := NewWebhookDispatcher(srv.URL, 0).Send(context.Background(), domain.PushMessage{ArticleID: "a1"})
	require.NoError(t, err)
	assert.Zero(t, result)
}

func TestWebhookDispatcherErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no tokens", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	_, err := NewWebhookDispatcher(srv.URL, 0).Send(context.Background(), domain.PushMessage{})
	assert.ErrorContains(t, err, "500")

	_, err = NewWebhookDispatcher("", 0).Send(context.Background(), domain.PushMessage{})
	assert.ErrorContains(t, err, "misconfigured")
}
