package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"NewsPlatter/internal/domain"
	"NewsPlatter/internal/ports"
)

// WebhookDispatcher posts push payloads to an HTTP function that fans them out
// to app users.
type WebhookDispatcher struct {
	endpoint string
	client   *http.Client
}

var _ ports.PushDispatcher = (*WebhookDispatcher)(nil)

// NewWebhookDispatcher registers the function endpoint.
func NewWebhookDispatcher(endpoint string, timeout time.Duration) *WebhookDispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookDispatcher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Send posts the message as JSON. A 2xx body is decoded into the delivery
// counters when present.
func (d *WebhookDispatcher) Send(ctx context.Context, msg domain.PushMessage) (domain.PushResult, error) {
	if d.endpoint == "" || d.client == nil {
		return domain.PushResult{}, fmt.Errorf("push dispatcher misconfigured")
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return domain.PushResult{}, fmt.Errorf("marshal push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.PushResult{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return domain.PushResult{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return domain.PushResult{}, fmt.Errorf("push error %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	var result domain.PushResult
	if len(bytes.TrimSpace(raw)) > 0 {
		// Older function versions reply with plain text.
		_ = json.Unmarshal(raw, &result)
	}
	return result, nil
}
