package events

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// Publisher delivers domain events to external consumers after ledger state
// changes have been committed. Delivery is best-effort: a failed publish never
// rolls back the ledger change, and retrying is the consumer's concern.
type Publisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// NopPublisher discards all events. Used when no webhook endpoint is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event domain.Event) error {
	return nil
}

// WebhookPublisher posts events as signed JSON to a single consumer endpoint.
type WebhookPublisher struct {
	endpoint string
	secret   []byte
	client   *http.Client
}

// NewWebhookPublisher creates a publisher delivering to the given endpoint.
// The secret signs each payload with HMAC-SHA256 so the consumer can verify origin.
func NewWebhookPublisher(endpoint string, secret string) *WebhookPublisher {
	return &WebhookPublisher{
		endpoint: endpoint,
		secret:   []byte(secret),
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

var _ Publisher = (*WebhookPublisher)(nil)

// Publish delivers a single event. One attempt only; the caller logs failures.
func (p *WebhookPublisher) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.EventID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "finbooks-webhook/1.0")
	req.Header.Set("X-Finbooks-Event", string(event.Kind))
	req.Header.Set("X-Finbooks-Signature", p.sign(payload))

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook delivery failed for event %s: %w", event.EventID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook consumer returned status %d for event %s", resp.StatusCode, event.EventID)
	}
	return nil
}

func (p *WebhookPublisher) sign(payload []byte) string {
	mac := hmac.New(sha256.New, p.secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
